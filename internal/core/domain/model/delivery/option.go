package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// FlatRateCourierID identifies the synthetic option offered when no live
// quote is available.
const FlatRateCourierID = "flat-rate"

// Option is one way of shipping the item, as offered to the buyer.
type Option struct {
	ID            string
	CourierID     string
	ServiceName   string
	ProviderName  string
	Price         kernel.Money
	EstimatedDays int
	Zone          Zone
	ProviderRef   string

	// Estimate marks the synthetic flat-rate option.
	Estimate bool

	PriceExclVAT     *kernel.Money
	CollectionCutoff *time.Time
}

// Validate checks the fields every option must carry.
func (o Option) Validate() error {
	var daysErr error
	if o.EstimatedDays <= 0 {
		daysErr = errs.NewValueIsInvalidErrorWithCause("estimatedDays", fmt.Errorf("%d is not greater than 0", o.EstimatedDays))
	}
	return errors.Join(
		requiredText("id", o.ID),
		requiredText("courierId", o.CourierID),
		requiredText("serviceName", o.ServiceName),
		o.Price.Validate(),
		daysErr,
		o.Zone.Validate(),
	)
}

// Label renders the option for a summary line, e.g. "The Courier Guy Economy (3 days)".
func (o Option) Label() string {
	name := o.ServiceName
	if o.ProviderName != "" && !strings.Contains(name, o.ProviderName) {
		name = o.ProviderName + " " + name
	}
	return fmt.Sprintf("%s (%d days)", name, o.EstimatedDays)
}

// GroupByProvider orders options so that each provider's options are
// adjacent, keeping providers in first-seen order and options within a
// provider in their original order. No ranking is applied.
func GroupByProvider(options []Option) []Option {
	order := make([]string, 0, len(options))
	groups := make(map[string][]Option, len(options))
	for _, o := range options {
		if _, seen := groups[o.ProviderName]; !seen {
			order = append(order, o.ProviderName)
		}
		groups[o.ProviderName] = append(groups[o.ProviderName], o)
	}

	grouped := make([]Option, 0, len(options))
	for _, provider := range order {
		grouped = append(grouped, groups[provider]...)
	}
	return grouped
}

// Find returns the option with the given id.
func Find(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func requiredText(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
