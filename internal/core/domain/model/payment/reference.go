package payment

import (
	"strings"

	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

const referencePrefix = "chk_"

// Reference correlates one checkout's gateway transaction with the order it
// produces. It is minted once per session and reused across retries, so it
// is also the natural deduplication key for order creation.
type Reference string

// NewReference mints a fresh, random reference.
func NewReference() Reference {
	return Reference(referencePrefix + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// ParseReference accepts any non-blank reference, including ones minted by
// earlier releases without the prefix.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("paymentReference")
	}
	return Reference(s), nil
}

func (r Reference) String() string {
	return string(r)
}

func (r Reference) IsZero() bool {
	return r == ""
}
