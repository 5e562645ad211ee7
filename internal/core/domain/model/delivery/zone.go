package delivery

import (
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// Zone classifies a route by how far apart seller and buyer are.
type Zone int

const (
	ZoneUnknown Zone = iota
	Local
	Provincial
	National
)

var zoneStrings = map[Zone]string{
	Local:      "local",
	Provincial: "provincial",
	National:   "national",
}

// ClassifyZone is local when the cities match, provincial when only the
// provinces match, national otherwise. City is checked first, so two
// same-named cities in different provinces still count as local.
func ClassifyZone(seller, buyer kernel.Address) Zone {
	switch {
	case seller.SameCity(buyer):
		return Local
	case seller.SameProvince(buyer):
		return Provincial
	default:
		return National
	}
}

func (z Zone) String() string {
	if s, ok := zoneStrings[z]; ok {
		return s
	}
	return "unknown"
}

func (z Zone) Validate() error {
	if _, ok := zoneStrings[z]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("zone", fmt.Errorf("%d is not a valid zone", z))
	}
	return nil
}

// ParseZone is the inverse of String.
func ParseZone(s string) (Zone, error) {
	for z, name := range zoneStrings {
		if name == s {
			return z, nil
		}
	}
	return ZoneUnknown, errs.NewValueIsInvalidErrorWithCause("zone", fmt.Errorf("%q is not a valid zone", s))
}
