// Package delivery validates multi-address delivery requests and computes
// the earliest permissible delivery date for a speed tier.
package delivery

import (
	"strings"
	"time"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

// Lead times in business days per speed tier. Saturdays and Sundays are
// skipped; there is no holiday calendar.
const (
	StandardLeadDays = 3
	ExpressLeadDays  = 1
)

// DateLayout is the wire format for delivery dates
const DateLayout = "2006-01-02"

// Minimum trimmed lengths per address field
const (
	minNameLen     = 2
	minPhoneLen    = 7
	minLine1Len    = 4
	minCityLen     = 2
	minPostcodeLen = 4
)

// LeadDays returns the business-day lead time for a tier
func LeadDays(tier domain.SpeedTier) int {
	if tier.OrDefault() == domain.SpeedTierExpress {
		return ExpressLeadDays
	}
	return StandardLeadDays
}

// EarliestDate advances today by the tier's lead time in business days.
// Counting starts from the day after today; weekend days do not count.
func EarliestDate(tier domain.SpeedTier, today time.Time) time.Time {
	remaining := LeadDays(tier)
	d := today
	for remaining > 0 {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		remaining--
	}
	return d
}

// MeetsFloor reports whether a chosen date satisfies the earliest-date floor.
// The planner never corrects a date; correction is a UI convenience.
func MeetsFloor(tier domain.SpeedTier, today, chosen time.Time) bool {
	earliest := EarliestDate(tier, today)
	return !dayOf(chosen).Before(dayOf(earliest))
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateAddresses checks a multi-address delivery: the address count must
// equal the expected delivery count, and every address must pass the field
// minima. It fails on the first invalid address, reporting its position and
// the missing fields.
func ValidateAddresses(addresses []domain.Address, expectedCount int) error {
	if len(addresses) != expectedCount {
		return &errors.ErrDeliveryCountMismatch{
			Expected: expectedCount,
			Got:      len(addresses),
		}
	}
	for i, addr := range addresses {
		if missing := missingFields(addr); len(missing) > 0 {
			return &errors.ErrIncompleteAddress{Index: i, Fields: missing}
		}
	}
	return nil
}

func missingFields(addr domain.Address) []string {
	var missing []string
	if len(strings.TrimSpace(addr.Name)) < minNameLen {
		missing = append(missing, "name")
	}
	if len(strings.TrimSpace(addr.Phone)) < minPhoneLen {
		missing = append(missing, "phone")
	}
	if len(strings.TrimSpace(addr.Line1)) < minLine1Len {
		missing = append(missing, "line1")
	}
	if len(strings.TrimSpace(addr.City)) < minCityLen {
		missing = append(missing, "city")
	}
	if len(strings.TrimSpace(addr.Postcode)) < minPostcodeLen {
		missing = append(missing, "postcode")
	}
	return missing
}

// TrimAddress returns the address with every field trimmed, the form in
// which addresses are stored
func TrimAddress(addr domain.Address) domain.Address {
	return domain.Address{
		Name:     strings.TrimSpace(addr.Name),
		Phone:    strings.TrimSpace(addr.Phone),
		Line1:    strings.TrimSpace(addr.Line1),
		Line2:    strings.TrimSpace(addr.Line2),
		City:     strings.TrimSpace(addr.City),
		Postcode: strings.TrimSpace(addr.Postcode),
	}
}
