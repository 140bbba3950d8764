package domain

import "time"

// FiscalYear is an accounting period that is either open for posting or closed.
type FiscalYear struct {
	FiscalYearID string     `json:"fiscalYearID"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	AuditFields
}

// Contains reports whether date falls within the year, both bounds inclusive.
func (f FiscalYear) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(f.StartDate)) && !d.After(DateOnly(f.EndDate))
}

// Overlaps reports whether the two years share at least one day.
func (f FiscalYear) Overlaps(other FiscalYear) bool {
	return !DateOnly(f.EndDate).Before(DateOnly(other.StartDate)) &&
		!DateOnly(other.EndDate).Before(DateOnly(f.StartDate))
}
