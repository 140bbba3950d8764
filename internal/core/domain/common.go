package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // caller identity
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update fields with the same instant and actor.
func NewAuditFields(now time.Time, by string) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     by,
		LastUpdatedAt: now,
		LastUpdatedBy: by,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(now time.Time, by string) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = by
}

// DateOnly truncates t to midnight UTC of its calendar day.
// Entry, invoice and fiscal dates are compared as calendar days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PeriodOf returns the yyyyMM period key used by document numbering.
func PeriodOf(t time.Time) string {
	return t.Format("200601")
}
