package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewAccountWindowDays is how many calendar days after the joining date
// an account still counts as new.
const NewAccountWindowDays = 60

type Account struct {
	JoiningDate time.Time       `json:"joining_date"`
	BirthDate   *time.Time      `json:"birth_date,omitempty"`
	TenantID    string          `json:"-"`
	ExternalID  string          `json:"user_id"`
	Points      decimal.Decimal `json:"points"`
	ID          int64           `json:"-"`
}

// BirthdayMonth reports whether now falls in the account's birth month.
// The month of now is taken in now's own location.
func (a *Account) BirthdayMonth(now time.Time) bool {
	if a.BirthDate == nil {
		return false
	}
	return a.BirthDate.Month() == now.Month()
}

// NewAccountWindow is the inclusive new-account window in loc: from the
// start of the joining day through the end of day NewAccountWindowDays.
// The joining date is taken as a calendar date in its own location.
func (a *Account) NewAccountWindow(loc *time.Location) (from, to time.Time) {
	y, m, d := a.JoiningDate.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, loc)
	to = time.Date(y, m, d+NewAccountWindowDays+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return from, to
}

// WithinNewAccountWindow reports whether now, on now's calendar, falls
// between the joining day and day NewAccountWindowDays inclusive.
func (a *Account) WithinNewAccountWindow(now time.Time) bool {
	from, to := a.NewAccountWindow(now.Location())
	return !now.Before(from) && !now.After(to)
}
