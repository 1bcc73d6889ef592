package reward

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeCoffee       Type = "coffee"
	TypeMovieTickets Type = "movie-tickets"
)

func (t Type) Valid() bool {
	return t == TypeCoffee || t == TypeMovieTickets
}

// Tag names the rule that issued a reward. It is part of the dedupe key.
type Tag string

const (
	TagMonthlyPoints   Tag = "monthly-points"
	TagBirthday        Tag = "birthday"
	TagNewAccountSpend Tag = "new-account-spend"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusRedeemed Status = "redeemed"
	StatusExpired  Status = "expired"
)

// Held are the statuses that block a rule from issuing the same reward again.
var Held = []Status{StatusActive, StatusRedeemed}

// All lists every status; used by one-time-ever rules.
var All = []Status{StatusActive, StatusRedeemed, StatusExpired}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusRedeemed || s == StatusExpired
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusRedeemed || s == StatusExpired
}

func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusActive && (next == StatusRedeemed || next == StatusExpired)
}

type Reward struct {
	IssuedAt    time.Time  `json:"issued_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	TenantID    string     `json:"-"`
	Type        Type       `json:"reward_type"`
	Tag         Tag        `json:"-"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	DedupeKey   string     `json:"-"`
	AccountID   int64      `json:"-"`
	ID          uuid.UUID  `json:"id"`
}

func (r *Reward) Validate() error {
	var errs []error
	if !r.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown reward type %q", r.Type))
	}
	if !r.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown reward status %q", r.Status))
	}
	if r.IssuedAt.IsZero() {
		errs = append(errs, errors.New("issued_at must be set"))
	}
	if r.ExpiresAt != nil && r.ExpiresAt.Before(r.IssuedAt) {
		errs = append(errs, errors.New("expires_at cannot be before issued_at"))
	}
	return errors.Join(errs...)
}

// DedupeKey builds the storage key for (tag, time bucket). An empty bucket
// means the reward is one-time-ever for the account.
func DedupeKey(tag Tag, bucket string) string {
	if bucket == "" {
		return string(tag)
	}
	return string(tag) + "/" + bucket
}

// MonthBucket formats the calendar month of t as a dedupe bucket.
func MonthBucket(t time.Time) string {
	return t.Format("2006-01")
}

// Window is an inclusive time interval.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Filter describes an existence query over an account's rewards.
type Filter struct {
	Issued    *Window
	Type      Type
	Tag       Tag
	Statuses  []Status
	AccountID int64
}

func (f Filter) Matches(r *Reward) bool {
	if r.AccountID != f.AccountID || r.Type != f.Type || r.Tag != f.Tag {
		return false
	}
	if f.Issued != nil && !f.Issued.Contains(r.IssuedAt) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
