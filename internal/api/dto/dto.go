package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/gopher-loyalty/internal/ingest"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/transaction"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
)

const dateLayout = time.DateOnly

// pointsScale is the number of decimals rendered for points. Amounts keep
// the precision they were submitted with.
const pointsScale = 2

func number(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(pointsScale))
}

type AccountFields struct {
	UserID      string `json:"user_id"`
	BirthDate   string `json:"birth_date,omitempty"`
	JoiningDate string `json:"joining_date,omitempty"`
}

type AccountRequest struct {
	User AccountFields `json:"user"`
}

// ToAccount validates the request; a missing joining date means today.
func (r *AccountRequest) ToAccount(now time.Time) (account.Account, error) {
	v := serviceerrs.NewValidationError()
	acc := account.Account{
		ExternalID:  strings.TrimSpace(r.User.UserID),
		JoiningDate: now,
	}
	if acc.ExternalID == "" {
		v.Add("user_id", "can't be blank")
	}
	if r.User.BirthDate != "" {
		bd, err := time.ParseInLocation(dateLayout, r.User.BirthDate, now.Location())
		if err != nil {
			v.Add("birth_date", "must be a valid date")
		} else {
			acc.BirthDate = &bd
		}
	}
	if r.User.JoiningDate != "" {
		jd, err := time.ParseInLocation(dateLayout, r.User.JoiningDate, now.Location())
		if err != nil {
			v.Add("joining_date", "must be a valid date")
		} else {
			acc.JoiningDate = jd
		}
	}
	if err := v.OrNil(); err != nil {
		return account.Account{}, err
	}
	return acc, nil
}

type AccountResponse struct {
	BirthDate   *string     `json:"birth_date"`
	UserID      string      `json:"user_id"`
	JoiningDate string      `json:"joining_date"`
	Points      json.Number `json:"points"`
}

func NewAccountResponse(a *account.Account) AccountResponse {
	resp := AccountResponse{
		UserID:      a.ExternalID,
		JoiningDate: a.JoiningDate.Format(dateLayout),
		Points:      number(a.Points),
	}
	if a.BirthDate != nil {
		bd := a.BirthDate.Format(dateLayout)
		resp.BirthDate = &bd
	}
	return resp
}

func NewAccountResponses(list []account.Account) []AccountResponse {
	resp := make([]AccountResponse, len(list))
	for i := range list {
		resp[i] = NewAccountResponse(&list[i])
	}
	return resp
}

type TransactionFields struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
	Foreign  bool        `json:"foreign"`
}

type TransactionRequest struct {
	Transaction TransactionFields `json:"transaction"`
}

// ToIngest converts the body into an ingest request. An unparsable amount
// is reported as a field error; range checks are left to ingest so that
// account resolution happens first.
func (r *TransactionRequest) ToIngest(userID string) (ingest.Request, error) {
	req := ingest.Request{
		AccountExternalID: userID,
		Currency:          r.Transaction.Currency,
		Foreign:           r.Transaction.Foreign,
	}
	if r.Transaction.Amount == "" {
		return req, nil
	}
	amount, err := decimal.NewFromString(r.Transaction.Amount.String())
	if err != nil {
		v := serviceerrs.NewValidationError()
		v.Add("amount", "is not a number")
		return ingest.Request{}, v
	}
	req.Amount = amount
	return req, nil
}

type TransactionView struct {
	ID           uuid.UUID   `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	Amount       json.Number `json:"amount"`
	Currency     string      `json:"currency"`
	PointsEarned json.Number `json:"points_earned"`
	Foreign      bool        `json:"foreign"`
}

func NewTransactionView(tx *transaction.Transaction) TransactionView {
	return TransactionView{
		ID:           tx.ID,
		CreatedAt:    tx.CreatedAt,
		Amount:       json.Number(tx.Amount.String()),
		Currency:     tx.Currency,
		PointsEarned: number(tx.PointsEarned),
		Foreign:      tx.Foreign,
	}
}

type RewardView struct {
	IssuedAt    time.Time     `json:"issued_at"`
	ExpiresAt   *time.Time    `json:"expires_at"`
	RewardType  reward.Type   `json:"reward_type"`
	Description string        `json:"description"`
	Status      reward.Status `json:"status"`
	ID          uuid.UUID     `json:"id"`
}

func NewRewardView(r *reward.Reward) RewardView {
	return RewardView{
		ID:          r.ID,
		RewardType:  r.Type,
		Description: r.Description,
		Status:      r.Status,
		IssuedAt:    r.IssuedAt,
		ExpiresAt:   r.ExpiresAt,
	}
}

func NewRewardViews(list []reward.Reward) []RewardView {
	views := make([]RewardView, len(list))
	for i := range list {
		views[i] = NewRewardView(&list[i])
	}
	return views
}

type TransactionResponse struct {
	RewardsIssued   []RewardView    `json:"rewards_issued"`
	Transaction     TransactionView `json:"transaction"`
	PointsEarned    json.Number     `json:"points_earned"`
	UserTotalPoints json.Number     `json:"user_total_points"`
}

func NewTransactionResponse(res *ingest.Result) TransactionResponse {
	return TransactionResponse{
		Transaction:     NewTransactionView(&res.Transaction),
		PointsEarned:    number(res.PointsEarned),
		UserTotalPoints: number(res.NewBalance),
		RewardsIssued:   NewRewardViews(res.RewardsIssued),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
