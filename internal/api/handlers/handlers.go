package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/talx-hub/gopher-loyalty/internal/api/dto"
	"github.com/talx-hub/gopher-loyalty/internal/ingest"
	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/utils/clock"
	"github.com/talx-hub/gopher-loyalty/internal/utils/logger"
)

const (
	paramUserID   = "user_id"
	paramRewardID = "reward_id"
)

// RetryAfterSeconds is sent with 503 when an account lock stays busy.
const RetryAfterSeconds = 1

var errNoTenant = errors.New("no tenant in request context")

type AccountStore interface {
	CreateAccount(ctx context.Context, t tenant.Context, a *account.Account) error
	FindAccount(ctx context.Context, t tenant.Context, externalID string) (account.Account, error)
	ListAccounts(ctx context.Context, t tenant.Context) ([]account.Account, error)
}

type TransactionIngester interface {
	Create(ctx context.Context, t tenant.Context, req ingest.Request) (ingest.Result, error)
}

type RewardService interface {
	List(ctx context.Context, t tenant.Context, externalID string) ([]reward.Reward, error)
	Redeem(ctx context.Context, t tenant.Context, externalID string, rewardID uuid.UUID,
	) (reward.Reward, error)
}

type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

func tenantFromContext(ctx context.Context) (tenant.Context, error) {
	id, ok := ctx.Value(model.KeyContextTenantID).(string)
	if !ok {
		return tenant.Context{}, errNoTenant
	}
	t, err := tenant.New(id)
	if err != nil {
		return tenant.Context{}, errNoTenant
	}
	return t, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromContext(r.Context()).LogAttrs(r.Context(),
			slog.LevelDebug,
			"failed to decode request body",
			slog.Any(model.KeyLoggerError, err),
		)
		writeJSON(w, r, http.StatusBadRequest,
			dto.ErrorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.FromContext(r.Context()).LogAttrs(r.Context(),
			slog.LevelError,
			"failed to encode response",
			slog.Any(model.KeyLoggerError, err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
		return
	}
	w.Header().Set(model.HeaderContentType, "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(data); err != nil {
		logger.FromContext(r.Context()).LogAttrs(r.Context(),
			slog.LevelError,
			"failed to write response",
			slog.Any(model.KeyLoggerError, err),
		)
	}
}

// writeError maps service errors onto the public error payloads. Conflicts
// and unknown failures share the generic internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *serviceerrs.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, r, http.StatusUnprocessableEntity,
			dto.ValidationErrorResponse{Errors: ve.Fields})
	case errors.Is(err, serviceerrs.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case errors.Is(err, serviceerrs.ErrInvalidTransition):
		writeJSON(w, r, http.StatusUnprocessableEntity,
			dto.ValidationErrorResponse{Errors: map[string]string{"status": "is not active"}})
	case errors.Is(err, serviceerrs.ErrResourceBusy):
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
		writeJSON(w, r, http.StatusServiceUnavailable,
			dto.ErrorResponse{Error: "resource busy"})
	default:
		logger.FromContext(r.Context()).LogAttrs(r.Context(),
			slog.LevelError,
			"request failed",
			slog.Any(model.KeyLoggerError, err),
		)
		writeJSON(w, r, http.StatusInternalServerError,
			dto.ErrorResponse{Error: "internal error"})
	}
}

type AccountHandler struct {
	logger *slog.Logger
	store  AccountStore
	clock  clock.Clock
}

func NewAccountHandler(st AccountStore, clk clock.Clock, log *slog.Logger) *AccountHandler {
	return &AccountHandler{logger: log, store: st, clock: clk}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	t, err := tenantFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.AccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	acc, err := req.ToAccount(h.clock.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err = h.store.CreateAccount(r.Context(), t, &acc); err != nil {
		writeError(w, r, err)
		return
	}

	h.logger.LogAttrs(r.Context(), slog.LevelInfo, "account created",
		slog.String("tenant", t.ID),
		slog.String("user_id", acc.ExternalID),
	)
	writeJSON(w, r, http.StatusCreated, dto.NewAccountResponse(&acc))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	t, err := tenantFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	acc, err := h.store.FindAccount(r.Context(), t, chi.URLParam(r, paramUserID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewAccountResponse(&acc))
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	t, err := tenantFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.store.ListAccounts(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewAccountResponses(list))
}

type TransactionHandler struct {
	logger   *slog.Logger
	ingester TransactionIngester
}

func NewTransactionHandler(in TransactionIngester, log *slog.Logger) *TransactionHandler {
	return &TransactionHandler{logger: log, ingester: in}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := tenantFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body dto.TransactionRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	req, err := body.ToIngest(chi.URLParam(r, paramUserID))
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.ingester.Create(r.Context(), t, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, dto.NewTransactionResponse(&res))
}

type RewardHandler struct {
	logger  *slog.Logger
	rewards RewardService
}

func NewRewardHandler(rs RewardService, log *slog.Logger) *RewardHandler {
	return &RewardHandler{logger: log, rewards: rs}
}

func (h *RewardHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	t, err := tenantFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.rewards.List(r.Context(), t, chi.URLParam(r, paramUserID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRewardViews(list))
}

func (h *RewardHandler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	t, err := tenantFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// A malformed id cannot name any reward.
	rewardID, err := uuid.Parse(chi.URLParam(r, paramRewardID))
	if err != nil {
		writeError(w, r, serviceerrs.ErrNotFound)
		return
	}

	rw, err := h.rewards.Redeem(r.Context(), t, chi.URLParam(r, paramUserID), rewardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRewardView(&rw))
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(hc HealthChecker) *HealthHandler {
	return &HealthHandler{checker: hc}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), model.DefaultTimeout)
	defer cancel()

	if err := h.checker.CheckHealth(ctx); err != nil {
		logger.FromContext(r.Context()).LogAttrs(r.Context(),
			slog.LevelError,
			"health check failed",
			slog.Any(model.KeyLoggerError, err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
