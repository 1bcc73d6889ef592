package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/talx-hub/gopher-loyalty/internal/api/middlewares"
)

type CustomRouter struct {
	router *chi.Mux
	logger *slog.Logger
	secret []byte
}

func New(secret []byte, log *slog.Logger) *CustomRouter {
	if log == nil {
		log = slog.Default()
	}
	router := &CustomRouter{
		router: chi.NewRouter(),
		logger: log,
		secret: secret,
	}

	return router
}

type AccountHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	ListAccounts(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	CreateTransaction(w http.ResponseWriter, r *http.Request)
}

type RewardHandler interface {
	ListRewards(w http.ResponseWriter, r *http.Request)
	RedeemReward(w http.ResponseWriter, r *http.Request)
}

type HealthHandler interface {
	Ping(w http.ResponseWriter, r *http.Request)
}

type Handler interface {
	AccountHandler
	TransactionHandler
	RewardHandler
	HealthHandler
}

func (cr *CustomRouter) SetRouter(h Handler) {
	cr.router.Use(middleware.RequestID)
	cr.router.Use(middlewares.RequestLogger(cr.logger))
	cr.router.Use(middleware.Recoverer)

	cr.router.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.Authentication(cr.secret, cr.logger))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListAccounts)
			r.With(middleware.AllowContentType("application/json")).
				Post("/", h.CreateAccount)

			r.Route("/{user_id}", func(r chi.Router) {
				r.Get("/", h.GetAccount)
				r.With(middleware.AllowContentType("application/json")).
					Post("/transactions", h.CreateTransaction)
				r.Get("/rewards", h.ListRewards)
				r.Post("/rewards/{reward_id}/redeem", h.RedeemReward)
			})
		})
	})
	cr.router.Get("/ping", h.Ping)

	cr.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)
	})
}

func (cr *CustomRouter) GetRouter() *chi.Mux {
	return cr.router
}
