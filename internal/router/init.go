package router

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/config"
	"github.com/oksasatya/mywallet/internal/application"
	"github.com/oksasatya/mywallet/internal/domain/repository"
	handlers "github.com/oksasatya/mywallet/internal/interface/http"
	"github.com/oksasatya/mywallet/internal/metrics"
	"github.com/oksasatya/mywallet/internal/router/modules"
	"github.com/oksasatya/mywallet/pkg/validation"
)

// Deps carries everything the HTTP modules need. Redis, Events and Metrics
// may be nil.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Users     repository.UserRepository
	Sessions  repository.SessionRepository
	Movements repository.MovementRepository
	Redis     *redis.Client
	Events    application.EventPublisher
	Metrics   *metrics.Metrics
	// Ready reports backend health for /healthz; nil means always ready.
	Ready modules.ReadyFunc
}

// InitModules builds services and handlers from deps and registers every
// module with the registry. Call once during startup.
func InitModules(r *Registry, deps Deps) {
	validation.Init()
	cfg := deps.Config

	accounts := application.NewAccountService(deps.Users, deps.Sessions, cfg.BcryptCost, deps.Logger)
	var recorder application.MovementRecorder
	var metricsHandler http.Handler
	if deps.Metrics != nil {
		recorder = deps.Metrics
		metricsHandler = deps.Metrics.Handler()
	}
	ledger := application.NewLedgerService(deps.Movements, deps.Events, recorder, deps.Logger)

	r.Add(modules.NewHealthModule(deps.Ready, metricsHandler))
	r.Add(modules.NewAccountModule(
		handlers.NewAccountHandler(accounts, deps.Logger, cfg.AuthExposeToken),
		deps.Redis,
		modules.RateLimits{
			Enabled:        cfg.RateLimitEnabled,
			LoginPerMin:    cfg.RateLimitLoginPerMin,
			RegisterPerMin: cfg.RateLimitRegisterPerMin,
			BypassPrivate:  cfg.RateLimitBypassPrivate,
		},
	))
	r.Add(modules.NewLedgerModule(handlers.NewLedgerHandler(ledger, deps.Logger), accounts, deps.Logger))
}
