package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/mywallet/internal/interface/http"
	"github.com/oksasatya/mywallet/internal/interface/middleware"
)

// RateLimits configures the per-IP limiters on the public account routes.
type RateLimits struct {
	Enabled        bool
	LoginPerMin    int
	RegisterPerMin int
	BypassPrivate  bool
}

// AccountModule wires registration and login.
// Public: POST /novoCadastro, POST /
type AccountModule struct {
	Handler *handlers.AccountHandler
	Redis   *redis.Client
	Limits  RateLimits
}

func NewAccountModule(h *handlers.AccountHandler, rdb *redis.Client, limits RateLimits) *AccountModule {
	return &AccountModule{Handler: h, Redis: rdb, Limits: limits}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/novoCadastro", m.limiter(m.Limits.RegisterPerMin), m.Handler.Register)
	rg.POST("/", m.limiter(m.Limits.LoginPerMin), m.Handler.Login)
}

func (m *AccountModule) limiter(perMin int) gin.HandlerFunc {
	if !m.Limits.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	var allow middleware.AllowFunc
	if m.Limits.BypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	return middleware.RateLimit(m.Redis, perMin, time.Minute, middleware.KeyByIPAndPath(), allow)
}
