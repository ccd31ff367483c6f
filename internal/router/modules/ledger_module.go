package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/mywallet/internal/interface/http"
	"github.com/oksasatya/mywallet/internal/interface/middleware"
)

// LedgerModule wires the session-protected movement routes.
// Protected: POST /novaEntrada, POST /novaSaida, GET /extrato
type LedgerModule struct {
	Handler *handlers.LedgerHandler
	Auth    middleware.Authenticator
	Logger  *logrus.Logger
}

func NewLedgerModule(h *handlers.LedgerHandler, auth middleware.Authenticator, logger *logrus.Logger) *LedgerModule {
	return &LedgerModule{Handler: h, Auth: auth, Logger: logger}
}

func (m *LedgerModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth, m.Logger))
	{
		auth.POST("/novaEntrada", m.Handler.Deposit)
		auth.POST("/novaSaida", m.Handler.Withdraw)
		auth.GET("/extrato", m.Handler.Statement)
	}
}
