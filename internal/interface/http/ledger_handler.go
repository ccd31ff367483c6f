package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/internal/application"
	"github.com/oksasatya/mywallet/internal/interface/middleware"
	"github.com/oksasatya/mywallet/pkg/response"
	"github.com/oksasatya/mywallet/pkg/validation"
)

type LedgerHandler struct {
	Svc    *application.LedgerService
	Logger *logrus.Logger
}

func NewLedgerHandler(svc *application.LedgerService, logger *logrus.Logger) *LedgerHandler {
	return &LedgerHandler{Svc: svc, Logger: logger}
}

type depositRequest struct {
	Deposit     *float64 `json:"deposit" binding:"required"`
	Description *string  `json:"description" binding:"omitempty,min=5"`
}

type withdrawRequest struct {
	Withdraw    *float64 `json:"withdraw" binding:"required"`
	Description *string  `json:"description" binding:"omitempty,min=5"`
}

// Deposit POST /novaEntrada (auth required)
func (h *LedgerHandler) Deposit(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Status(c, http.StatusUnauthorized)
		return
	}
	var req depositRequest
	if msgs := validation.BindJSON(c, &req); msgs != nil {
		response.Errors(c, http.StatusBadRequest, msgs)
		return
	}

	m, err := h.Svc.Deposit(c.Request.Context(), u, *req.Deposit, req.Description)
	if err != nil {
		internalError(c, h.Logger, err, "record deposit failed")
		return
	}
	response.Success(c, http.StatusOK, response.InsertAck{Acknowledged: true, InsertedID: m.ID})
}

// Withdraw POST /novaSaida (auth required)
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Status(c, http.StatusUnauthorized)
		return
	}
	var req withdrawRequest
	if msgs := validation.BindJSON(c, &req); msgs != nil {
		response.Errors(c, http.StatusBadRequest, msgs)
		return
	}

	m, err := h.Svc.Withdraw(c.Request.Context(), u, *req.Withdraw, req.Description)
	if err != nil {
		internalError(c, h.Logger, err, "record withdrawal failed")
		return
	}
	response.Success(c, http.StatusOK, response.InsertAck{Acknowledged: true, InsertedID: m.ID})
}

// Statement GET /extrato (auth required)
func (h *LedgerHandler) Statement(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Status(c, http.StatusUnauthorized)
		return
	}
	movements, err := h.Svc.Statement(c.Request.Context(), u)
	if err != nil {
		internalError(c, h.Logger, err, "load statement failed")
		return
	}
	response.Success(c, http.StatusOK, movements)
}
