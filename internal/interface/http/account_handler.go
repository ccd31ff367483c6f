package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/internal/application"
	"github.com/oksasatya/mywallet/pkg/response"
	"github.com/oksasatya/mywallet/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
	// ExposeToken returns the issued session token in the login body.
	ExposeToken bool
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger, exposeToken bool) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger, ExposeToken: exposeToken}
}

type registerRequest struct {
	Name            string `json:"name" binding:"required,min=4,max=30"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /novoCadastro
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if msgs := validation.BindJSON(c, &req); msgs != nil {
		response.Errors(c, http.StatusUnauthorized, msgs)
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	switch {
	case errors.Is(err, application.ErrPasswordMismatch):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusConflict, err.Error())
	case err != nil:
		internalError(c, h.Logger, err, "register failed")
	default:
		response.Status(c, http.StatusCreated)
	}
}

// Login POST /
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if msgs := validation.BindJSON(c, &req); msgs != nil {
		response.Error(c, http.StatusNotFound, application.ErrInvalidCredentials.Error())
		return
	}

	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(c, h.Logger, err, "login failed")
		return
	}
	if h.ExposeToken {
		response.Success(c, http.StatusOK, response.TokenBody{Token: sess.Token})
		return
	}
	response.Status(c, http.StatusOK)
}

// internalError logs err and answers 500 without any detail.
func internalError(c *gin.Context, logger *logrus.Logger, err error, msg string) {
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"route":      c.FullPath(),
		}).Error(msg)
	}
	response.Status(c, http.StatusInternalServerError)
}
