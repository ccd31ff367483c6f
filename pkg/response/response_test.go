package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestStatus_EmptyBody(t *testing.T) {
	c, w := newCtx()
	Status(c, http.StatusCreated)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError_JSONString(t *testing.T) {
	c, w := newCtx()
	Error(c, http.StatusConflict, "email already registered")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `"email already registered"`, w.Body.String())
}

func TestErrors_DefaultsToBadRequest(t *testing.T) {
	c, w := newCtx()
	Errors(c, 0, []string{"deposit is required"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `["deposit is required"]`, w.Body.String())
}

func TestSuccess_InsertAck(t *testing.T) {
	c, w := newCtx()
	Success(c, 0, InsertAck{Acknowledged: true, InsertedID: "m-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"acknowledged":true,"insertedId":"m-1"}`, w.Body.String())
}
