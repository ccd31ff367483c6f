package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name            string `json:"name" binding:"required,min=4,max=30"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,min=6"`
}

type entry struct {
	Deposit     *float64 `json:"deposit" binding:"required"`
	Description *string  `json:"description" binding:"omitempty,min=5"`
}

func bind(t *testing.T, body string, dst any) []string {
	t.Helper()
	Init()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return BindJSON(c, dst)
}

func TestBindJSON_Valid(t *testing.T) {
	var s signup
	msgs := bind(t, `{"name":"Maria","email":"maria@example.com","password":"123456","passwordConfirm":"123456"}`, &s)
	assert.Nil(t, msgs)
	assert.Equal(t, "Maria", s.Name)
}

func TestBindJSON_ReportsEveryField(t *testing.T) {
	var s signup
	msgs := bind(t, `{"name":"Ana","email":"not-an-email","password":"123"}`, &s)
	assert.Equal(t, []string{
		"name must be at least 4 characters long",
		"email must be a valid email",
		"password must be at least 6 characters long",
		"passwordConfirm is required",
	}, msgs)
}

func TestBindJSON_EmptyBody(t *testing.T) {
	var s signup
	msgs := bind(t, ``, &s)
	assert.Equal(t, []string{
		"name is required",
		"email is required",
		"password is required",
		"passwordConfirm is required",
	}, msgs)
}

func TestBindJSON_NameTooLong(t *testing.T) {
	var s signup
	msgs := bind(t, `{"name":"`+strings.Repeat("a", 31)+`","email":"a@b.co","password":"123456","passwordConfirm":"123456"}`, &s)
	assert.Equal(t, []string{"name must be at most 30 characters long"}, msgs)
}

func TestBindJSON_ZeroIsAPresentNumber(t *testing.T) {
	var e entry
	assert.Nil(t, bind(t, `{"deposit":0}`, &e))
	if assert.NotNil(t, e.Deposit) {
		assert.Zero(t, *e.Deposit)
	}
}

func TestBindJSON_OptionalDescription(t *testing.T) {
	var e entry
	msgs := bind(t, `{"description":"abc"}`, &e)
	assert.Equal(t, []string{
		"deposit is required",
		"description must be at least 5 characters long",
	}, msgs)
}

func TestBindJSON_WrongType(t *testing.T) {
	var e entry
	msgs := bind(t, `{"deposit":"cem"}`, &e)
	assert.Equal(t, []string{"deposit must be a number"}, msgs)
}

func TestBindJSON_WrongTypeKeepsOtherViolations(t *testing.T) {
	var s signup
	msgs := bind(t, `{"name":123,"email":"nope"}`, &s)
	assert.Equal(t, []string{
		"name must be a string",
		"email must be a valid email",
		"password is required",
		"passwordConfirm is required",
	}, msgs)
}

func TestBindJSON_WrongTypeInLaterField(t *testing.T) {
	var s signup
	msgs := bind(t, `{"name":"Maria","email":"maria@example.com","password":123456}`, &s)
	assert.Equal(t, []string{
		"password must be a string",
		"passwordConfirm is required",
	}, msgs)
}

func TestBindJSON_WrongTypeWithShortDescription(t *testing.T) {
	var e entry
	msgs := bind(t, `{"deposit":"cem","description":"abc"}`, &e)
	assert.Equal(t, []string{
		"deposit must be a number",
		"description must be at least 5 characters long",
	}, msgs)
}

func TestBindJSON_NotAnObject(t *testing.T) {
	var e entry
	assert.Equal(t, []string{"payload must be a JSON object"}, bind(t, `[1,2]`, &e))
}

func TestBindJSON_Malformed(t *testing.T) {
	var e entry
	msgs := bind(t, `{"deposit":`, &e)
	assert.Len(t, msgs, 1)
}
