package httpHandler

import (
	"net/http"
	"testing"
	"time"

	"vitalmonitor/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	useCase := usecases.NewUserUseCase(newFakeUserRepo(), newFakeDeviceRepo())
	issuer := newTestIssuer(t, time.Hour)
	handler := NewAuthHandler(useCase, issuer, "jwt", zap.NewNop())

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", handler.Logout)
	return r
}

func TestRegisterEndpoint(t *testing.T) {
	r := authRouter(t)

	w, env := do(t, r, http.MethodPost, "/auth/register",
		`{"username":"ada","password":"s3cret","email":"ada@example.com","first_name":"Ada"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, env.Data)
	assert.Equal(t, "ada", env.Data["username"])
	assert.NotEmpty(t, env.Data["id"])
	// The public projection never carries credential material.
	_, hasPassword := env.Data["password"]
	assert.False(t, hasPassword)
}

func TestRegisterValidationAggregation(t *testing.T) {
	r := authRouter(t)

	// Unrecognized property plus missing password: both reported.
	w, env := do(t, r, http.MethodPost, "/auth/register",
		`{"username":"ada","nickname":"countess"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.GreaterOrEqual(t, len(env.Error.Errors), 2)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := authRouter(t)

	w, _ := do(t, r, http.MethodPost, "/auth/register", `{"username":"ada","password":"pw"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/auth/register", `{"username":"ada","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
}

func TestLoginSetsAuthCookie(t *testing.T) {
	r := authRouter(t)

	w, _ := do(t, r, http.MethodPost, "/auth/register", `{"username":"ada","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/auth/login", `{"username":"ada","password":"s3cret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada", env.Data["username"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var jwtCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "jwt" {
			jwtCookie = c
		}
	}
	require.NotNil(t, jwtCookie)
	assert.NotEmpty(t, jwtCookie.Value)
	assert.True(t, jwtCookie.HttpOnly)
}

func TestLoginWrongPassword(t *testing.T) {
	r := authRouter(t)

	w, _ := do(t, r, http.MethodPost, "/auth/register", `{"username":"ada","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/auth/login", `{"username":"ada","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, http.StatusUnauthorized, env.Error.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	r := authRouter(t)

	w, env := do(t, r, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env.Data["logged_out"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
