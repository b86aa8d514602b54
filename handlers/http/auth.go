package httpHandler

import (
	"errors"
	"net/http"

	"vitalmonitor/apperrors"
	"vitalmonitor/auth"
	"vitalmonitor/entities"
	"vitalmonitor/usecases"
	"vitalmonitor/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	useCase    *usecases.UserUseCase
	issuer     *auth.Issuer
	cookieName string
	log        *zap.Logger
}

func NewAuthHandler(useCase *usecases.UserUseCase, issuer *auth.Issuer, cookieName string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, issuer: issuer, cookieName: cookieName, log: log}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "failed during input validation")
		return
	}

	// The id is assigned server-side, so the shape check runs without
	// the identifier rule; username and password are required here.
	errs := validation.Validate(body, validation.UserSchema, false)
	if v, ok := body["username"].(string); !ok || v == "" {
		errs = errs.Add("user", "username", "username is required")
	}
	if v, ok := body["password"].(string); !ok || v == "" {
		errs = errs.Add("user", "password", "password is required")
	}
	if errs.HasErrors() {
		respondError(c, http.StatusBadRequest, "failed during input validation", errs)
		return
	}

	user := userFromBody(body)
	password, _ := body["password"].(string)

	if err := h.useCase.Register(user, password); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			respondError(c, http.StatusBadRequest, "failed during input validation",
				validation.List{}.Add("user", "username", "username already taken"))
			return
		}
		h.log.Error("could not register user", zap.String("username", user.Username), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not register user")
		return
	}

	respondData(c, http.StatusCreated, user.PublicData())
}

// Login handles POST /api/v1/auth/login: verifies the credentials,
// issues a session token and sets the auth cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "failed during input validation")
		return
	}

	user, err := h.useCase.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.log.Error("could not authenticate user", zap.String("username", req.Username), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not authenticate user")
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.log.Error("could not issue token", zap.String("user_id", user.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not authenticate user")
		return
	}

	c.SetCookie(h.cookieName, token, int(h.issuer.TTL().Seconds()), "/", "", false, true)
	respondData(c, http.StatusOK, user.PublicData())
}

// Logout handles POST /api/v1/auth/logout by clearing the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	respondData(c, http.StatusOK, gin.H{"logged_out": true})
}

func userFromBody(body map[string]any) *entities.User {
	user := &entities.User{}
	if v, ok := body["id"].(string); ok {
		user.ID = v
	}
	if v, ok := body["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := body["last_name"].(string); ok {
		user.LastName = v
	}
	if v, ok := body["username"].(string); ok {
		user.Username = v
	}
	if v, ok := body["picture"].(string); ok {
		user.Picture = v
	}
	if v, ok := body["email"].(string); ok {
		user.Email = v
	}
	if v, ok := body["role"].(string); ok {
		user.Role = v
	}
	if v, ok := body["device_id"].(string); ok {
		user.DeviceID = v
	}
	return user
}
