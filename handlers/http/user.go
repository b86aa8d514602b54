package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"vitalmonitor/apperrors"
	"vitalmonitor/usecases"
	"vitalmonitor/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
	log     *zap.Logger
}

func NewUserHandler(useCase *usecases.UserUseCase, log *zap.Logger) *UserHandler {
	return &UserHandler{useCase: useCase, log: log}
}

// GetAllUsers handles GET /api/v1/users. Public projections only.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.useCase.GetAllUsers()
	if err != nil {
		h.log.Error("could not get all users", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not get all users")
		return
	}
	respondData(c, http.StatusOK, users)
}

// GetUserPagination handles GET /api/v1/users/pagination?limit=&offset=
func (h *UserHandler) GetUserPagination(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.useCase.ListUsers(limit, offset)
	if err != nil {
		h.log.Error("could not list users", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not list users")
		return
	}
	respondData(c, http.StatusOK, users)
}

// GetUserByID handles GET /api/v1/users/:userId (self-or-admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.useCase.GetUser(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user with specified id not exist")
			return
		}
		h.log.Error("could not get user", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not get user data")
		return
	}

	respondData(c, http.StatusOK, user.PublicData())
}

// UpdateUser handles PUT /api/v1/users/:userId (self-or-admin). The
// whole body is validated before anything is persisted.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "failed during input validation")
		return
	}
	if body == nil {
		body = map[string]any{}
	}

	// The path addresses the resource; the id in the body may not differ.
	body["id"] = userID

	if errs := validation.Validate(body, validation.UserSchema, true); errs.HasErrors() {
		respondError(c, http.StatusBadRequest, "failed during input validation", errs)
		return
	}

	user, err := h.useCase.UpdateUser(userID, body)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user with specified id not exist")
			return
		}
		h.log.Error("could not update user", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not update user data")
		return
	}

	respondData(c, http.StatusOK, user.PublicData())
}

// DeleteUser handles DELETE /api/v1/users/:userId (self-or-admin).
// Deleting a user also deletes the linked device, when there is one.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.useCase.DeleteUser(userID); err != nil {
		h.log.Error("could not delete user", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not delete user data")
		return
	}

	respondDeleted(c)
}

// PairDevice handles PATCH /api/v1/users/:userId/devices
// (self-or-admin): links an existing device to the user.
func (h *UserHandler) PairDevice(c *gin.Context) {
	userID := c.Param("userId")

	var body struct {
		DeviceID string `json:"device_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "failed during input validation")
		return
	}

	user, err := h.useCase.PairDevice(userID, body.DeviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user or device with specified id not exist")
			return
		}
		h.log.Error("could not pair device",
			zap.String("user_id", userID), zap.String("device_id", body.DeviceID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not pair device")
		return
	}

	respondData(c, http.StatusOK, user.PublicData())
}

// DeleteUserDevice handles DELETE /api/v1/users/:userId/devices
// (self-or-admin): deletes the user's linked device.
func (h *UserHandler) DeleteUserDevice(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.useCase.UnpairAndDeleteDevice(userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user with specified id not exist")
			return
		}
		h.log.Error("could not delete user device", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not delete user device")
		return
	}

	respondDeleted(c)
}
