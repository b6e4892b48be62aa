package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CareVoice/carevoice-backend/services"
	"github.com/CareVoice/carevoice-backend/types"
)

// AuthHandler handles administrator login.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login verifies the shared administrator secret and returns a bearer token
// valid for 24 hours. The response never hints how close a wrong attempt was.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	token, err := h.auth.Login(req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{Success: true, Token: token})
}
