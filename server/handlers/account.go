package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/aurascribe/errors"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/server"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// RegisterUser creates a new account.
func (h *Handlers) RegisterUser(c *gin.Context) {
	if h.deps.Users == nil {
		server.RespondWithError(c, apperrors.New(apperrors.ErrCodeUnauthorized,
			"account management is not enabled", http.StatusServiceUnavailable))
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid JSON payload"))
		return
	}

	user, err := h.deps.Users.Register(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("user registered", logger.Fields(logger.FieldUserID, user.ID))
	server.RespondCreated(c, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Login verifies credentials and issues a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	if h.deps.Users == nil || h.deps.Auth == nil {
		server.RespondWithError(c, apperrors.New(apperrors.ErrCodeUnauthorized,
			"account management is not enabled", http.StatusServiceUnavailable))
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid JSON payload"))
		return
	}

	user, err := h.deps.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	token, err := h.deps.Auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, tokenResponse{Token: token, UserID: user.ID, Role: user.Role})
}
