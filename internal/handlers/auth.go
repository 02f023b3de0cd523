package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgdhq/orgd/internal/services"
	"github.com/orgdhq/orgd/pkg/metrics"
	"github.com/orgdhq/orgd/pkg/response"
)

// AuthHandler manages admin authentication.
type AuthHandler struct {
	svc *services.OrganizationService
}

func NewAuthHandler(svc *services.OrganizationService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.svc.Login(requestContext(c), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, mapServiceError(err))
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	response.Success(c, http.StatusOK, result)
}
