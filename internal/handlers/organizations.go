package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orgdhq/orgd/internal/middleware"
	"github.com/orgdhq/orgd/internal/models"
	"github.com/orgdhq/orgd/internal/services"
	appErrors "github.com/orgdhq/orgd/pkg/errors"
	"github.com/orgdhq/orgd/pkg/metrics"
	"github.com/orgdhq/orgd/pkg/response"
)

// OrganizationHandler exposes the organization lifecycle endpoints.
type OrganizationHandler struct {
	svc *services.OrganizationService
}

func NewOrganizationHandler(svc *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

type createOrganizationRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=128"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
}

type updateOrganizationRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=128"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
}

// organizationView is the id-less representation returned by lookups.
type organizationView struct {
	Name           string `json:"name"`
	AdminEmail     string `json:"admin_email"`
	CollectionName string `json:"collection_name"`
}

func viewOf(org *models.Organization) organizationView {
	return organizationView{
		Name:           org.Name,
		AdminEmail:     org.AdminEmail,
		CollectionName: org.CollectionName,
	}
}

// POST /org/create
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req createOrganizationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	org, err := h.svc.Create(requestContext(c), services.CreateOrganizationInput{
		Name:     strings.TrimSpace(req.OrganizationName),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.OrgOperations.WithLabelValues("create", "failure").Inc()
		response.Error(c, mapServiceError(err))
		return
	}

	metrics.OrgOperations.WithLabelValues("create", "success").Inc()
	response.Success(c, http.StatusOK, gin.H{
		"message": "Organization created successfully",
		"data":    org,
	})
}

// GET /org/get
func (h *OrganizationHandler) Get(c *gin.Context) {
	name := strings.TrimSpace(c.Query("organization_name"))
	if name == "" {
		response.Error(c, appErrors.NewBadRequest("organization_name is required"))
		return
	}

	org, err := h.svc.Get(requestContext(c), name)
	if err != nil {
		response.Error(c, mapServiceError(err))
		return
	}

	response.Success(c, http.StatusOK, viewOf(org))
}

// PUT /org/update
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req updateOrganizationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.svc.Rename(requestContext(c), services.RenameOrganizationInput{
		NewName:  strings.TrimSpace(req.OrganizationName),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.OrgOperations.WithLabelValues("update", "failure").Inc()
		response.Error(c, mapServiceError(err))
		return
	}

	metrics.OrgOperations.WithLabelValues("update", "success").Inc()
	response.Success(c, http.StatusOK, gin.H{"message": "Organization updated and data synced."})
}

// DELETE /org/delete
func (h *OrganizationHandler) Delete(c *gin.Context) {
	name := strings.TrimSpace(c.Query("organization_name"))
	if name == "" {
		response.Error(c, appErrors.NewBadRequest("organization_name is required"))
		return
	}

	claims := middleware.ClaimsFromContext(c)

	if err := h.svc.Delete(requestContext(c), name, claims); err != nil {
		metrics.OrgOperations.WithLabelValues("delete", "failure").Inc()
		response.Error(c, mapServiceError(err))
		return
	}

	metrics.OrgOperations.WithLabelValues("delete", "success").Inc()
	response.Success(c, http.StatusOK, gin.H{"message": "Organization deleted"})
}

// mapServiceError translates service sentinels into transport errors.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		return appErrors.ErrOrganizationNotFound
	case errors.Is(err, services.ErrOrganizationExists):
		return appErrors.ErrOrganizationExists
	case errors.Is(err, services.ErrInvalidCredentials):
		return appErrors.ErrInvalidCredentials
	case errors.Is(err, services.ErrForbidden):
		return appErrors.ErrForbidden
	default:
		return appErrors.ErrInternalServer.WithInternal(err)
	}
}
