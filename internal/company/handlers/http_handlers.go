package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPHandler serves the company REST resource with gin.
type HTTPHandler struct {
	service CompanyController
	logger  *zap.Logger
}

// NewHTTPHandler constructs a new HTTPHandler with the given service and logger.
func NewHTTPHandler(service CompanyController, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// ListCompanies responds with every company, or an empty array.
func (h *HTTPHandler) ListCompanies(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, modelsToResponse(companies))
}

// CreateCompany validates the payload and creates a company.
func (h *HTTPHandler) CreateCompany(c *gin.Context) {
	var req CompanyRequest
	if !h.bind(c, &req) {
		return
	}

	created, err := h.service.CreateCompany(c.Request.Context(), requestToModel(&req))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, modelToResponse(created))
}

// GetCompany responds with the company named in the path.
func (h *HTTPHandler) GetCompany(c *gin.Context) {
	company, err := h.service.GetCompany(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, modelToResponse(company))
}

// UpdateCompany applies a partial update to the company named in the path.
func (h *HTTPHandler) UpdateCompany(c *gin.Context) {
	var req CompanyPatchRequest
	if !h.bind(c, &req) {
		return
	}

	updated, err := h.service.UpdateCompany(c.Request.Context(), c.Param("name"), patchToUpdate(&req))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, modelToResponse(updated))
}

// DeleteCompany removes the company named in the path.
func (h *HTTPHandler) DeleteCompany(c *gin.Context) {
	if err := h.service.DeleteCompany(c.Request.Context(), c.Param("name")); err != nil {
		h.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bind decodes the request body into obj according to its content type.
// An empty body leaves obj zero.
func (h *HTTPHandler) bind(c *gin.Context, obj interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBind(obj); err != nil {
		h.logger.Debug("malformed request body", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, detail(fmt.Sprintf("Malformed request: %v", err)))
		return false
	}
	return true
}

func (h *HTTPHandler) abort(c *gin.Context, err error) {
	code, body := mapHTTPError(err, h.logger)
	c.AbortWithStatusJSON(code, body)
}
