package slot

import (
	"net/http"

	"gymbooking/internal/middleware"
	"gymbooking/internal/pkg/request"
	"gymbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes expects rg to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/slots", h.CreateSlot)
	rg.GET("/slots/:id", h.GetSlot)
	rg.PATCH("/slots/:id/publish", h.SetPublished)
	rg.DELETE("/slots/:id", h.DeleteSlot)
}

func (h *Handler) CreateSlot(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"slot": slot})
}

func (h *Handler) GetSlot(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	slot, err := h.service.GetSlot(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) SetPublished(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "published is required")
		return
	}

	slot, err := h.service.SetPublished(c.Request.Context(), p, id, *req.Published)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSlot(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
