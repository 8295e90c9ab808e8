package catalog

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

// RegisterRoutes mounts the reads any signed-in caller may use.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores", h.ListStores)
	rg.GET("/services", h.ListServices)
	rg.GET("/staff", h.ListActiveStaff)
}

// RegisterAdminRoutes expects rg to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/stores", h.CreateStore)

	rg.GET("/staff", h.ListStaff)
	rg.POST("/staff", h.CreateStaff)
	rg.PATCH("/staff/:id", h.UpdateStaff)
	rg.PATCH("/staff/:id/active", h.SetStaffActive)
	rg.DELETE("/staff/:id", h.DeleteStaff)

	rg.POST("/services", h.CreateService)

	rg.GET("/guests", h.ListGuests)
	rg.POST("/guests", h.CreateGuest)
	rg.PATCH("/guests/:id/active", h.SetGuestActive)
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}

func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.service.ListStores(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stores": stores})
}

func (h *Handler) CreateStore(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}
	store, err := h.service.CreateStore(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"store": store})
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) CreateService(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) ListActiveStaff(c *gin.Context) {
	h.listStaff(c, true)
}

func (h *Handler) ListStaff(c *gin.Context) {
	h.listStaff(c, c.Query("active") == "true")
}

func (h *Handler) listStaff(c *gin.Context, activeOnly bool) {
	storeID, err := request.QueryUUID(c, "store_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	staff, err := h.service.ListStaff(c.Request.Context(), storeID, activeOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": staff})
}

func (h *Handler) CreateStaff(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.service.CreateStaff(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"staff": staff})
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.service.UpdateStaff(c.Request.Context(), p, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": staff})
}

func (h *Handler) SetStaffActive(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.service.SetStaffActive(c.Request.Context(), p, id, *req.Active)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": staff})
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteStaff(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListGuests(c *gin.Context) {
	guests, err := h.service.ListGuests(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guests": guests})
}

func (h *Handler) CreateGuest(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req CreateGuestRequest
	if !bindJSON(c, &req) {
		return
	}
	guest, err := h.service.CreateGuest(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"guest": guest})
}

func (h *Handler) SetGuestActive(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	guest, err := h.service.SetGuestActive(c.Request.Context(), p, id, *req.Active)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": guest})
}
