package query

import (
	"net/http"

	"gymbooking/internal/domain"
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

// RegisterRoutes mounts the guest-facing reads; rg must be behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.SearchAvailability)
	rg.GET("/bookings/me", h.MyBookings)
}

// RegisterAdminRoutes expects rg to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.SlotBoard)
	rg.GET("/bookings", h.AdminBookings)
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/guests/:id/bookings", h.GuestBookings)
}

func (h *Handler) SearchAvailability(c *gin.Context) {
	storeID, err := request.QueryUUID(c, "store_id")
	if err != nil || storeID == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "store_id is required")
		return
	}
	serviceID, err := request.QueryUUID(c, "service_id")
	if err != nil || serviceID == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "service_id is required")
		return
	}
	date, err := request.QueryDate(c, "date", h.service.Location())
	if err != nil || date == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date is required as YYYY-MM-DD")
		return
	}

	slots, err := h.service.SearchAvailability(c.Request.Context(), AvailabilityQuery{
		StoreID:   *storeID,
		ServiceID: *serviceID,
		Date:      *date,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) MyBookings(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	history, err := h.service.GuestHistory(c.Request.Context(), p.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) GuestBookings(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	history, err := h.service.GuestHistory(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) SlotBoard(c *gin.Context) {
	storeID, err := request.QueryUUID(c, "store_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	from, err := request.QueryDate(c, "from", h.service.Location())
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rows, err := h.service.AdminSlotBoard(c.Request.Context(), SlotBoardQuery{
		StoreID: storeID,
		From:    from,
		Days:    request.QueryInt(c, "days", 0),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": rows})
}

func (h *Handler) AdminBookings(c *gin.Context) {
	q := AdminBookingQuery{
		Limit:  request.QueryInt(c, "limit", DefaultPageLimit),
		Offset: request.QueryInt(c, "offset", 0),
	}.normalized()
	if raw := c.Query("status"); raw != "" {
		status := domain.BookingStatus(raw)
		q.Status = &status
	}

	rows, err := h.service.AdminBookings(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"bookings": rows,
		"limit":    q.Limit,
		"offset":   q.Offset,
	})
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
