package response

import (
	"errors"
	"net/http"

	"gymbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError writes the envelope and stops the handler chain.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

type mapping struct {
	target error
	status int
	code   string
}

// Order matters: the first match wins.
var mappings = []mapping{
	{domain.ErrSlotNotPublished, http.StatusBadRequest, "SLOT_NOT_PUBLISHED"},
	{domain.ErrSlotInPast, http.StatusBadRequest, "SLOT_IN_PAST"},
	{domain.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrSlotConflict, http.StatusConflict, "SLOT_CONFLICT"},
	{domain.ErrSlotAlreadyBooked, http.StatusConflict, "SLOT_ALREADY_BOOKED"},
	{domain.ErrSlotHasBooking, http.StatusConflict, "SLOT_HAS_BOOKING"},
	{domain.ErrStaffHasSlots, http.StatusConflict, "STAFF_HAS_SLOTS"},
	{domain.ErrAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED"},
	{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// FromError writes err using the domain error table. Unknown errors are
// attached to the gin context for the error logger and answered with a
// generic message.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Error(c, status, code, "Internal server error")
		return
	}
	Error(c, status, code, err.Error())
}
