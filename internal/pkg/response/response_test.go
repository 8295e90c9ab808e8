package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymbooking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: staff is inactive", domain.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{domain.ErrSlotNotPublished, http.StatusBadRequest, "SLOT_NOT_PUBLISHED"},
		{domain.ErrSlotInPast, http.StatusBadRequest, "SLOT_IN_PAST"},
		{domain.ErrSlotConflict, http.StatusConflict, "SLOT_CONFLICT"},
		{domain.ErrSlotAlreadyBooked, http.StatusConflict, "SLOT_ALREADY_BOOKED"},
		{domain.ErrSlotHasBooking, http.StatusConflict, "SLOT_HAS_BOOKING"},
		{domain.ErrStaffHasSlots, http.StatusConflict, "STAFF_HAS_SLOTS"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, code := Classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestFromError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "password")
	assert.Len(t, c.Errors, 1)
}
