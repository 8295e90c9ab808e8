package validator

import (
	"testing"

	"gymbooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	err := Check(domain.Service{Name: "Stretch", Category: "yoga", DurationMinutes: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Category oneof")
	assert.Contains(t, err.Error(), "DurationMinutes required")

	assert.NoError(t, Check(domain.Service{Name: "Stretch", Category: domain.CategorySeitai, DurationMinutes: 30}))
}
