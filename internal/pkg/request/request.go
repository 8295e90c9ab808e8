// Package request holds small helpers for reading gin path and query values.
package request

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gymbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// ParamUUID parses a path parameter and answers 400 when it is malformed.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// QueryUUID returns nil when the parameter is absent.
func QueryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &id, nil
}

// QueryDate parses YYYY-MM-DD as a calendar day in loc.
func QueryDate(c *gin.Context, name string, loc *time.Location) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, expected YYYY-MM-DD", name)
	}
	return &d, nil
}

func QueryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
