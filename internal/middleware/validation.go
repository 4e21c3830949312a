package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes the 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleValidationError(c, err)
		return false
	}
	return true
}

// ParseIDParam reads a positive integer path parameter. On failure it
// writes the 400 response and returns false.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+name).WithField(name)
		c.AbortWithStatusJSON(400, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
