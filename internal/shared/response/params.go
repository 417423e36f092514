package response

import (
	"strconv"

	"go-procurement/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ParamID reads a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ErrInvalidID
	}
	return id, nil
}
