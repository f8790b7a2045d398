package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// invalidData translates a binding failure into the structured violations
// list every write route returns on malformed input.
func invalidData(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			violations = append(violations, gin.H{"field": fe.Field(), "rule": fe.Tag()})
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data", "errors": violations})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data", "errors": []gin.H{{"field": "body", "rule": err.Error()}}})
}

// serverError reports an unexpected failure without leaking internal detail.
func serverError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return id, true
}
