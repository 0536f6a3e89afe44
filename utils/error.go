package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	writeError(c, status, ErrorResponse{Message: message, Details: details})
}

// JSONFieldsError is JSONError for validation failures that name the
// offending fields.
func JSONFieldsError(c *gin.Context, status int, message string, fields []string) {
	writeError(c, status, ErrorResponse{Message: message, Fields: fields})
}

func writeError(c *gin.Context, status int, resp ErrorResponse) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
	}
	if resp.Details != "" {
		fields = append(fields, zap.String("details", resp.Details))
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(resp.Message, fields...)
	} else {
		GetLogger().Warn(resp.Message, fields...)
	}
	c.AbortWithStatusJSON(status, resp)
}
