package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nexusems/pkg/apperrors"
	"nexusems/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// StandardApiResponse is the envelope every handler answers with
type StandardApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`  // internal detail, never in release mode
	Errors  interface{} `json:"errors,omitempty"` // per-field validation failures
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, StandardApiResponse{
		Success: code < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// Error classifies err and writes the matching status and envelope
func Error(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	body := StandardApiResponse{Success: false, Message: apperrors.Message(err)}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Field != "" {
		body.Errors = map[string]string{appErr.Field: appErr.Message}
	}

	if status >= http.StatusInternalServerError {
		logger.GetDefault().LogHTTPError(c, err, status)
		if gin.Mode() != gin.ReleaseMode {
			body.Error = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, body)
}

// BindError answers a request whose body or params failed to bind
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[jsonFieldName(fe)] = describe(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, StandardApiResponse{
			Success: false,
			Message: "validation failed",
			Errors:  fields,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, StandardApiResponse{
		Success: false,
		Message: "invalid request body",
		Error:   err.Error(),
	})
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return toSnake(ns)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "dive":
		return "contains an invalid entry"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// toSnake turns "Seats[0].TicketID" into "seats[0].ticket_id"
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			prev := rune(0)
			if i > 0 {
				prev = rune(s[i-1])
			}
			if i > 0 && prev != '.' && prev != '[' && !(prev >= 'A' && prev <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
