package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope is the shape of every API response. CorrelationID ties the
// response to the request-scoped log entries.
type Envelope struct {
	Message       string `json:"message"`
	Data          any    `json:"data,omitempty"`
	Counts        any    `json:"counts,omitempty"`
	Error         any    `json:"error,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

func correlationID(c *gin.Context) string {
	if rid := c.GetString("request_id"); rid != "" {
		return rid
	}
	// Request-id middleware not mounted (tests); still emit something traceable.
	return uuid.New().String()
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Message:       message,
		Data:          data,
		CorrelationID: correlationID(c),
	})
}

// SuccessWithCounts attaches an aggregate tally next to the data payload.
func SuccessWithCounts(c *gin.Context, status int, message string, data, counts any) {
	c.JSON(status, Envelope{
		Message:       message,
		Data:          data,
		Counts:        counts,
		CorrelationID: correlationID(c),
	})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{
		Message: message,
		Error: map[string]any{
			"code":    code,
			"details": details,
		},
		CorrelationID: correlationID(c),
	})
}
