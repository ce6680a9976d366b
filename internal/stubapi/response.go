package stubapi

import "github.com/gin-gonic/gin"

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorBody struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Errors     []errorDetail `json:"errors,omitempty"`
}

// fail writes the platform's error envelope.
func (s *Server) fail(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, errorBody{
		StatusCode: status,
		Message:    message,
		Errors:     []errorDetail{{Code: code, Message: message, Field: field}},
	})
}
