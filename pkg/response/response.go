package response

import (
	"github.com/gin-gonic/gin"
)

// JSON writes a success body carrying the resource as-is.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes a success body carrying only a message.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Error writes the failure contract: a status code and an {error} body.
// Optional details carry field-level validation messages.
func Error(c *gin.Context, status int, message string, details any) {
	body := gin.H{"error": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// AbortError writes an {error} body and stops the handler chain; used
// by middleware rejections.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
