// Package response writes the wire envelopes API clients expect:
// {"message": ..., "data": ...} for reads and updates, and
// {"message": ..., "scheduling": ...} for creations.
package response

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"data":    data,
	})
}

func Created(c *gin.Context, statusCode int, message string, scheduling any) {
	c.JSON(statusCode, gin.H{
		"message":    message,
		"scheduling": scheduling,
	})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"message": message,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"message": message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"details": details,
	})
}
