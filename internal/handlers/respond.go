package handlers

import "github.com/gin-gonic/gin"

func fail(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"error":   code,
		"message": message,
	})
}
