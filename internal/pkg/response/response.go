package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/glbpick/internal/model"
)

// Conversational replies for /prompt. They are always sent with HTTP 200.
const (
	MsgNotUnderstood = "I couldn't understand that."
	MsgTooMany       = "Too many requests, please slow down."
)

func NoStockMessage(tag string) string {
	return "I understood '" + tag + "', but I do not have any in stock."
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Selection(c *gin.Context, res *model.SelectionResult) {
	c.JSON(http.StatusOK, res)
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, model.SelectionResult{Message: msg})
}

// Error ends a non /prompt request with a plain text body.
func Error(c *gin.Context, status int, message string) {
	c.String(status, message)
}
