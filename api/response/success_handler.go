package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleOK writes data as the 200 response body.
func HandleOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// HandleEmptyOK answers 200 without a body.
func HandleEmptyOK(c *gin.Context) {
	c.Status(http.StatusOK)
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
