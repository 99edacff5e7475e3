package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootMessage is the fixed payload of GET /.
const RootMessage = "FastAPI backend is running"

func handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RootMessage})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
