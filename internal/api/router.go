package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the JSON API engine
func NewRouter(handler *ComputeHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/compute", handler.Compute)
		api.POST("/compute/batch", handler.ComputeBatch)
		api.POST("/bin", handler.Bin)
		api.GET("/computations", handler.ListComputations)
		api.GET("/computations/:id", handler.GetComputation)
		api.GET("/computations/:id/report", handler.GetReport)
	}

	return router
}
