package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guptavaibhav1806/food-analyzer-api/controllers"
	"github.com/guptavaibhav1806/food-analyzer-api/middlewares"
)

func SetupRouter(analyze *controllers.AnalyzeController) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.RequestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/analyze", analyze.Analyze)

	return r
}
