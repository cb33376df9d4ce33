package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewServer creates the preview HTTP server: it serves the generated
// report pages from outputDir and exposes the run-history API.
func NewServer(handler *Handler, outputDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	setupRoutes(r, handler, outputDir)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, outputDir string) {
	r.StaticFS("/reports", http.Dir(outputDir))

	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/runs", handler.ListRuns)
		api.GET("/runs/:date", handler.GetRunByDate)
		api.GET("/stats", handler.GetStats)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/reports/index.html")
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}
