package router

import (
	"github.com/gin-gonic/gin"

	"grnflow/internal/handler"
	"grnflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	batchH *handler.BatchHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Batch processing routes
	batches := v1.Group("/batches")
	batches.POST("/upload", batchH.Upload)
	batches.POST("/storage", batchH.ProcessStorage)
	batches.GET("/:id", batchH.GetByID)
	batches.GET("/:id/records", batchH.GetRecords)
	batches.GET("/:id/export", exportH.Export)
	batches.POST("/:id/append", exportH.AppendToMaster)

	return r
}
