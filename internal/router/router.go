package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/codewright/backend/config"
	"github.com/codewright/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	projectHandler *handler.ProjectHandler,
	manualHandler *handler.ManualHandler,
	exportHandler *handler.ExportHandler,
	mappingHandler *handler.MappingHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	// 导出的 HTML 文档较大，压缩后再下发
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Rename)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.GET("/:id/items", projectHandler.ListItems)

			projects.POST("/:id/sections", manualHandler.CreateSection)
			projects.GET("/:id/sections", manualHandler.ListSections)
			projects.PUT("/:id/sections/reorder", manualHandler.ReorderSections)

			projects.POST("/:id/exports", exportHandler.Start)
			projects.GET("/:id/exports", exportHandler.ListByProject)
		}

		sections := api.Group("/sections")
		{
			sections.PUT("/:sectionId", manualHandler.UpdateSection)
			sections.DELETE("/:sectionId", manualHandler.DeleteSection)
		}

		exports := api.Group("/exports")
		{
			exports.GET("", exportHandler.ListByUser)
			exports.GET("/statistics", exportHandler.Statistics)
			exports.GET("/:jobId", exportHandler.Get)
			exports.GET("/:jobId/download", exportHandler.Download)
			exports.DELETE("/:jobId", exportHandler.Delete)
		}

		mappings := api.Group("/mappings")
		{
			mappings.GET("", mappingHandler.List)
			mappings.POST("", mappingHandler.Create)
			mappings.PUT("/:id", mappingHandler.Update)
			mappings.DELETE("/:id", mappingHandler.Delete)
		}
	}

	return r
}
