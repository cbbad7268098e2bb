package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/listings", handler.GetListings)
		api.GET("/zones", handler.GetZones)
		api.GET("/compare", handler.CompareAreas)
		api.GET("/export", handler.ExportCSV)
		api.GET("/snapshot", handler.GetSnapshot)
		api.POST("/reload", handler.Reload)
		api.POST("/listings/import", handler.ImportListings)
	}
}
