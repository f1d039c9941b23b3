package main

import (
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Audit views are pure read projections for the admin screens; no state
// machine involvement.
func auditHandlers(admin *gin.RouterGroup) *gin.RouterGroup {
	admin.
		GET("/auditoria/reservas", func(ctx *gin.Context) {
			var filters types.AuditQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			data, err := utils.QueryReservations(c, &filters)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/auditoria/reportes", func(ctx *gin.Context) {
			var filters types.AuditQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			data, err := utils.QueryReports(c, &filters)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/stats", func(ctx *gin.Context) {
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			stats, err := utils.GetStats(c)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, stats)
		})
	return admin
}
