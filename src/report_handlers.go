package main

import (
	"lrs/src/common"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func reportHandlers(g *gin.RouterGroup, admin *gin.RouterGroup) {
	g.
		GET("/reportes", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			if role == types.ROLE_ADMIN {
				data, err := utils.QueryReports(c, &types.AuditQueryFilters{})
				if err != nil {
					ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
					return
				}
				ctx.JSON(http.StatusOK, data)
				return
			}
			data, err := utils.GetOwnReports(c, userId)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, data)
		}).
		POST("/reportes", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var body types.CreateReportRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			report, err := common.CreateReport(c, userId, &body)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusCreated, report)
		})

	admin.
		GET("/reportes/responses", func(ctx *gin.Context) {
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			reports, err := utils.QueryReports(c, &types.AuditQueryFilters{})
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, common.MapReportResponses(reports))
		}).
		PUT("/reportes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateReportRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			report, err := common.UpdateReport(c, params.ID, &body)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, report)
		}).
		PATCH("/reportes/:id/estado", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query types.ReportStatusQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			report, err := common.UpdateReportStatus(c, params.ID, query.NewStatus, "")
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, report)
		}).
		DELETE("/reportes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			if err := common.DeleteReport(c, params.ID); err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
}
