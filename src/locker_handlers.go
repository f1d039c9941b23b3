package main

import (
	"lrs/src/common"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func lockerHandlers(g *gin.RouterGroup, admin *gin.RouterGroup) {
	g.
		GET("/lockers/", func(ctx *gin.Context) {
			var filters types.LockersQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			lockers, err := common.ListLockers(c, &filters)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, lockers)
		})

	admin.
		POST("/lockers/", func(ctx *gin.Context) {
			var body types.CreateLockerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			locker, err := common.CreateLocker(c, &body)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusCreated, locker)
		}).
		PUT("/lockers/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateLockerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			locker, err := common.UpdateLocker(c, params.ID, &body)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, locker)
		}).
		PUT("/lockers/:id/estado", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.OverrideLockerStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			locker, err := common.OverrideLockerStatus(c, params.ID, body.Status, body.Override)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, locker)
		}).
		DELETE("/lockers/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			if err := common.DeleteLocker(c, params.ID); err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
}
