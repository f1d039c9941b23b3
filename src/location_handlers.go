package main

import (
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func locationHandlers(g *gin.RouterGroup, admin *gin.RouterGroup) {
	g.
		GET("/ubicaciones", func(ctx *gin.Context) {
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var locations []models.Location
			if err := gdb.Order("id asc").Find(&locations).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, locations)
		})

	admin.
		POST("/ubicaciones", func(ctx *gin.Context) {
			var body types.CreateLocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			location := models.Location{
				BuildingName: body.BuildingName,
				Pabellon:     body.Pabellon,
				Floor:        body.Floor,
				Description:  body.Description,
			}
			gdb := db.GetDb().WithContext(c)
			if err := gdb.Create(&location).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusCreated, location)
		}).
		PUT("/ubicaciones/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateLocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var location models.Location
			if err := gdb.First(&location, params.ID).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			if err := gdb.
				Model(&models.Location{}).
				Where(&models.Location{ID: params.ID}).
				Updates(&models.Location{
					BuildingName: body.BuildingName,
					Pabellon:     body.Pabellon,
					Floor:        body.Floor,
					Description:  body.Description,
				}).
				Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			gdb.First(&location, params.ID)
			ctx.JSON(http.StatusOK, location)
		}).
		DELETE("/ubicaciones/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var location models.Location
			if err := gdb.First(&location, params.ID).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			// Lockers hold a weak reference; they keep their location id even
			// after the location row goes away.
			if err := gdb.Delete(&models.Location{}, params.ID).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
}
