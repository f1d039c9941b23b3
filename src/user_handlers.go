package main

import (
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func userHandlers(admin *gin.RouterGroup) *gin.RouterGroup {
	admin.
		GET("/users/", func(ctx *gin.Context) {
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var users []models.User
			if err := gdb.Order("id asc").Find(&users).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, users)
		}).
		POST("/users/", func(ctx *gin.Context) {
			var body types.CreateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			hash, err := utils.HashPassword(body.Password)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user := models.User{
				Username:     body.Username,
				Name:         body.Name,
				Surname:      body.Surname,
				Email:        body.Email,
				Role:         body.Role,
				Active:       true,
				PasswordHash: hash,
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			if err := gdb.Create(&user).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusCreated, user)
		}).
		PUT("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var user models.User
			if err := gdb.First(&user, params.ID).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			if err := gdb.
				Model(&models.User{}).
				Where(&models.User{ID: params.ID}).
				Updates(&models.User{
					Name:    body.Name,
					Surname: body.Surname,
					Email:   body.Email,
					Role:    body.Role,
				}).
				Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			gdb.First(&user, params.ID)
			ctx.JSON(http.StatusOK, user)
		}).
		PATCH("/users/:id/toggle-active", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var user models.User
			err := gdb.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&user, params.ID).Error; err != nil {
					return err
				}
				return tx.
					Model(&models.User{}).
					Where(&models.User{ID: params.ID}).
					Update("active", !user.Active).
					Error
			})
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			gdb.First(&user, params.ID)
			ctx.JSON(http.StatusOK, user)
		}).
		DELETE("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			gdb := db.GetDb().WithContext(c)
			var user models.User
			if err := gdb.First(&user, params.ID).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			// Reservations and reports outlive their owner (soft reference).
			if err := gdb.Delete(&models.User{}, params.ID).Error; err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return admin
}
