package main

import (
	"lrs/src/common"
	"lrs/src/middlewares"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateReservationRequestBody struct {
	Status types.ReservationStatus `json:"estadoReserva" binding:"required,oneof=APROBADA RECHAZADA CANCELADA FINALIZADA"`
}

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/reservas/", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			// Admins see the whole table; students only their own rows.
			if role == types.ROLE_ADMIN {
				data, err := utils.QueryReservations(c, &types.AuditQueryFilters{})
				if err != nil {
					ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
					return
				}
				ctx.JSON(http.StatusOK, data)
				return
			}
			data, err := utils.GetOwnReservations(c, userId)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, data)
		}).
		GET("/reservas/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			reservation, err := common.GetReservation(c, params.ID)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			if ctx.GetString("role") != types.ROLE_ADMIN && reservation.UserID != ctx.GetUint("id") {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, reservation)
		}).
		POST("/reservas/", middlewares.Idempotency, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			reservation, err := common.RequestReservation(c, userId, &body)
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusCreated, reservation)
		}).
		PUT("/reservas/:id", middlewares.Idempotency, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body updateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			isAdmin := ctx.GetString("role") == types.ROLE_ADMIN
			c, cancel := utils.RequestContext(ctx)
			defer cancel()

			var (
				reservation any
				err         error
			)
			switch body.Status {
			case types.RESERVATION_APPROVED:
				if !isAdmin {
					ctx.Status(http.StatusForbidden)
					return
				}
				reservation, err = common.ApproveReservation(c, params.ID)
			case types.RESERVATION_REJECTED:
				if !isAdmin {
					ctx.Status(http.StatusForbidden)
					return
				}
				reservation, err = common.RejectReservation(c, params.ID)
			case types.RESERVATION_CANCELED:
				reservation, err = common.CancelReservation(c, userId, isAdmin, params.ID)
			case types.RESERVATION_FINISHED:
				reservation, err = common.ReleaseReservation(c, userId, params.ID)
			}
			if err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.JSON(http.StatusOK, reservation)
		}).
		DELETE("/reservas/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			c, cancel := utils.RequestContext(ctx)
			defer cancel()
			if err := common.DeleteReservation(c, userId, params.ID); err != nil {
				ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.AsAPIError(err)})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
