package common

import (
	"context"
	"fmt"
	"log"
	"lrs/src/config"
	"lrs/src/db"
	"lrs/src/lib"
	"lrs/src/models"
	"lrs/src/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestReservation files a PENDIENTE request. Multiple pending requests
// may coexist on one locker (first approved wins); only a locker under
// maintenance refuses new requests.
func RequestReservation(ctx context.Context, userId uint, params *types.CreateReservationRequestBody) (*models.Reservation, error) {
	start, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, params.StartTime, time.Local)
	if err != nil {
		return nil, types.NewValidationError("INVALID_RANGE", fmt.Sprintf("fechaInicio: %s", err.Error()))
	}
	end, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, params.EndTime, time.Local)
	if err != nil {
		return nil, types.NewValidationError("INVALID_RANGE", fmt.Sprintf("fechaFin: %s", err.Error()))
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	reservation := models.Reservation{
		LockerID:  params.LockerID,
		UserID:    userId,
		StartTime: types.LocalTime(start),
		EndTime:   types.LocalTime(end),
		Status:    types.RESERVATION_PENDING,
	}
	gdb := db.GetDb().WithContext(ctx)
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var locker models.Locker
		if err := tx.First(&locker, params.LockerID).Error; err != nil {
			return err
		}
		if locker.Status == types.LOCKER_MAINTENANCE {
			return ErrLockerUnavailable
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return getReservation(gdb, reservation.ID)
}

// ApproveReservation is the serializing check-and-set for the critical race:
// two admins approving different pending requests on the same locker. The
// locker row is locked FOR UPDATE before checking for an existing approved
// reservation, and the status flip is conditional on the row still being
// PENDIENTE, so exactly one concurrent approval wins. Every other pending
// request on the locker is auto-rejected in the same transaction.
func ApproveReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	gdb := db.GetDb().WithContext(ctx)
	var reservation models.Reservation
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if reservation.Status != types.RESERVATION_PENDING {
			return ErrNotPending
		}
		var locker models.Locker
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locker, reservation.LockerID).
			Error; err != nil {
			return err
		}
		if locker.Status == types.LOCKER_MAINTENANCE {
			return ErrLockerUnavailable
		}
		var approved int64
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{LockerID: reservation.LockerID, Status: types.RESERVATION_APPROVED}).
			Count(&approved).
			Error; err != nil {
			return err
		}
		if approved > 0 {
			return ErrLockerAlreadyOccupied
		}
		res := tx.
			Model(&models.Reservation{}).
			Where("id = ? AND status = ?", id, types.RESERVATION_PENDING).
			Update("status", types.RESERVATION_APPROVED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		// The remaining pending requests can no longer be honored.
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{LockerID: reservation.LockerID, Status: types.RESERVATION_PENDING}).
			Where("id <> ?", id).
			Update("status", types.RESERVATION_REJECTED).
			Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, reservation.LockerID)
	})
	if err != nil {
		return nil, err
	}
	result, err := getReservation(gdb, id)
	if err != nil {
		return nil, err
	}
	go notifyDecision(result)
	return result, nil
}

// RejectReservation declines a pending request. The locker is untouched:
// its status never depended on pending rows.
func RejectReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Reservation{}).
			Where("id = ? AND status = ?", id, types.RESERVATION_PENDING).
			Update("status", types.RESERVATION_REJECTED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var reservation models.Reservation
			if err := tx.First(&reservation, id).Error; err != nil {
				return err
			}
			return ErrNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result, err := getReservation(gdb, id)
	if err != nil {
		return nil, err
	}
	go notifyDecision(result)
	return result, nil
}

// ReleaseReservation is the owner marking an approved reservation finished.
// The locker frees up unless an open incident keeps it in maintenance.
func ReleaseReservation(ctx context.Context, userId, id uint) (*models.Reservation, error) {
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if reservation.UserID != userId {
			return ErrNotOwner
		}
		if reservation.Status != types.RESERVATION_APPROVED {
			return ErrNotCancellable
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where("id = ? AND status = ?", id, types.RESERVATION_APPROVED).
			Update("status", types.RESERVATION_FINISHED).
			Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, reservation.LockerID)
	})
	if err != nil {
		return nil, err
	}
	return getReservation(gdb, id)
}

// CancelReservation aborts a non-terminal reservation. Admins may cancel any
// reservation; students only their own. The cancel window for approved
// reservations is a configurable policy.
func CancelReservation(ctx context.Context, userId uint, isAdmin bool, id uint) (*models.Reservation, error) {
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if !isAdmin && reservation.UserID != userId {
			return ErrNotOwner
		}
		if reservation.Status.Terminal() {
			return ErrNotCancellable
		}
		if reservation.Status == types.RESERVATION_APPROVED && config.GetCancelPolicy() == config.CANCEL_BEFORE_START {
			if time.Now().After(reservation.StartTime.Time()) {
				return ErrCancelWindowClosed
			}
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: id}).
			Update("status", types.RESERVATION_CANCELED).
			Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, reservation.LockerID)
	})
	if err != nil {
		return nil, err
	}
	return getReservation(gdb, id)
}

// DeleteReservation is the withdraw-by-delete the client performs on its own
// pending requests.
func DeleteReservation(ctx context.Context, userId uint, id uint) error {
	gdb := db.GetDb().WithContext(ctx)
	return gdb.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if reservation.UserID != userId {
			return ErrNotOwner
		}
		if reservation.Status != types.RESERVATION_PENDING {
			return ErrNotCancellable
		}
		return tx.Delete(&models.Reservation{}, id).Error
	})
}

// ExpireOverdueReservations finishes approved reservations whose end time
// has passed. Runs from the scheduler.
func ExpireOverdueReservations() {
	gdb := db.GetDb()
	var overdue []models.Reservation
	err := gdb.
		Model(&models.Reservation{}).
		Where(&models.Reservation{Status: types.RESERVATION_APPROVED}).
		Where("end_time < ?", time.Now()).
		Find(&overdue).
		Error
	if err != nil {
		log.Printf("Error retrieving overdue reservations: %s\n", err.Error())
		return
	}
	for _, reservation := range overdue {
		err := gdb.Transaction(func(tx *gorm.DB) error {
			res := tx.
				Model(&models.Reservation{}).
				Where("id = ? AND status = ?", reservation.ID, types.RESERVATION_APPROVED).
				Update("status", types.RESERVATION_FINISHED)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			return ReconcileLockerStatus(tx, reservation.LockerID)
		})
		if err != nil {
			log.Printf("Error finishing overdue reservation [%d]: %s\n", reservation.ID, err.Error())
		}
	}
}

// GetReservation loads a reservation with its owner and locker attached.
func GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return getReservation(db.GetDb().WithContext(ctx), id)
}

func getReservation(gdb *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := gdb.
		Model(&models.Reservation{}).
		Where(&models.Reservation{ID: id}).
		Preload("User").
		Preload("Locker").
		Preload("Locker.Location").
		First(&reservation).
		Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func notifyDecision(reservation *models.Reservation) {
	if reservation.User == nil || reservation.User.Email == "" {
		return
	}
	number := ""
	if reservation.Locker != nil {
		number = reservation.Locker.Number
	}
	subject := fmt.Sprintf("Reserva %s", reservation.Status)
	body := fmt.Sprintf("Tu reserva del locker %s ahora esta en estado %s.", number, reservation.Status)
	if err := lib.SendMail(reservation.User.Email, subject, body); err != nil {
		log.Printf("Error sending decision mail for reservation [%d]: %s\n", reservation.ID, err.Error())
	}
}
