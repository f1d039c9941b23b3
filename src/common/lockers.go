package common

import (
	"context"
	"fmt"
	"log"
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/types"

	"gorm.io/gorm"
)

// ComputeLockerStatus derives a locker's status from its reservation and
// report records. Pure: same inputs, same answer. Maintenance always wins
// over occupancy, so a locker is never shown OCUPADO while a blocking
// incident is open.
func ComputeLockerStatus(reservations []models.Reservation, reports []models.Report) types.LockerStatus {
	for _, r := range reports {
		if r.Status.Open() && r.ReportType.Blocking() {
			return types.LOCKER_MAINTENANCE
		}
	}
	for _, r := range reservations {
		if r.Status == types.RESERVATION_APPROVED {
			return types.LOCKER_OCCUPIED
		}
	}
	return types.LOCKER_AVAILABLE
}

// ReconcileLockerStatus recomputes and persists the derived status. Runs
// inside the same transaction as the transition that triggered it, so the
// transition and the recompute commit or roll back together. Clears any
// manual override.
func ReconcileLockerStatus(tx *gorm.DB, lockerID uint) error {
	var reservations []models.Reservation
	if err := tx.
		Model(&models.Reservation{}).
		Where(&models.Reservation{LockerID: lockerID, Status: types.RESERVATION_APPROVED}).
		Find(&reservations).
		Error; err != nil {
		return err
	}
	var reports []models.Report
	if err := tx.
		Model(&models.Report{}).
		Where(&models.Report{LockerID: lockerID}).
		Where("status IN (?)", []types.ReportStatus{types.REPORT_PENDING, types.REPORT_IN_PROGRESS}).
		Find(&reports).
		Error; err != nil {
		return err
	}
	status := ComputeLockerStatus(reservations, reports)
	return tx.
		Model(&models.Locker{}).
		Where(&models.Locker{ID: lockerID}).
		Select("status", "overridden").
		Updates(&models.Locker{Status: status, Overridden: false}).
		Error
}

// OverrideLockerStatus is the admin escape hatch for corrective action. It
// still routes through the engine: without the explicit flag the request is
// answered with the reconciled status instead.
func OverrideLockerStatus(ctx context.Context, id uint, status types.LockerStatus, override bool) (*models.Locker, error) {
	gdb := db.GetDb().WithContext(ctx)
	var locker models.Locker
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&locker, id).Error; err != nil {
			return err
		}
		if !override {
			return ReconcileLockerStatus(tx, id)
		}
		log.Printf("Manual status override on locker [%d]: %s -> %s\n", id, locker.Status, status)
		return tx.
			Model(&models.Locker{}).
			Where(&models.Locker{ID: id}).
			Select("status", "overridden").
			Updates(&models.Locker{Status: status, Overridden: true}).
			Error
	})
	if err != nil {
		return nil, err
	}
	if err := gdb.Preload("Location").First(&locker, id).Error; err != nil {
		return nil, err
	}
	return &locker, nil
}

// CreateLocker registers a new locker. Numbers are unique per location and
// every locker starts DISPONIBLE.
func CreateLocker(ctx context.Context, params *types.CreateLockerRequestBody) (*models.Locker, error) {
	gdb := db.GetDb().WithContext(ctx)
	locker := models.Locker{
		Number:     params.Number,
		LocationID: params.LocationID,
		Status:     types.LOCKER_AVAILABLE,
	}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var location models.Location
		if err := tx.First(&location, params.LocationID).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.
			Model(&models.Locker{}).
			Where(&models.Locker{Number: params.Number, LocationID: params.LocationID}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateNumber
		}
		return tx.Create(&locker).Error
	})
	if err != nil {
		return nil, err
	}
	if err := gdb.Preload("Location").First(&locker, locker.ID).Error; err != nil {
		return nil, err
	}
	return &locker, nil
}

// UpdateLocker edits number/location. Status is not settable here; it stays
// derived.
func UpdateLocker(ctx context.Context, id uint, params *types.UpdateLockerRequestBody) (*models.Locker, error) {
	gdb := db.GetDb().WithContext(ctx)
	var locker models.Locker
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&locker, id).Error; err != nil {
			return err
		}
		number := locker.Number
		locationId := locker.LocationID
		if params.Number != "" {
			number = params.Number
		}
		if params.LocationID != 0 {
			locationId = params.LocationID
		}
		var count int64
		if err := tx.
			Model(&models.Locker{}).
			Where(&models.Locker{Number: number, LocationID: locationId}).
			Where("id <> ?", id).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateNumber
		}
		return tx.
			Model(&models.Locker{}).
			Where(&models.Locker{ID: id}).
			Updates(&models.Locker{Number: number, LocationID: locationId}).
			Error
	})
	if err != nil {
		return nil, err
	}
	if err := gdb.Preload("Location").First(&locker, id).Error; err != nil {
		return nil, err
	}
	return &locker, nil
}

// DeleteLocker refuses while active reservations or unresolved reports still
// reference the locker, listing the blockers for the caller.
func DeleteLocker(ctx context.Context, id uint) error {
	gdb := db.GetDb().WithContext(ctx)
	return gdb.Transaction(func(tx *gorm.DB) error {
		var locker models.Locker
		if err := tx.First(&locker, id).Error; err != nil {
			return err
		}
		var reservations []models.Reservation
		if err := tx.
			Model(&models.Reservation{}).
			Select("id").
			Where(&models.Reservation{LockerID: id}).
			Where("status IN (?)", []types.ReservationStatus{types.RESERVATION_PENDING, types.RESERVATION_APPROVED}).
			Find(&reservations).
			Error; err != nil {
			return err
		}
		var reports []models.Report
		if err := tx.
			Model(&models.Report{}).
			Select("id").
			Where(&models.Report{LockerID: id}).
			Where("status IN (?)", []types.ReportStatus{types.REPORT_PENDING, types.REPORT_IN_PROGRESS}).
			Find(&reports).
			Error; err != nil {
			return err
		}
		if len(reservations) > 0 || len(reports) > 0 {
			dependents := make([]string, 0, len(reservations)+len(reports))
			for _, r := range reservations {
				dependents = append(dependents, fmt.Sprintf("reserva:%d", r.ID))
			}
			for _, r := range reports {
				dependents = append(dependents, fmt.Sprintf("reporte:%d", r.ID))
			}
			return types.NewReferentialConflictError("locker has active reservations or open reports", dependents)
		}
		return tx.Delete(&models.Locker{}, id).Error
	})
}

// ListLockers returns the registry, optionally filtered by status and
// location.
func ListLockers(ctx context.Context, filters *types.LockersQueryFilters) ([]models.Locker, error) {
	gdb := db.GetDb().WithContext(ctx)
	var lockers []models.Locker
	q := gdb.Model(&models.Locker{}).Preload("Location")
	if filters != nil {
		if filters.Status != "" {
			q = q.Where(&models.Locker{Status: filters.Status})
		}
		if filters.LocationID != 0 {
			q = q.Where(&models.Locker{LocationID: filters.LocationID})
		}
	}
	if err := q.Order("id asc").Find(&lockers).Error; err != nil {
		return nil, err
	}
	return lockers, nil
}
