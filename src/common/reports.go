package common

import (
	"context"
	"lrs/src/config"
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/types"
	"strings"

	"gorm.io/gorm"
)

// CreateReport files an incident against a locker. The locker reconciles in
// the same transaction: an open FALLA_MECANICA takes it straight to
// MANTENIMIENTO.
func CreateReport(ctx context.Context, userId uint, params *types.CreateReportRequestBody) (*models.Report, error) {
	if strings.TrimSpace(params.Description) == "" {
		return nil, ErrEmptyDescription
	}
	if !params.ReportType.Valid() {
		return nil, ErrInvalidReportType
	}
	report := models.Report{
		LockerID:    params.LockerID,
		UserID:      userId,
		Description: params.Description,
		ReportType:  params.ReportType,
		Status:      types.REPORT_PENDING,
	}
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var locker models.Locker
		if err := tx.First(&locker, params.LockerID).Error; err != nil {
			return err
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, params.LockerID)
	})
	if err != nil {
		return nil, err
	}
	return getReport(gdb, report.ID)
}

// UpdateReportStatus moves triage strictly forward. Admin-only (enforced at
// the route). RESUELTO never transitions back.
func UpdateReportStatus(ctx context.Context, id uint, newStatus types.ReportStatus, actionsTaken string) (*models.Report, error) {
	gdb := db.GetDb().WithContext(ctx)
	var report models.Report
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, id).Error; err != nil {
			return err
		}
		if !report.Status.CanTransitionTo(newStatus) {
			return ErrInvalidTransition
		}
		updates := map[string]any{"status": newStatus}
		if actionsTaken != "" {
			updates["actions_taken"] = actionsTaken
		}
		if err := tx.
			Model(&models.Report{}).
			Where(&models.Report{ID: id}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, report.LockerID)
	})
	if err != nil {
		return nil, err
	}
	return getReport(gdb, id)
}

// UpdateReport is the whole-DTO edit the admin screen performs: description,
// type, actions taken, and optionally a status move under the same
// forward-only rule.
func UpdateReport(ctx context.Context, id uint, params *types.UpdateReportRequestBody) (*models.Report, error) {
	gdb := db.GetDb().WithContext(ctx)
	var report models.Report
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, id).Error; err != nil {
			return err
		}
		updates := map[string]any{}
		if params.Description != "" {
			updates["description"] = params.Description
		}
		if params.ReportType != "" {
			updates["report_type"] = params.ReportType
		}
		if params.ActionsTaken != "" {
			updates["actions_taken"] = params.ActionsTaken
		}
		if params.Status != "" && params.Status != report.Status {
			if !report.Status.CanTransitionTo(params.Status) {
				return ErrInvalidTransition
			}
			updates["status"] = params.Status
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.
			Model(&models.Report{}).
			Where(&models.Report{ID: id}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, report.LockerID)
	})
	if err != nil {
		return nil, err
	}
	return getReport(gdb, id)
}

// DeleteReport removes an incident. Default policy allows deletion only
// while PENDIENTE; the permissive policy drops the restriction.
func DeleteReport(ctx context.Context, id uint) error {
	gdb := db.GetDb().WithContext(ctx)
	return gdb.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, id).Error; err != nil {
			return err
		}
		if config.GetReportDeletePolicy() == config.REPORT_DELETE_PENDING_ONLY && report.Status != types.REPORT_PENDING {
			return ErrReportNotDeletable
		}
		if err := tx.Delete(&models.Report{}, id).Error; err != nil {
			return err
		}
		return ReconcileLockerStatus(tx, report.LockerID)
	})
}

// MapReportResponses flattens reports into the DTO the admin table consumes.
func MapReportResponses(reports []models.Report) []types.ReportResponse {
	responses := make([]types.ReportResponse, 0, len(reports))
	for _, r := range reports {
		resp := types.ReportResponse{
			ID:           r.ID,
			Description:  r.Description,
			ReportType:   r.ReportType,
			Status:       r.Status,
			ActionsTaken: r.ActionsTaken,
			CreatedAt:    types.LocalTime(r.CreatedAt),
			UserID:       r.UserID,
			LockerID:     r.LockerID,
		}
		if r.User != nil {
			resp.Username = r.User.Username
		}
		if r.Locker != nil {
			resp.LockerNumber = r.Locker.Number
		}
		responses = append(responses, resp)
	}
	return responses
}

func getReport(gdb *gorm.DB, id uint) (*models.Report, error) {
	var report models.Report
	err := gdb.
		Model(&models.Report{}).
		Where(&models.Report{ID: id}).
		Preload("User").
		Preload("Locker").
		Preload("Locker.Location").
		First(&report).
		Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}
