package common

import "lrs/src/types"

var (
	ErrInvalidRange          = types.NewValidationError("INVALID_RANGE", "fechaFin must be after fechaInicio")
	ErrEmptyDescription      = types.NewValidationError("EMPTY_DESCRIPTION", "descripcion must not be empty")
	ErrInvalidReportType     = types.NewValidationError("INVALID_REPORT_TYPE", "tipoReporte is not a known report type")
	ErrLockerUnavailable     = types.NewConflictError("LOCKER_UNAVAILABLE", "locker is under maintenance")
	ErrLockerAlreadyOccupied = types.NewConflictError("LOCKER_ALREADY_OCCUPIED", "another reservation on this locker is already approved")
	ErrNotPending            = types.NewConflictError("NOT_PENDING", "reservation is not in PENDIENTE state")
	ErrNotCancellable        = types.NewConflictError("NOT_CANCELLABLE", "reservation is already in a terminal state")
	ErrCancelWindowClosed    = types.NewConflictError("CANCEL_WINDOW_CLOSED", "reservation can no longer be canceled under the current policy")
	ErrInvalidTransition     = types.NewConflictError("INVALID_TRANSITION", "report status can only move forward")
	ErrDuplicateNumber       = types.NewConflictError("DUPLICATE_NUMBER", "a locker with this number already exists at this location")
	ErrReportNotDeletable    = types.NewConflictError("REPORT_NOT_DELETABLE", "report can only be deleted while PENDIENTE")
	ErrNotOwner              = types.NewConflictError("NOT_OWNER", "operation is restricted to the owning user")
)
