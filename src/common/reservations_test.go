package common

import (
	"context"
	"log"
	"lrs/src/db"
	"lrs/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqldb,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	db.NewDB(gormDB)
	return mock
}

func TestRequestReservationInvalidRange(t *testing.T) {
	_, err := RequestReservation(context.Background(), 1, &types.CreateReservationRequestBody{
		StartTime: "2025-01-01T10:00:00",
		EndTime:   "2025-01-01T08:00:00",
		LockerID:  1,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = RequestReservation(context.Background(), 1, &types.CreateReservationRequestBody{
		StartTime: "2025-01-01T08:00:00",
		EndTime:   "2025-01-01T08:00:00",
		LockerID:  1,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRequestReservationLockerUnderMaintenance(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lockers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(7, string(types.LOCKER_MAINTENANCE)))
	mock.ExpectRollback()

	_, err := RequestReservation(context.Background(), 1, &types.CreateReservationRequestBody{
		StartTime: "2025-01-01T08:00:00",
		EndTime:   "2025-01-01T10:00:00",
		LockerID:  7,
	})
	assert.ErrorIs(t, err, ErrLockerUnavailable)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveReservation(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(1, 7, 2, string(types.RESERVATION_PENDING)))
	mock.ExpectQuery(`SELECT \* FROM "lockers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(7, string(types.LOCKER_AVAILABLE)))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// conditional flip to APROBADA
	mock.ExpectExec(`UPDATE "reservations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// remaining pending requests auto-reject
	mock.ExpectExec(`UPDATE "reservations"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// reconciliation pass
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(1, 7, 2, string(types.RESERVATION_APPROVED)))
	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "lockers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// reload with preloads
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(1, 7, 2, string(types.RESERVATION_APPROVED)))
	mock.ExpectQuery(`SELECT \* FROM "lockers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	reservation, err := ApproveReservation(context.Background(), 1)
	assert.Nil(t, err)
	assert.Equal(t, types.RESERVATION_APPROVED, reservation.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveReservationAlreadyOccupied(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(2, 7, 3, string(types.RESERVATION_PENDING)))
	mock.ExpectQuery(`SELECT \* FROM "lockers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(7, string(types.LOCKER_OCCUPIED)))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := ApproveReservation(context.Background(), 2)
	assert.ErrorIs(t, err, ErrLockerAlreadyOccupied)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveReservationNotPending(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(3, 7, 3, string(types.RESERVATION_REJECTED)))
	mock.ExpectRollback()

	_, err := ApproveReservation(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCancelReservationTerminal(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(4, 7, 2, string(types.RESERVATION_FINISHED)))
	mock.ExpectRollback()

	_, err := CancelReservation(context.Background(), 2, false, 4)
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCancelReservationNotOwner(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status"}).
			AddRow(5, 7, 2, string(types.RESERVATION_PENDING)))
	mock.ExpectRollback()

	_, err := CancelReservation(context.Background(), 99, false, 5)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestExpireOverdueReservationsNoRows(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ExpireOverdueReservations()
	assert.Nil(t, mock.ExpectationsWereMet())
}
