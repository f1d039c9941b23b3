package common

import (
	"context"
	"lrs/src/models"
	"lrs/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateReportEmptyDescription(t *testing.T) {
	_, err := CreateReport(context.Background(), 1, &types.CreateReportRequestBody{
		Description: "   ",
		ReportType:  types.REPORT_OTHER,
		LockerID:    1,
	})
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestCreateReportInvalidType(t *testing.T) {
	_, err := CreateReport(context.Background(), 1, &types.CreateReportRequestBody{
		Description: "puerta no cierra",
		ReportType:  types.ReportType("DESCONOCIDO"),
		LockerID:    1,
	})
	assert.ErrorIs(t, err, ErrInvalidReportType)
}

func TestUpdateReportStatusBackward(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status", "report_type"}).
			AddRow(1, 7, 2, string(types.REPORT_IN_PROGRESS), string(types.REPORT_MECHANICAL_FAILURE)))
	mock.ExpectRollback()

	_, err := UpdateReportStatus(context.Background(), 1, types.REPORT_PENDING, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestDeleteReportNotPending(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "locker_id", "user_id", "status", "report_type"}).
			AddRow(2, 7, 2, string(types.REPORT_RESOLVED), string(types.REPORT_OTHER)))
	mock.ExpectRollback()

	err := DeleteReport(context.Background(), 2)
	assert.ErrorIs(t, err, ErrReportNotDeletable)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestMapReportResponses(t *testing.T) {
	reports := []models.Report{
		{
			ID:          1,
			Description: "bisagra rota",
			ReportType:  types.REPORT_MECHANICAL_FAILURE,
			Status:      types.REPORT_PENDING,
			UserID:      2,
			LockerID:    7,
			User:        &models.User{Username: "jperez"},
			Locker:      &models.Locker{Number: "A-101"},
		},
		{
			ID:          2,
			Description: "sin incidencias mayores",
			ReportType:  types.REPORT_OTHER,
			Status:      types.REPORT_RESOLVED,
			UserID:      3,
			LockerID:    8,
		},
	}
	responses := MapReportResponses(reports)
	assert.Len(t, responses, 2)
	assert.Equal(t, "jperez", responses[0].Username)
	assert.Equal(t, "A-101", responses[0].LockerNumber)
	assert.Empty(t, responses[1].Username)
	assert.Equal(t, types.REPORT_RESOLVED, responses[1].Status)
}
