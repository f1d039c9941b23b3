package types

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestLocalTimeJSONRoundTrip(t *testing.T) {
	in := LocalTime(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))
	b, err := json.Marshal(in)
	assert.Nil(t, err)
	assert.Equal(t, `"2025-01-01T08:00:00"`, string(b))

	var out LocalTime
	err = json.Unmarshal(b, &out)
	assert.Nil(t, err)
	assert.True(t, in.Time().Equal(out.Time()))
}

func TestReportStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ReportStatus
		to      ReportStatus
		allowed bool
	}{
		{REPORT_PENDING, REPORT_IN_PROGRESS, true},
		{REPORT_PENDING, REPORT_RESOLVED, true},
		{REPORT_IN_PROGRESS, REPORT_RESOLVED, true},
		{REPORT_IN_PROGRESS, REPORT_PENDING, false},
		{REPORT_RESOLVED, REPORT_IN_PROGRESS, false},
		{REPORT_RESOLVED, REPORT_PENDING, false},
		{REPORT_PENDING, REPORT_PENDING, false},
		{REPORT_PENDING, ReportStatus("DESCONOCIDO"), false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestReservationStatusTerminal(t *testing.T) {
	assert.False(t, RESERVATION_PENDING.Terminal())
	assert.False(t, RESERVATION_APPROVED.Terminal())
	assert.True(t, RESERVATION_REJECTED.Terminal())
	assert.True(t, RESERVATION_CANCELED.Terminal())
	assert.True(t, RESERVATION_FINISHED.Terminal())
}

func TestReportTypeBlocking(t *testing.T) {
	assert.True(t, REPORT_MECHANICAL_FAILURE.Blocking())
	assert.False(t, REPORT_CLEANLINESS_ISSUE.Blocking())
	assert.False(t, REPORT_OTHER.Blocking())
}

func TestAsAPIError(t *testing.T) {
	assert.Equal(t, ERROR_NOT_FOUND, AsAPIError(gorm.ErrRecordNotFound).Kind)
	assert.Equal(t, ERROR_TRANSIENT, AsAPIError(context.DeadlineExceeded).Kind)

	conflict := NewConflictError("LOCKER_ALREADY_OCCUPIED", "occupied")
	assert.Same(t, conflict, AsAPIError(conflict))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("INVALID_RANGE", "bad range")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(NewConflictError("NOT_PENDING", "not pending")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(NewReferentialConflictError("blocked", []string{"reserva:1"})))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(gorm.ErrRecordNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(context.DeadlineExceeded))
}
