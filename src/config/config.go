package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// TIME_PARSE_FORMAT is the wire format for every timestamp: local ISO-8601
// without a timezone offset.
const TIME_PARSE_FORMAT = "2006-01-02T15:04:05"

type CancelPolicy string

const (
	// CANCEL_ANY allows canceling a reservation at any point before FINALIZADA.
	CANCEL_ANY CancelPolicy = "any"
	// CANCEL_BEFORE_START allows canceling an approved reservation only until
	// its start time. Pending reservations can always be withdrawn.
	CANCEL_BEFORE_START CancelPolicy = "before_start"
)

type ReportDeletePolicy string

const (
	REPORT_DELETE_PENDING_ONLY ReportDeletePolicy = "pending_only"
	REPORT_DELETE_ANY          ReportDeletePolicy = "any"
)

func GetCancelPolicy() CancelPolicy {
	if CancelPolicy(os.Getenv("RESERVATION_CANCEL_POLICY")) == CANCEL_BEFORE_START {
		return CANCEL_BEFORE_START
	}
	return CANCEL_ANY
}

func GetReportDeletePolicy() ReportDeletePolicy {
	if ReportDeletePolicy(os.Getenv("REPORT_DELETE_POLICY")) == REPORT_DELETE_ANY {
		return REPORT_DELETE_ANY
	}
	return REPORT_DELETE_PENDING_ONLY
}
