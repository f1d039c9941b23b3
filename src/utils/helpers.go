package utils

import (
	"context"
	"fmt"
	"lrs/src/config"
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/types"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const requestTimeout = 5 * time.Second

// RequestContext bounds every store round trip so no operation blocks
// indefinitely; expiry surfaces to the caller as a retryable error.
func RequestContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), requestTimeout)
}

func GenerateJWT(username string, userId uint, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetOwnReservations backs the student's "my lockers" view.
func GetOwnReservations(ctx context.Context, userId uint) ([]models.Reservation, error) {
	gdb := db.GetDb().WithContext(ctx)
	var reservations []models.Reservation
	err := gdb.
		Model(&models.Reservation{}).
		Where(&models.Reservation{UserID: userId}).
		Preload("Locker").
		Preload("Locker.Location").
		Order("start_time desc").
		Find(&reservations).
		Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetOwnReports backs the student's "my reports" view.
func GetOwnReports(ctx context.Context, userId uint) ([]models.Report, error) {
	gdb := db.GetDb().WithContext(ctx)
	var reports []models.Report
	err := gdb.
		Model(&models.Report{}).
		Where(&models.Report{UserID: userId}).
		Preload("Locker").
		Order("created_at desc").
		Find(&reports).
		Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// QueryReservations is the flat audit projection over reservations.
func QueryReservations(ctx context.Context, filters *types.AuditQueryFilters) ([]models.Reservation, error) {
	gdb := db.GetDb().WithContext(ctx)
	q := gdb.Model(&models.Reservation{}).Preload("User").Preload("Locker")
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.LockerID != 0 {
		q = q.Where("locker_id = ?", filters.LockerID)
	}
	if filters.UserID != 0 {
		q = q.Where("user_id = ?", filters.UserID)
	}
	if filters.DateFrom != "" {
		from, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, filters.DateFrom, time.Local)
		if err != nil {
			return nil, types.NewValidationError("INVALID_RANGE", err.Error())
		}
		q = q.Where("start_time >= ?", from)
	}
	if filters.DateTo != "" {
		to, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, filters.DateTo, time.Local)
		if err != nil {
			return nil, types.NewValidationError("INVALID_RANGE", err.Error())
		}
		q = q.Where("start_time <= ?", to)
	}
	var reservations []models.Reservation
	if err := q.Order("start_time desc").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// QueryReports is the flat audit projection over incident reports.
func QueryReports(ctx context.Context, filters *types.AuditQueryFilters) ([]models.Report, error) {
	gdb := db.GetDb().WithContext(ctx)
	q := gdb.Model(&models.Report{}).Preload("User").Preload("Locker")
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.LockerID != 0 {
		q = q.Where("locker_id = ?", filters.LockerID)
	}
	if filters.UserID != 0 {
		q = q.Where("user_id = ?", filters.UserID)
	}
	if filters.DateFrom != "" {
		from, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, filters.DateFrom, time.Local)
		if err != nil {
			return nil, types.NewValidationError("INVALID_RANGE", err.Error())
		}
		q = q.Where("created_at >= ?", from)
	}
	if filters.DateTo != "" {
		to, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, filters.DateTo, time.Local)
		if err != nil {
			return nil, types.NewValidationError("INVALID_RANGE", err.Error())
		}
		q = q.Where("created_at <= ?", to)
	}
	var reports []models.Report
	if err := q.Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// GetStats aggregates the admin dashboard counters.
func GetStats(ctx context.Context) (*types.StatsResponse, error) {
	gdb := db.GetDb().WithContext(ctx)
	var stats types.StatsResponse
	counts := []struct {
		dest   *int64
		model  any
		column string
		values []string
	}{
		{&stats.LockersAvailable, &models.Locker{}, "status", []string{string(types.LOCKER_AVAILABLE)}},
		{&stats.LockersOccupied, &models.Locker{}, "status", []string{string(types.LOCKER_OCCUPIED)}},
		{&stats.LockersMaintenance, &models.Locker{}, "status", []string{string(types.LOCKER_MAINTENANCE)}},
		{&stats.ReservationsPending, &models.Reservation{}, "status", []string{string(types.RESERVATION_PENDING)}},
		{&stats.ReportsOpen, &models.Report{}, "status", []string{string(types.REPORT_PENDING), string(types.REPORT_IN_PROGRESS)}},
	}
	for _, c := range counts {
		if err := gdb.
			Model(c.model).
			Where(fmt.Sprintf("%s IN (?)", c.column), c.values).
			Count(c.dest).
			Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
