package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"lrs/src/config"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"fechaCreacion,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"fechaActualizacion,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// LocalTime is a timestamp serialized as local ISO-8601 without offset,
// exactly as the web client sends and expects it.
type LocalTime time.Time

func (t LocalTime) Time() time.Time { return time.Time(t) }

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(t).Format(config.TIME_PARSE_FORMAT))), nil
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, s, time.Local)
	if err != nil {
		return err
	}
	*t = LocalTime(parsed)
	return nil
}

func (t LocalTime) Value() (driver.Value, error) {
	return time.Time(t), nil
}

func (t *LocalTime) Scan(value any) error {
	v, ok := value.(time.Time)
	if !ok {
		return errors.New("type assertion to time.Time failed")
	}
	*t = LocalTime(v)
	return nil
}

type LockerStatus string

const (
	LOCKER_AVAILABLE   LockerStatus = "DISPONIBLE"
	LOCKER_OCCUPIED    LockerStatus = "OCUPADO"
	LOCKER_MAINTENANCE LockerStatus = "MANTENIMIENTO"
)

type ReservationStatus string

const (
	RESERVATION_PENDING  ReservationStatus = "PENDIENTE"
	RESERVATION_APPROVED ReservationStatus = "APROBADA"
	RESERVATION_REJECTED ReservationStatus = "RECHAZADA"
	RESERVATION_CANCELED ReservationStatus = "CANCELADA"
	RESERVATION_FINISHED ReservationStatus = "FINALIZADA"
)

// Terminal reports whether no further transition is allowed.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case RESERVATION_REJECTED, RESERVATION_CANCELED, RESERVATION_FINISHED:
		return true
	}
	return false
}

type ReportStatus string

const (
	REPORT_PENDING     ReportStatus = "PENDIENTE"
	REPORT_IN_PROGRESS ReportStatus = "EN_PROCESO"
	REPORT_RESOLVED    ReportStatus = "RESUELTO"
)

// rank orders report statuses for the forward-only transition rule.
func (s ReportStatus) rank() int {
	switch s {
	case REPORT_PENDING:
		return 0
	case REPORT_IN_PROGRESS:
		return 1
	case REPORT_RESOLVED:
		return 2
	}
	return -1
}

func (s ReportStatus) Valid() bool { return s.rank() >= 0 }

// CanTransitionTo allows forward moves only. RESUELTO never transitions back.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() > s.rank()
}

// Open reports whether the incident still needs attention.
func (s ReportStatus) Open() bool {
	return s == REPORT_PENDING || s == REPORT_IN_PROGRESS
}

type ReportType string

const (
	REPORT_MECHANICAL_FAILURE ReportType = "FALLA_MECANICA"
	REPORT_CLEANLINESS_ISSUE  ReportType = "PROBLEMA_LIMPIEZA"
	REPORT_OTHER              ReportType = "OTRO"
)

func (t ReportType) Valid() bool {
	switch t {
	case REPORT_MECHANICAL_FAILURE, REPORT_CLEANLINESS_ISSUE, REPORT_OTHER:
		return true
	}
	return false
}

// Blocking reports whether an open incident of this type takes the locker
// out of service.
func (t ReportType) Blocking() bool { return t == REPORT_MECHANICAL_FAILURE }

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_STUDENT = "ESTUDIANTE"
)

const (
	PABELLON_A = "A"
	PABELLON_B = "B"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateLocationRequestBody struct {
	BuildingName string `json:"nombreEdificio" binding:"required"`
	Pabellon     string `json:"pabellon" binding:"required,oneof=A B"`
	Floor        uint   `json:"piso" binding:"required,min=1"`
	Description  string `json:"descripcion,omitempty"`
}

type CreateLockerRequestBody struct {
	Number     string `json:"numeroLocker" binding:"required"`
	LocationID uint   `json:"ubicacionId" binding:"required"`
}

type UpdateLockerRequestBody struct {
	Number     string `json:"numeroLocker,omitempty"`
	LocationID uint   `json:"ubicacionId,omitempty"`
}

type OverrideLockerStatusRequestBody struct {
	Status   LockerStatus `json:"estado" binding:"required,oneof=DISPONIBLE OCUPADO MANTENIMIENTO"`
	Override bool         `json:"override" binding:"required"`
}

type LockersQueryFilters struct {
	Status     LockerStatus `form:"estado" binding:"omitempty,oneof=DISPONIBLE OCUPADO MANTENIMIENTO"`
	LocationID uint         `form:"ubicacionId" binding:"omitempty"`
}

type CreateReservationRequestBody struct {
	StartTime string `json:"fechaInicio" binding:"required,localdate"`
	EndTime   string `json:"fechaFin" binding:"required,localdate,gtdate=StartTime"`
	LockerID  uint   `json:"lockerId" binding:"required"`
}

type CreateReportRequestBody struct {
	Description string     `json:"descripcion" binding:"required"`
	ReportType  ReportType `json:"tipoReporte" binding:"required,oneof=FALLA_MECANICA PROBLEMA_LIMPIEZA OTRO"`
	LockerID    uint       `json:"lockerId" binding:"required"`
}

type UpdateReportRequestBody struct {
	Description  string       `json:"descripcion,omitempty"`
	ReportType   ReportType   `json:"tipoReporte,omitempty" binding:"omitempty,oneof=FALLA_MECANICA PROBLEMA_LIMPIEZA OTRO"`
	ActionsTaken string       `json:"accionesTomadas,omitempty"`
	Status       ReportStatus `json:"estado,omitempty" binding:"omitempty,oneof=PENDIENTE EN_PROCESO RESUELTO"`
}

type ReportStatusQueryParams struct {
	NewStatus ReportStatus `form:"nuevoEstado" binding:"required,oneof=PENDIENTE EN_PROCESO RESUELTO"`
}

type CreateUserRequestBody struct {
	Username string `json:"userName" binding:"required"`
	Name     string `json:"nombre" binding:"required"`
	Surname  string `json:"apellido,omitempty"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=ADMIN ESTUDIANTE"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequestBody struct {
	Name    string `json:"nombre,omitempty"`
	Surname string `json:"apellido,omitempty"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Role    string `json:"role,omitempty" binding:"omitempty,oneof=ADMIN ESTUDIANTE"`
}

type LoginRequestBody struct {
	Username string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuditQueryFilters is the optional predicate for the admin audit views.
type AuditQueryFilters struct {
	Status   string `form:"estado" binding:"omitempty"`
	LockerID uint   `form:"lockerId" binding:"omitempty"`
	UserID   uint   `form:"userId" binding:"omitempty"`
	DateFrom string `form:"desde" binding:"omitempty,localdate"`
	DateTo   string `form:"hasta" binding:"omitempty,localdate"`
}

// ReportResponse is the flattened DTO served at /reportes/responses.
type ReportResponse struct {
	ID           uint         `json:"id"`
	Description  string       `json:"descripcion"`
	ReportType   ReportType   `json:"tipoReporte"`
	Status       ReportStatus `json:"estado"`
	ActionsTaken string       `json:"accionesTomadas,omitempty"`
	CreatedAt    LocalTime    `json:"fechaCreacion"`
	UserID       uint         `json:"userId"`
	Username     string       `json:"userName,omitempty"`
	LockerID     uint         `json:"lockerId"`
	LockerNumber string       `json:"numeroLocker,omitempty"`
}

// StatsResponse backs the admin dashboard counters.
type StatsResponse struct {
	LockersAvailable    int64 `json:"lockersDisponibles"`
	LockersOccupied     int64 `json:"lockersOcupados"`
	LockersMaintenance  int64 `json:"lockersMantenimiento"`
	ReservationsPending int64 `json:"reservasPendientes"`
	ReportsOpen         int64 `json:"reportesAbiertos"`
}
