package models

import "lrs/src/types"

// Locker.Status is derived: it must always equal what the reconciliation
// engine computes from the locker's reservations and reports. Overridden is
// the escape hatch flag for manual admin correction.
type Locker struct {
	ID         uint               `gorm:"primarykey" json:"id"`
	Number     string             `json:"numeroLocker,omitempty"`
	LocationID uint               `json:"ubicacionId,omitempty"`
	Status     types.LockerStatus `gorm:"default:'DISPONIBLE'" json:"estado,omitempty"`
	Overridden bool               `json:"override,omitempty"`

	Location     *Location     `gorm:"foreignKey:location_id" json:"ubicacion,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:locker_id" json:"reservas,omitempty"`
	Reports      []Report      `gorm:"foreignKey:locker_id" json:"reportes,omitempty"`

	types.Timestamps
}
