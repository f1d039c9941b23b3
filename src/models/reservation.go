package models

import "lrs/src/types"

type Reservation struct {
	ID        uint                    `gorm:"primarykey" json:"id"`
	LockerID  uint                    `json:"lockerId,omitempty"`
	UserID    uint                    `json:"userId,omitempty"`
	StartTime types.LocalTime         `json:"fechaInicio"`
	EndTime   types.LocalTime         `json:"fechaFin"`
	Status    types.ReservationStatus `gorm:"default:'PENDIENTE'" json:"estadoReserva,omitempty"`

	Locker *Locker `gorm:"foreignKey:locker_id" json:"locker,omitempty"`
	User   *User   `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
