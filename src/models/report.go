package models

import "lrs/src/types"

type Report struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	LockerID     uint               `json:"lockerId,omitempty"`
	UserID       uint               `json:"userId,omitempty"`
	Description  string             `json:"descripcion,omitempty"`
	ReportType   types.ReportType   `json:"tipoReporte,omitempty"`
	Status       types.ReportStatus `gorm:"default:'PENDIENTE'" json:"estado,omitempty"`
	ActionsTaken string             `json:"accionesTomadas,omitempty"`

	Locker *Locker `gorm:"foreignKey:locker_id" json:"locker,omitempty"`
	User   *User   `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
