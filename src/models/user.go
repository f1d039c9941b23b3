package models

import (
	"lrs/src/types"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Username     string `gorm:"uniqueIndex" json:"userName,omitempty"`
	Name         string `json:"nombre,omitempty"`
	Surname      string `json:"apellido,omitempty"`
	Email        string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role         string `gorm:"default:'ESTUDIANTE'" json:"role,omitempty"`
	Active       bool   `gorm:"default:true" json:"activo"`
	PasswordHash string `json:"-"`

	Reservations []Reservation `gorm:"foreignKey:user_id" json:"reservas,omitempty"`
	Reports      []Report      `gorm:"foreignKey:user_id" json:"reportes,omitempty"`

	types.Timestamps
}
