package models

import "lrs/src/types"

type Location struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	BuildingName string `json:"nombreEdificio,omitempty"`
	Pabellon     string `json:"pabellon,omitempty"`
	Floor        uint   `json:"piso,omitempty"`
	Description  string `json:"descripcion,omitempty"`

	types.Timestamps
}
