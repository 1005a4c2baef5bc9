package model

import (
	"time"

	"gorm.io/datatypes"
)

// Aseo is the daily cleaning checklist of one lavador.
// A lavador has at most one Aseo per calendar day (uidx_aseo_lavador_fecha).
// Rows are never updated or deleted.
type Aseo struct {
	ID          uint                        `gorm:"primaryKey"`
	Fecha       datatypes.Date              `gorm:"not null;index;uniqueIndex:uidx_aseo_lavador_fecha,priority:2"`
	Turno       string                      `gorm:"type:varchar(10);not null"`
	LavadorID   uint                        `gorm:"not null;uniqueIndex:uidx_aseo_lavador_fecha,priority:1"`
	Tareas      datatypes.JSONSlice[string] `gorm:"not null"`
	Observacion *string                     `gorm:"type:text"`
	CreatedAt   time.Time

	Lavador *Lavador `gorm:"foreignKey:LavadorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Aseo) TableName() string { return "aseo" }
