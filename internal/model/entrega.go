package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Entrega records products handed to a lavador. Immutable once created.
type Entrega struct {
	ID            uint            `gorm:"primaryKey"`
	Fecha         datatypes.Date  `gorm:"not null;index"`
	Turno         string          `gorm:"type:varchar(10);not null"`
	LavadorID     uint            `gorm:"not null;index"`
	Producto      string          `gorm:"type:varchar(120);not null"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Observacion   *string         `gorm:"type:text"`
	RegistradoPor *uint
	CreatedAt     time.Time

	Lavador *Lavador `gorm:"foreignKey:LavadorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Usuario *Usuario `gorm:"foreignKey:RegistradoPor;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Entrega) TableName() string { return "entregas" }
