package model

// Lavador is a shift worker. The same name may exist once per shift.
type Lavador struct {
	ID     uint   `gorm:"primaryKey"`
	Nombre string `gorm:"type:varchar(100);not null;uniqueIndex:uidx_lavador_nombre_turno"`
	Turno  string `gorm:"type:varchar(10);not null;index;uniqueIndex:uidx_lavador_nombre_turno"`
}

func (Lavador) TableName() string { return "lavadores" }
