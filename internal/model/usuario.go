package model

// Usuario stores the people who log into the panel.
// Rol: "admin" | "dia" | "noche"
type Usuario struct {
	ID      uint   `gorm:"primaryKey"`
	Usuario string `gorm:"type:varchar(60);uniqueIndex;not null"`
	// Password is compared as an opaque credential.
	Password string `gorm:"type:varchar(255);not null"`
	Rol      string `gorm:"type:varchar(20);not null"`
	Activo   bool   `gorm:"not null;default:true"`
}

func (Usuario) TableName() string { return "usuarios" }
