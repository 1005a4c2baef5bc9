package service

import (
	"time"

	"lavadero/internal/model"

	"gorm.io/datatypes"
)

// Reloj is the server clock used to stamp and bound record dates. Loc
// decides which calendar day "today" is.
type Reloj struct {
	Now func() time.Time
	Loc *time.Location
}

func NewReloj(loc *time.Location) Reloj { return Reloj{Now: time.Now, Loc: loc} }

// Hoy returns today's calendar day in Loc.
func (r Reloj) Hoy() datatypes.Date {
	return model.DiaCivil(r.ahora(), r.Loc)
}

func (r Reloj) ahora() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
