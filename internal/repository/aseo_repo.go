package repository

import (
	"context"

	"lavadero/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AseoRow is one line of the cleaning report, joined with the lavador name.
type AseoRow struct {
	ID          uint
	Fecha       datatypes.Date
	Turno       string
	LavadorID   uint
	Lavador     string
	Tareas      datatypes.JSONSlice[string]
	Observacion *string
}

type AseoRepository interface {
	// Create inserts a record. A second record for the same lavador and day
	// fails with apperr.KindDuplicate; an unknown lavador with KindNotFound.
	Create(ctx context.Context, a *model.Aseo) error
	List(ctx context.Context, filter ReporteFilter) ([]AseoRow, error)
}

type aseoRepo struct{ db *gorm.DB }

func NewAseoRepository(db *gorm.DB) AseoRepository { return &aseoRepo{db: db} }

var aseoMsgs = messages{
	duplicate:     "El lavador ya registró el aseo de hoy",
	missing:       "Lavador no encontrado",
	missingEntity: "lavador",
}

func (r *aseoRepo) Create(ctx context.Context, a *model.Aseo) error {
	// Omit the association so a nil Lavador is never upserted.
	err := r.db.WithContext(ctx).Omit("Lavador").Create(a).Error
	return translate("aseo.create", "aseo", err, aseoMsgs)
}

func (r *aseoRepo) List(ctx context.Context, filter ReporteFilter) ([]AseoRow, error) {
	q := r.db.WithContext(ctx).
		Table("aseo a").
		Select("a.id, a.fecha, a.turno, a.lavador_id, l.nombre AS lavador, a.tareas, a.observacion").
		Joins("JOIN lavadores l ON l.id = a.lavador_id")
	q = applyPredicates(q, filter.Predicates("a"))
	q = paginate(q.Order("a.fecha DESC").Order("a.id DESC"), filter.Page, filter.Limit)

	rows := make([]AseoRow, 0)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, translate("aseo.list", "aseo", err, messages{})
	}
	return rows, nil
}
