package repository

import (
	"context"

	"lavadero/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntregaRow is one line of the deliveries report.
type EntregaRow struct {
	ID          uint
	Fecha       datatypes.Date
	Turno       string
	LavadorID   uint
	Lavador     string
	Producto    string
	Cantidad    decimal.Decimal
	Observacion *string
}

type EntregaRepository interface {
	Create(ctx context.Context, e *model.Entrega) error
	List(ctx context.Context, filter ReporteFilter) ([]EntregaRow, error)
}

type entregaRepo struct{ db *gorm.DB }

func NewEntregaRepository(db *gorm.DB) EntregaRepository { return &entregaRepo{db: db} }

func (r *entregaRepo) Create(ctx context.Context, e *model.Entrega) error {
	err := r.db.WithContext(ctx).Omit("Lavador", "Usuario").Create(e).Error
	// Either foreign key may fail; both point at something the caller named.
	return translate("entrega.create", "entrega", err, messages{
		missing:       "Lavador o usuario no encontrado",
		missingEntity: "lavador",
	})
}

func (r *entregaRepo) List(ctx context.Context, filter ReporteFilter) ([]EntregaRow, error) {
	q := r.db.WithContext(ctx).
		Table("entregas e").
		Select("e.id, e.fecha, e.turno, e.lavador_id, l.nombre AS lavador, e.producto, e.cantidad, e.observacion").
		Joins("JOIN lavadores l ON l.id = e.lavador_id")
	q = applyPredicates(q, filter.Predicates("e"))
	q = paginate(q.Order("e.fecha DESC").Order("e.id DESC"), filter.Page, filter.Limit)

	rows := make([]EntregaRow, 0)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, translate("entrega.list", "entrega", err, messages{})
	}
	return rows, nil
}
