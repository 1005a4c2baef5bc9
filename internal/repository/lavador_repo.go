package repository

import (
	"context"

	"lavadero/internal/model"

	"gorm.io/gorm"
)

type LavadorRepository interface {
	// Create fails with apperr.KindDuplicate when the name already exists in that shift.
	Create(ctx context.Context, l *model.Lavador) error
	FindByID(ctx context.Context, id uint) (*model.Lavador, error)
	// List returns every lavador when turno is empty.
	List(ctx context.Context, turno string) ([]model.Lavador, error)
}

type lavadorRepo struct{ db *gorm.DB }

func NewLavadorRepository(db *gorm.DB) LavadorRepository { return &lavadorRepo{db: db} }

func (r *lavadorRepo) Create(ctx context.Context, l *model.Lavador) error {
	err := r.db.WithContext(ctx).Create(l).Error
	return translate("lavador.create", "lavador", err, messages{
		duplicate: "El lavador ya existe en ese turno",
	})
}

func (r *lavadorRepo) FindByID(ctx context.Context, id uint) (*model.Lavador, error) {
	var l model.Lavador
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, translate("lavador.find", "lavador", err, messages{missing: "Lavador no encontrado"})
	}
	return &l, nil
}

func (r *lavadorRepo) List(ctx context.Context, turno string) ([]model.Lavador, error) {
	q := r.db.WithContext(ctx).Model(&model.Lavador{})
	if turno != "" {
		q = q.Where("turno = ?", turno)
	}
	lavadores := make([]model.Lavador, 0)
	if err := q.Order("turno ASC").Order("nombre ASC").Find(&lavadores).Error; err != nil {
		return nil, translate("lavador.list", "lavador", err, messages{})
	}
	return lavadores, nil
}
