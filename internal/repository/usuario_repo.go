package repository

import (
	"context"

	"lavadero/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsuarioRepository interface {
	// FindActivo looks up an enabled user by login name.
	FindActivo(ctx context.Context, usuario string) (*model.Usuario, error)
	// CreateIfMissing inserts u unless the login name is taken. It reports
	// whether a row was written.
	CreateIfMissing(ctx context.Context, u *model.Usuario) (bool, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) FindActivo(ctx context.Context, usuario string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("usuario = ? AND activo = ?", usuario, true).
		First(&u).Error
	if err != nil {
		return nil, translate("usuario.find", "usuario", err, messages{missing: "Usuario no encontrado"})
	}
	return &u, nil
}

func (r *usuarioRepo) CreateIfMissing(ctx context.Context, u *model.Usuario) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "usuario"}}, DoNothing: true}).
		Create(u)
	if res.Error != nil {
		return false, translate("usuario.create", "usuario", res.Error, messages{})
	}
	return res.RowsAffected > 0, nil
}
