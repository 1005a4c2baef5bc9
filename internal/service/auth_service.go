package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"lavadero/internal/apperr"
	"lavadero/internal/dto"
	"lavadero/internal/repository"
)

// ErrCredencialesInvalidas is returned for unknown users, inactive users and
// wrong passwords alike.
var ErrCredencialesInvalidas = errors.New("Usuario o contraseña incorrectos")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
}

func NewAuthService(repo repository.UsuarioRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario := strings.TrimSpace(req.Usuario)
	if usuario == "" || req.Password == "" {
		return nil, apperr.Validation("auth.login", "Datos incompletos", nil)
	}

	u, err := s.repo.FindActivo(ctx, usuario)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(req.Password)) != 1 {
		return nil, ErrCredencialesInvalidas
	}

	return &dto.LoginResponse{ID: u.ID, Usuario: u.Usuario, Rol: u.Rol}, nil
}
