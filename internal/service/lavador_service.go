package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lavadero/internal/apperr"
	"lavadero/internal/dto"
	"lavadero/internal/infra"
	"lavadero/internal/model"
	"lavadero/internal/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type LavadorService interface {
	// Listar returns the lavadores of a shift; "" or "admin" lists all.
	Listar(ctx context.Context, turno string) ([]dto.LavadorResponse, error)
	Crear(ctx context.Context, req dto.CrearLavadorRequest) (*dto.LavadorResponse, error)
	// QR returns the checklist link of a lavador rendered as a QR data URL.
	QR(ctx context.Context, id uint) (*dto.QRResponse, error)
}

// QRConfig describes the checklist page the QR codes point at.
type QRConfig struct {
	BaseURL  string
	Path     string
	CacheTTL time.Duration
}

type lavadorService struct {
	repo  repository.LavadorRepository
	qr    QRConfig
	cache *infra.Cache
	// render collapses concurrent renders of the same QR into one.
	render singleflight.Group
}

// NewLavadorService builds the service; rdb may be nil, which disables the
// QR image cache.
func NewLavadorService(repo repository.LavadorRepository, rdb *redis.Client, qr QRConfig) LavadorService {
	return &lavadorService{repo: repo, qr: qr, cache: infra.NewCache(rdb)}
}

func (s *lavadorService) Listar(ctx context.Context, turno string) ([]dto.LavadorResponse, error) {
	filtro := ""
	if v := strings.TrimSpace(turno); v != "" && !strings.EqualFold(v, model.TurnoAdmin) {
		t, ok := model.ParseTurno(v)
		if !ok {
			return nil, apperr.Validation("lavador.listar", "Turno invalido", map[string]string{"turno": "debe ser dia, noche o admin"})
		}
		filtro = t
	}
	lavadores, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LavadorResponse, 0, len(lavadores))
	for _, l := range lavadores {
		out = append(out, dto.LavadorResponse{ID: l.ID, Nombre: l.Nombre, Turno: l.Turno})
	}
	return out, nil
}

func (s *lavadorService) Crear(ctx context.Context, req dto.CrearLavadorRequest) (*dto.LavadorResponse, error) {
	const op = "lavador.crear"

	nombre := strings.TrimSpace(req.Nombre)
	rawTurno := strings.TrimSpace(req.Turno)
	if nombre == "" || rawTurno == "" {
		fields := make(map[string]string)
		if nombre == "" {
			fields["nombre"] = "requerido"
		}
		if rawTurno == "" {
			fields["turno"] = "requerido"
		}
		return nil, apperr.Validation(op, "Datos incompletos", fields)
	}
	turno, ok := model.ParseTurno(rawTurno)
	if !ok {
		return nil, apperr.Validation(op, "Turno invalido", map[string]string{"turno": "debe ser dia o noche"})
	}

	l := &model.Lavador{Nombre: nombre, Turno: turno}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LavadorResponse{ID: l.ID, Nombre: l.Nombre, Turno: l.Turno}, nil
}

func (s *lavadorService) QR(ctx context.Context, id uint) (*dto.QRResponse, error) {
	// Existence is always checked against storage; only the image is cached.
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url := s.checklistURL(l.ID)
	cacheKey := "qr:" + url

	img, err, _ := s.render.Do(cacheKey, func() (any, error) {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
		img, err := infra.QRDataURL(url)
		if err != nil {
			return "", err
		}
		s.cache.Set(context.WithoutCancel(ctx), cacheKey, img, s.qr.CacheTTL)
		return img, nil
	})
	if err != nil {
		return nil, apperr.Storage("lavador.qr", "lavador", false, err)
	}
	return &dto.QRResponse{QR: img.(string), URL: url}, nil
}

func (s *lavadorService) checklistURL(id uint) string {
	path := s.qr.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s%s?token=%d", strings.TrimRight(s.qr.BaseURL, "/"), path, id)
}
