package service

import (
	"context"
	"strings"
	"time"

	"lavadero/internal/apperr"
	"lavadero/internal/dto"
	"lavadero/internal/model"
	"lavadero/internal/repository"
)

type EntregaService interface {
	// Registrar stores a delivery. The date is supplied by the caller but may
	// not be later than today.
	Registrar(ctx context.Context, req dto.RegistrarEntregaRequest) (*dto.EntregaResponse, error)
}

type entregaService struct {
	repo  repository.EntregaRepository
	reloj Reloj
}

func NewEntregaService(repo repository.EntregaRepository, reloj Reloj) EntregaService {
	return &entregaService{repo: repo, reloj: reloj}
}

func (s *entregaService) Registrar(ctx context.Context, req dto.RegistrarEntregaRequest) (*dto.EntregaResponse, error) {
	const op = "entrega.registrar"

	fields := make(map[string]string)
	producto := strings.TrimSpace(req.Producto)
	turno, turnoOK := model.ParseTurno(req.Turno)

	if strings.TrimSpace(req.Fecha) == "" || strings.TrimSpace(req.Turno) == "" ||
		req.LavadorID == 0 || producto == "" || req.Cantidad.IsZero() {
		return nil, apperr.Validation(op, "Datos incompletos", camposFaltantes(req, producto))
	}
	if !turnoOK {
		return nil, apperr.Validation(op, "Turno invalido", map[string]string{"turno": "debe ser dia o noche"})
	}
	if !req.Cantidad.IsPositive() {
		fields["cantidad"] = "debe ser mayor a cero"
	}
	fecha, err := model.ParseFecha(strings.TrimSpace(req.Fecha))
	if err != nil {
		fields["fecha"] = "formato esperado YYYY-MM-DD"
	} else if time.Time(fecha).After(time.Time(s.reloj.Hoy())) {
		return nil, apperr.Validation(op, "No se permiten fechas futuras", map[string]string{"fecha": "posterior a hoy"})
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(op, "Datos invalidos", fields)
	}

	entrega := &model.Entrega{
		Fecha:         fecha,
		Turno:         turno,
		LavadorID:     uint(req.LavadorID),
		Producto:      producto,
		Cantidad:      req.Cantidad,
		Observacion:   normalizarTexto(req.Observacion),
		RegistradoPor: req.RegistradoPor.Ptr(),
	}
	if err := s.repo.Create(ctx, entrega); err != nil {
		return nil, err
	}

	return &dto.EntregaResponse{
		ID:          entrega.ID,
		Fecha:       model.FormatFecha(entrega.Fecha),
		Turno:       entrega.Turno,
		LavadorID:   entrega.LavadorID,
		Producto:    entrega.Producto,
		Cantidad:    entrega.Cantidad,
		Observacion: entrega.Observacion,
	}, nil
}

func camposFaltantes(req dto.RegistrarEntregaRequest, producto string) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Fecha) == "" {
		fields["fecha"] = "requerido"
	}
	if strings.TrimSpace(req.Turno) == "" {
		fields["turno"] = "requerido"
	}
	if req.LavadorID == 0 {
		fields["lavador_id"] = "requerido"
	}
	if producto == "" {
		fields["producto"] = "requerido"
	}
	if req.Cantidad.IsZero() {
		fields["cantidad"] = "requerido"
	}
	return fields
}
