package service

import (
	"context"
	"fmt"
	"strings"

	"lavadero/internal/apperr"
	"lavadero/internal/dto"
	"lavadero/internal/model"
	"lavadero/internal/repository"

	"gorm.io/datatypes"
)

type AseoService interface {
	// Registrar stores today's checklist for a lavador. It fails with
	// apperr.KindValidation before touching storage, and with
	// apperr.KindDuplicate when the lavador already registered today.
	Registrar(ctx context.Context, req dto.RegistrarAseoRequest) (*dto.AseoResponse, error)
}

type aseoService struct {
	repo  repository.AseoRepository
	reloj Reloj
}

func NewAseoService(repo repository.AseoRepository, reloj Reloj) AseoService {
	return &aseoService{repo: repo, reloj: reloj}
}

func (s *aseoService) Registrar(ctx context.Context, req dto.RegistrarAseoRequest) (*dto.AseoResponse, error) {
	const op = "aseo.registrar"

	fields := make(map[string]string)
	turno, ok := model.ParseTurno(req.Turno)
	switch {
	case strings.TrimSpace(req.Turno) == "":
		fields["turno"] = "requerido"
	case !ok:
		fields["turno"] = "debe ser dia o noche"
	}
	if req.LavadorID == 0 {
		fields["lavador_id"] = "requerido"
	}
	if msg := validarTareas(req.Tareas); msg != "" {
		fields["tareas"] = msg
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(op, "Datos incompletos", fields)
	}

	// Copy so later mutation of the request cannot alter the stored order.
	tareas := make([]string, len(req.Tareas))
	copy(tareas, req.Tareas)

	aseo := &model.Aseo{
		Fecha:       s.reloj.Hoy(),
		Turno:       turno,
		LavadorID:   uint(req.LavadorID),
		Tareas:      datatypes.JSONSlice[string](tareas),
		Observacion: normalizarTexto(req.Observacion),
	}
	// Uniqueness is enforced by the (lavador_id, fecha) index, so concurrent
	// registrations for the same day resolve to exactly one winner.
	if err := s.repo.Create(ctx, aseo); err != nil {
		return nil, err
	}

	resp := aseoResponse(aseo.ID, aseo.Fecha, aseo.Turno, aseo.LavadorID, "", aseo.Tareas, aseo.Observacion)
	return &resp, nil
}

func validarTareas(tareas []string) string {
	if len(tareas) == 0 {
		return "debe incluir al menos una tarea"
	}
	for i, t := range tareas {
		if strings.TrimSpace(t) == "" {
			return fmt.Sprintf("la tarea %d esta vacia", i+1)
		}
	}
	return ""
}

// normalizarTexto trims optional free text; blank becomes nil.
func normalizarTexto(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func aseoResponse(id uint, fecha datatypes.Date, turno string, lavadorID uint, lavador string, tareas []string, obs *string) dto.AseoResponse {
	out := make([]string, len(tareas))
	copy(out, tareas)
	return dto.AseoResponse{
		ID:          id,
		Fecha:       model.FormatFecha(fecha),
		Turno:       turno,
		LavadorID:   lavadorID,
		Lavador:     lavador,
		Tareas:      out,
		Observacion: obs,
	}
}
