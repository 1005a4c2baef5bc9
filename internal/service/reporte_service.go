package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lavadero/internal/apperr"
	"lavadero/internal/dto"
	"lavadero/internal/infra"
	"lavadero/internal/model"
	"lavadero/internal/repository"
)

// Export formats accepted by the report download endpoints.
const (
	FormatoXLSX = "xlsx"
	FormatoPDF  = "pdf"
)

// Archivo is a rendered report ready to be streamed as an attachment.
type Archivo struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

// ReporteService builds the read-only history views. Rows whose lavador no
// longer exists are omitted (inner join).
type ReporteService interface {
	ListarAseo(ctx context.Context, q dto.ReporteQuery) ([]dto.AseoResponse, error)
	ListarEntregas(ctx context.Context, q dto.ReporteQuery) ([]dto.EntregaResponse, error)
	ExportarAseo(ctx context.Context, q dto.ReporteQuery) (*Archivo, error)
	ExportarEntregas(ctx context.Context, q dto.ReporteQuery) (*Archivo, error)
}

type reporteService struct {
	aseoRepo    repository.AseoRepository
	entregaRepo repository.EntregaRepository
	reloj       Reloj
}

func NewReporteService(aseoRepo repository.AseoRepository, entregaRepo repository.EntregaRepository, reloj Reloj) ReporteService {
	return &reporteService{aseoRepo: aseoRepo, entregaRepo: entregaRepo, reloj: reloj}
}

func (s *reporteService) ListarAseo(ctx context.Context, q dto.ReporteQuery) ([]dto.AseoResponse, error) {
	filter, err := ParseFiltro("reporte.aseo", q)
	if err != nil {
		return nil, err
	}
	rows, err := s.aseoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AseoResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, aseoResponse(r.ID, r.Fecha, r.Turno, r.LavadorID, r.Lavador, r.Tareas, r.Observacion))
	}
	return out, nil
}

func (s *reporteService) ListarEntregas(ctx context.Context, q dto.ReporteQuery) ([]dto.EntregaResponse, error) {
	filter, err := ParseFiltro("reporte.entregas", q)
	if err != nil {
		return nil, err
	}
	rows, err := s.entregaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntregaResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EntregaResponse{
			ID:          r.ID,
			Fecha:       model.FormatFecha(r.Fecha),
			Turno:       r.Turno,
			LavadorID:   r.LavadorID,
			Lavador:     r.Lavador,
			Producto:    r.Producto,
			Cantidad:    r.Cantidad,
			Observacion: r.Observacion,
		})
	}
	return out, nil
}

// ── Exports ──────────────────────────────────────────────────────────────────

func (s *reporteService) ExportarAseo(ctx context.Context, q dto.ReporteQuery) (*Archivo, error) {
	formato, err := parseFormato("reporte.aseo.exportar", q.Formato)
	if err != nil {
		return nil, err
	}
	rows, err := s.ListarAseo(ctx, q)
	if err != nil {
		return nil, err
	}
	t := infra.Tabla{
		Titulo:      "Reporte de aseo",
		Encabezados: []string{"Fecha", "Turno", "Lavador", "Tareas", "Observacion"},
		Anchos:      []float64{1.2, 1, 2, 5, 3},
	}
	for _, r := range rows {
		t.Filas = append(t.Filas, []string{r.Fecha, r.Turno, r.Lavador, strings.Join(r.Tareas, ", "), deref(r.Observacion)})
	}
	return s.render(t, "reporte-aseo", formato)
}

func (s *reporteService) ExportarEntregas(ctx context.Context, q dto.ReporteQuery) (*Archivo, error) {
	formato, err := parseFormato("reporte.entregas.exportar", q.Formato)
	if err != nil {
		return nil, err
	}
	rows, err := s.ListarEntregas(ctx, q)
	if err != nil {
		return nil, err
	}
	t := infra.Tabla{
		Titulo:      "Reporte de entregas",
		Encabezados: []string{"Fecha", "Turno", "Lavador", "Producto", "Cantidad", "Observacion"},
		Anchos:      []float64{1.2, 1, 2, 3, 1, 3},
	}
	for _, r := range rows {
		t.Filas = append(t.Filas, []string{r.Fecha, r.Turno, r.Lavador, r.Producto, r.Cantidad.String(), deref(r.Observacion)})
	}
	return s.render(t, "reporte-entregas", formato)
}

func (s *reporteService) render(t infra.Tabla, base, formato string) (*Archivo, error) {
	var buf bytes.Buffer
	nombre := fmt.Sprintf("%s-%s.%s", base, model.FormatFecha(s.reloj.Hoy()), formato)
	switch formato {
	case FormatoPDF:
		if err := infra.WritePDF(&buf, t, s.reloj.ahora().In(s.loc())); err != nil {
			return nil, apperr.Storage("reporte.render", base, false, err)
		}
		return &Archivo{Nombre: nombre, ContentType: "application/pdf", Datos: buf.Bytes()}, nil
	default:
		if err := infra.WriteXLSX(&buf, t); err != nil {
			return nil, apperr.Storage("reporte.render", base, false, err)
		}
		return &Archivo{
			Nombre:      nombre,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Datos:       buf.Bytes(),
		}, nil
	}
}

func (s *reporteService) loc() *time.Location {
	if s.reloj.Loc == nil {
		return time.UTC
	}
	return s.reloj.Loc
}

// ── Filter parsing ───────────────────────────────────────────────────────────

// ParseFiltro validates the raw query of a report endpoint. An empty or
// "admin" turno means every shift; a desde after hasta yields an empty
// report rather than an error.
func ParseFiltro(op string, q dto.ReporteQuery) (repository.ReporteFilter, error) {
	var f repository.ReporteFilter
	fields := make(map[string]string)

	if v := strings.TrimSpace(q.Desde); v != "" {
		d, err := model.ParseFecha(v)
		if err != nil {
			fields["desde"] = "formato esperado YYYY-MM-DD"
		} else {
			f.Desde = &d
		}
	}
	if v := strings.TrimSpace(q.Hasta); v != "" {
		d, err := model.ParseFecha(v)
		if err != nil {
			fields["hasta"] = "formato esperado YYYY-MM-DD"
		} else {
			f.Hasta = &d
		}
	}
	if v := strings.TrimSpace(q.Turno); v != "" && !strings.EqualFold(v, model.TurnoAdmin) {
		turno, ok := model.ParseTurno(v)
		if !ok {
			fields["turno"] = "debe ser dia o noche"
		} else {
			f.Turno = turno
		}
	}
	if v := strings.TrimSpace(q.LavadorID); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			fields["lavador_id"] = "debe ser un id numerico"
		} else {
			lid := uint(id)
			f.LavadorID = &lid
		}
	}
	if q.Page < 0 {
		fields["page"] = "no puede ser negativo"
	}
	if q.Limit < 0 {
		fields["limit"] = "no puede ser negativo"
	}

	if len(fields) > 0 {
		return repository.ReporteFilter{}, apperr.Validation(op, "Filtros invalidos", fields)
	}
	f.Page = q.Page
	f.Limit = q.Limit
	return f, nil
}

func parseFormato(op, formato string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(formato)) {
	case "", FormatoXLSX:
		return FormatoXLSX, nil
	case FormatoPDF:
		return FormatoPDF, nil
	}
	return "", apperr.Validation(op, "Formato invalido", map[string]string{"formato": "debe ser xlsx o pdf"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
