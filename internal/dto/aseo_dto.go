package dto

import "encoding/json"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarAseoRequest is the body of POST /aseo. The date is never taken
// from the client. English keys (shift, worker_id, tasks, observation) are
// accepted as aliases of the Spanish ones.
type RegistrarAseoRequest struct {
	Turno       string   `json:"turno"       validate:"required"`
	LavadorID   ID       `json:"lavador_id"  validate:"required"`
	Tareas      []string `json:"tareas"      validate:"required,min=1"`
	Observacion *string  `json:"observacion"`
}

func (r *RegistrarAseoRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Turno       string   `json:"turno"`
		Shift       string   `json:"shift"`
		LavadorID   ID       `json:"lavador_id"`
		WorkerID    ID       `json:"worker_id"`
		Tareas      []string `json:"tareas"`
		Tasks       []string `json:"tasks"`
		Observacion *string  `json:"observacion"`
		Observation *string  `json:"observation"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = RegistrarAseoRequest{
		Turno:       raw.Turno,
		LavadorID:   raw.LavadorID,
		Tareas:      raw.Tareas,
		Observacion: raw.Observacion,
	}
	if r.Turno == "" {
		r.Turno = raw.Shift
	}
	if r.LavadorID == 0 {
		r.LavadorID = raw.WorkerID
	}
	if r.Tareas == nil {
		r.Tareas = raw.Tasks
	}
	if r.Observacion == nil {
		r.Observacion = raw.Observation
	}
	return nil
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AseoResponse struct {
	ID          uint     `json:"id"`
	Fecha       string   `json:"fecha"`
	Turno       string   `json:"turno"`
	LavadorID   uint     `json:"lavador_id"`
	Lavador     string   `json:"lavador,omitempty"`
	Tareas      []string `json:"tareas"`
	Observacion *string  `json:"observacion"`
}

type RegistrarAseoResponse struct {
	Message string       `json:"message"`
	Aseo    AseoResponse `json:"aseo"`
}
