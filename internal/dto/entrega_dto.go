package dto

import "github.com/shopspring/decimal"

func init() {
	// cantidad travels as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarEntregaRequest struct {
	Fecha         string          `json:"fecha"          validate:"required"`
	Turno         string          `json:"turno"          validate:"required"`
	LavadorID     ID              `json:"lavador_id"     validate:"required"`
	Producto      string          `json:"producto"       validate:"required,max=120"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required,gt=0"`
	Observacion   *string         `json:"observacion"`
	RegistradoPor *ID             `json:"registrado_por"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EntregaResponse struct {
	ID          uint            `json:"id"`
	Fecha       string          `json:"fecha"`
	Turno       string          `json:"turno"`
	LavadorID   uint            `json:"lavador_id"`
	Lavador     string          `json:"lavador,omitempty"`
	Producto    string          `json:"producto"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Observacion *string         `json:"observacion"`
}

type RegistrarEntregaResponse struct {
	Message string          `json:"message"`
	Entrega EntregaResponse `json:"entrega"`
}
