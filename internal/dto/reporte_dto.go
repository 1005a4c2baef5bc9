package dto

// ReporteQuery holds the raw query string of the report endpoints. Dates are
// YYYY-MM-DD; every field is optional.
type ReporteQuery struct {
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	Turno     string `form:"turno"`
	LavadorID string `form:"lavador_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	// Formato selects the export format: xlsx | pdf.
	Formato string `form:"formato"`
}
