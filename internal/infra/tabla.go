package infra

// Tabla is a format-neutral report table handed to the exporters.
type Tabla struct {
	Titulo      string
	Encabezados []string
	// Anchos are relative column widths used by the PDF exporter; nil means equal widths.
	Anchos []float64
	Filas  [][]string
}
