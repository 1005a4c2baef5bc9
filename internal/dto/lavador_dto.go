package dto

type CrearLavadorRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
	Turno  string `json:"turno"  validate:"required"`
}

type LavadorResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Turno  string `json:"turno"`
}

type CrearLavadorResponse struct {
	Message string          `json:"message"`
	Lavador LavadorResponse `json:"lavador"`
}

// QRResponse carries the PNG as a data URL plus the URL it encodes.
type QRResponse struct {
	QR  string `json:"qr"`
	URL string `json:"url"`
}
