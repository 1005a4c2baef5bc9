package dto

type LoginRequest struct {
	Usuario  string `json:"usuario"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	ID      uint   `json:"id"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}
