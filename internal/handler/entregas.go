package handler

import (
	"net/http"

	"lavadero/internal/dto"
	"lavadero/internal/service"

	"github.com/gin-gonic/gin"
)

type EntregasHandler struct{ svc service.EntregaService }

func NewEntregasHandler(svc service.EntregaService) *EntregasHandler {
	return &EntregasHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar entrega de producto
// @Description  La fecha no puede ser posterior a hoy.
// @Tags         entregas
// @Accept       json
// @Produce      json
// @Param        body body     dto.RegistrarEntregaRequest true "Entrega"
// @Success      200  {object} dto.RegistrarEntregaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /entregas [post]
func (h *EntregasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarEntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RegistrarEntregaResponse{Message: "Entrega registrada correctamente", Entrega: *resp})
}
