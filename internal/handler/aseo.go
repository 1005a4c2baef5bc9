package handler

import (
	"net/http"

	"lavadero/internal/dto"
	"lavadero/internal/service"

	"github.com/gin-gonic/gin"
)

type AseoHandler struct{ svc service.AseoService }

func NewAseoHandler(svc service.AseoService) *AseoHandler { return &AseoHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar aseo del dia
// @Description  Guarda el checklist de aseo de un lavador. La fecha la pone el servidor; un lavador registra a lo sumo una vez por dia.
// @Tags         aseo
// @Accept       json
// @Produce      json
// @Param        body body     dto.RegistrarAseoRequest true "Checklist"
// @Success      200  {object} dto.RegistrarAseoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /aseo [post]
func (h *AseoHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarAseoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RegistrarAseoResponse{Message: "Aseo registrado correctamente", Aseo: *resp})
}
