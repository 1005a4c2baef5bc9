package handler

import (
	"net/http"
	"strconv"

	"lavadero/internal/apierror"
	"lavadero/internal/dto"
	"lavadero/internal/service"

	"github.com/gin-gonic/gin"
)

type LavadoresHandler struct{ svc service.LavadorService }

func NewLavadoresHandler(svc service.LavadorService) *LavadoresHandler {
	return &LavadoresHandler{svc: svc}
}

// Listar godoc
// @Summary Listar lavadores
// @Tags lavadores
// @Produce json
// @Param turno query string false "dia | noche | admin (todos)"
// @Success 200 {array} dto.LavadorResponse
// @Failure 400 {object} apierror.APIError
// @Router /lavadores [get]
func (h *LavadoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("turno"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crear lavador
// @Tags lavadores
// @Accept json
// @Produce json
// @Param body body dto.CrearLavadorRequest true "Lavador"
// @Success 200 {object} dto.CrearLavadorResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /lavadores [post]
func (h *LavadoresHandler) Crear(c *gin.Context) {
	var req dto.CrearLavadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CrearLavadorResponse{Message: "Lavador creado correctamente", Lavador: *resp})
}

// QR godoc
// @Summary QR del checklist de un lavador
// @Description Devuelve el PNG como data URL junto con la URL que codifica.
// @Tags lavadores
// @Produce json
// @Param id path int true "ID del lavador"
// @Success 200 {object} dto.QRResponse
// @Failure 404 {object} apierror.APIError
// @Router /lavadores/{id}/qr [get]
func (h *LavadoresHandler) QR(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.QR(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
