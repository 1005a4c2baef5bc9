package handler

import (
	"fmt"
	"net/http"

	"lavadero/internal/apierror"
	"lavadero/internal/dto"
	"lavadero/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Aseo godoc
// @Summary      Reporte de aseo
// @Description  Historial de aseo ordenado por fecha descendente. Todos los filtros son opcionales y se combinan.
// @Tags         reportes
// @Produce      json
// @Param        desde      query string false "Fecha inicial (YYYY-MM-DD, inclusive)"
// @Param        hasta      query string false "Fecha final (YYYY-MM-DD, inclusive)"
// @Param        turno      query string false "dia | noche | admin (todos)"
// @Param        lavador_id query int    false "ID del lavador"
// @Param        page       query int    false "Pagina (requiere limit)"
// @Param        limit      query int    false "Filas por pagina"
// @Success      200  {array}  dto.AseoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /reporte-aseo [get]
func (h *ReportesHandler) Aseo(c *gin.Context) {
	var q dto.ReporteQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListarAseo(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Entregas godoc
// @Summary      Reporte de entregas
// @Description  Historial de entregas de productos con los mismos filtros que el reporte de aseo.
// @Tags         reportes
// @Produce      json
// @Param        desde      query string false "Fecha inicial (YYYY-MM-DD, inclusive)"
// @Param        hasta      query string false "Fecha final (YYYY-MM-DD, inclusive)"
// @Param        turno      query string false "dia | noche | admin (todos)"
// @Param        lavador_id query int    false "ID del lavador"
// @Param        page       query int    false "Pagina (requiere limit)"
// @Param        limit      query int    false "Filas por pagina"
// @Success      200  {array}  dto.EntregaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /reporte-entregas [get]
func (h *ReportesHandler) Entregas(c *gin.Context) {
	var q dto.ReporteQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListarEntregas(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarAseo godoc
// @Summary      Exportar reporte de aseo
// @Tags         reportes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        formato query string false "xlsx (default) | pdf"
// @Success      200
// @Failure      400  {object} apierror.APIError
// @Router       /reporte-aseo/export [get]
func (h *ReportesHandler) ExportarAseo(c *gin.Context) {
	var q dto.ReporteQuery
	if !bindQuery(c, &q) {
		return
	}
	archivo, err := h.svc.ExportarAseo(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	sendArchivo(c, archivo)
}

// ExportarEntregas godoc
// @Summary      Exportar reporte de entregas
// @Tags         reportes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        formato query string false "xlsx (default) | pdf"
// @Success      200
// @Failure      400  {object} apierror.APIError
// @Router       /reporte-entregas/export [get]
func (h *ReportesHandler) ExportarEntregas(c *gin.Context) {
	var q dto.ReporteQuery
	if !bindQuery(c, &q) {
		return
	}
	archivo, err := h.svc.ExportarEntregas(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	sendArchivo(c, archivo)
}

func bindQuery(c *gin.Context, q *dto.ReporteQuery) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	return true
}

func sendArchivo(c *gin.Context, a *service.Archivo) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, a.Nombre))
	c.Data(http.StatusOK, a.ContentType, a.Datos)
}
