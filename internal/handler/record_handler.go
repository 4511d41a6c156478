package handler

//go:generate mockgen -source=record_handler.go -destination=mocks/mock_record_handler.go -package=mocks

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"GestorChoferes/internal/models"
	"GestorChoferes/internal/service"
	"GestorChoferes/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecordService interface {
	CreateRecord(ctx context.Context, in models.RecordInput) (service.CreateResult, error)
	ListRecords(ctx context.Context) ([]models.Record, error)
	GetRecord(ctx context.Context, id int64) (models.Record, error)
	UpdateRecord(ctx context.Context, id int64, in models.RecordInput) (service.MessageResult, error)
	DeleteRecord(ctx context.Context, id int64) (service.MessageResult, error)
}

type ErrorResponse struct {
	Error string `json:"error" example:"Registro no encontrado"`
}

const (
	msgInvalidBody = "Cuerpo de la solicitud inválido"
	msgInvalidID   = "ID de registro inválido"
	msgStorage     = "Error al acceder a la base de datos"
)

type RecordHandler struct {
	svc RecordService
	log *zap.Logger
}

func NewRecordHandler(svc RecordService, log *zap.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, log: log}
}

// CreateRecord godoc
// @Summary      Crear registro
// @Description  Registra una entrada o salida de chofer. event_timestamp es opcional y toma la hora local actual.
// @Tags         Registros
// @Accept       json
// @Produce      json
// @Param        request body models.RecordInput true "Datos del registro"
// @Success      200 {object} service.CreateResult
// @Failure      400 {object} handler.ErrorResponse "Campo requerido vacío o cuerpo inválido"
// @Failure      429 {object} handler.ErrorResponse "Demasiadas solicitudes"
// @Failure      500 {object} handler.ErrorResponse "Error de base de datos"
// @Router       /registros/ [post]
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var in models.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	res, err := h.svc.CreateRecord(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListRecords godoc
// @Summary      Listar registros
// @Description  Devuelve todos los registros, del más reciente al más antiguo.
// @Tags         Registros
// @Produce      json
// @Success      200 {array}  models.Record
// @Failure      500 {object} handler.ErrorResponse "Error de base de datos"
// @Router       /registros/ [get]
func (h *RecordHandler) ListRecords(c *gin.Context) {
	records, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetRecord godoc
// @Summary      Obtener registro
// @Tags         Registros
// @Produce      json
// @Param        id path int true "ID del registro"
// @Success      200 {object} models.Record
// @Failure      400 {object} handler.ErrorResponse "ID inválido"
// @Failure      404 {object} handler.ErrorResponse "Registro no encontrado"
// @Failure      500 {object} handler.ErrorResponse "Error de base de datos"
// @Router       /registros/{id} [get]
func (h *RecordHandler) GetRecord(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.svc.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateRecord godoc
// @Summary      Actualizar registro
// @Description  Reemplaza los campos editables. recorded_at nunca cambia; event_timestamp se conserva si no se envía.
// @Tags         Registros
// @Accept       json
// @Produce      json
// @Param        id      path int               true "ID del registro"
// @Param        request body models.RecordInput true "Datos del registro"
// @Success      200 {object} service.MessageResult
// @Failure      400 {object} handler.ErrorResponse "ID o cuerpo inválido"
// @Failure      404 {object} handler.ErrorResponse "Registro no encontrado"
// @Failure      429 {object} handler.ErrorResponse "Demasiadas solicitudes"
// @Failure      500 {object} handler.ErrorResponse "Error de base de datos"
// @Router       /registros/{id} [put]
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var in models.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	res, err := h.svc.UpdateRecord(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteRecord godoc
// @Summary      Eliminar registro
// @Tags         Registros
// @Produce      json
// @Param        id path int true "ID del registro"
// @Success      200 {object} service.MessageResult
// @Failure      400 {object} handler.ErrorResponse "ID inválido"
// @Failure      404 {object} handler.ErrorResponse "Registro no encontrado"
// @Failure      429 {object} handler.ErrorResponse "Demasiadas solicitudes"
// @Failure      500 {object} handler.ErrorResponse "Error de base de datos"
// @Router       /registros/{id} [delete]
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	res, err := h.svc.DeleteRecord(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return 0, false
	}
	return id, true
}

func (h *RecordHandler) writeError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.MsgNotFound})
	default:
		_ = c.Error(err)
		h.log.Error("RecordHandler: request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorage})
	}
}
