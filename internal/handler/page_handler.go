package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type PageHandler struct {
	roster []string
	db     Pinger
}

func NewPageHandler(roster []string, db Pinger) *PageHandler {
	return &PageHandler{roster: roster, db: db}
}

// Index renders the registration page with the driver roster.
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"choferes": h.roster})
}

// ListDrivers godoc
// @Summary      Lista de choferes
// @Description  Nombres disponibles en el formulario de registro.
// @Tags         Choferes
// @Produce      json
// @Success      200 {array} string
// @Router       /choferes [get]
func (h *PageHandler) ListDrivers(c *gin.Context) {
	roster := h.roster
	if roster == nil {
		roster = []string{}
	}
	c.JSON(http.StatusOK, roster)
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         Sistema
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func (h *PageHandler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
