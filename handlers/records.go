package handlers

import (
	"net/http"

	"advisordesk/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordHandler exposes read access to booking records, mainly for
// support staff checking a code a caller read out.
type RecordHandler struct {
	Registry booking.RegistryService
	Logger   *zap.Logger
}

func NewRecordHandler(registry booking.RegistryService, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{Registry: registry, Logger: logger}
}

// GetBookingHandler looks up one booking record by its code. The code is
// normalized first, so "nl-a123" and "NL A123" both resolve.
func (h *RecordHandler) GetBookingHandler(c *gin.Context) {
	code := c.Param("code")

	record, err := h.Registry.Resolve(c.Request.Context(), code)
	if err != nil {
		if booking.IsCode(err, booking.CodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.Logger.Error("booking lookup failed", zap.String("code", code), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": record})
}
