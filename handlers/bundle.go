package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	// Conversation endpoints
	StartSessionHandler gin.HandlerFunc
	TurnHandler         gin.HandlerFunc

	// Booking record endpoints
	GetBookingHandler gin.HandlerFunc
}
