package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MyReservations returns the authenticated caller's reservations.
func MyReservations(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return
	}

	reservations, err := ReservationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}
