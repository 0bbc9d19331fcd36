package handlers

import (
	"net/http"
	"strconv"

	"central/models"
	"central/services/chat"
	"central/services/reservation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// identityFromContext reads the caller set by the auth middleware; anonymous
// requests get a zero Identity.
func identityFromContext(c *gin.Context) chat.Identity {
	return chat.Identity{
		UserID:      c.GetString("userID"),
		DisplayName: c.GetString("userName"),
	}
}

// ChatGreeting opens (or resumes) a conversation.
func ChatGreeting(c *gin.Context) {
	conversationID := c.Query("conversationId")
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	reply, draft, err := ChatService.Greeting(c.Request.Context(), conversationID, identityFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open conversation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversationId": conversationID,
		"bot":            reply,
		"draft":          draft,
	})
}

// ChatMessage runs one conversation turn.
func ChatMessage(c *gin.Context) {
	var input models.ChatRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.ConversationID == "" {
		input.ConversationID = uuid.New().String()
	}

	result, err := ChatService.HandleTurn(c.Request.Context(), input.ConversationID, identityFromContext(c), input.Text)
	if err != nil {
		switch {
		case chat.IsCancelled(err):
			c.JSON(499, gin.H{"error": "request cancelled"})
		case chat.IsRetryable(err):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "El asistente no está disponible en este momento. Inténtalo de nuevo.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": input.ConversationID,
		"result":         result,
	})
}

// ChatClear drops the conversation state.
func ChatClear(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := ChatService.ClearSession(c.Request.Context(), input.ConversationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear conversation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// ChatConfirm books the conversation's draft. Anonymous callers get the
// draft parked and a needLogin response instead.
func ChatConfirm(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := ReservationService.Confirm(c.Request.Context(), input.ConversationID, identityFromContext(c))
	if err != nil {
		if err == reservation.ErrNoDraft {
			c.JSON(http.StatusNotFound, gin.H{"error": "no hay una reserva en curso"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm reservation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChatConfirmPending books the draft parked before login. Requires auth.
func ChatConfirmPending(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := ReservationService.ConfirmPending(c.Request.Context(), input.ConversationID, identityFromContext(c))
	if err != nil {
		if err == reservation.ErrNoPendingDraft {
			c.JSON(http.StatusNotFound, gin.H{"error": "no hay una reserva pendiente"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm reservation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChatSavePreferences persists the draft's reusable fields. Requires auth.
func ChatSavePreferences(c *gin.Context) {
	var input struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := ReservationService.SavePreferences(c.Request.Context(), input.ConversationID, identityFromContext(c)); err != nil {
		if err == reservation.ErrNoDraft {
			c.JSON(http.StatusNotFound, gin.H{"error": "no hay una reserva en curso"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// ChatSlots lists the dinner seatings for the next days.
func ChatSlots(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	slots, err := ReservationService.AvailableSlots(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slots", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
