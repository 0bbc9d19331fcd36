package chat

import (
	"context"
	"fmt"
	"strings"

	"central/config"
	"central/models"

	"go.uber.org/zap"
)

// FormatPrice renders an amount with the configured currency symbol
// ("S/ 150.00" for the default es-PE setup).
func FormatPrice(v float64) string {
	sym := config.AppConfig.CurrencySymbol
	if sym == "" {
		sym = "S/"
	}
	return fmt.Sprintf("%s %.2f", sym, v)
}

// buildSummary produces the priced summary and action set for a completed
// draft. Unresolvable experience or date are non-fatal: the summary shows
// explicit placeholders instead of blocking completion.
func (s *DefaultChatService) buildSummary(ctx context.Context, draft *models.ReservationDraft, ident Identity) (*models.ReservationSummary, []models.ChatAction) {
	experienceID := draft.ExperienceID
	if experienceID == 0 && s.Recommender != nil {
		restrictions := draft.Restrictions
		if restrictions == models.NoRestrictions {
			restrictions = ""
		}
		partySize := draft.PartySize
		if partySize <= 0 {
			partySize = 1
		}
		predicted, err := s.Recommender.Predict(ctx, partySize, restrictions)
		if err != nil {
			// suggestion only, never fatal
			s.Logger.Warn("recommender failed, leaving experience unresolved", zap.Error(err))
		} else if predicted > 0 {
			experienceID = predicted
		}
	}

	experienceName := "No especificada"
	var unitPrice float64
	if experienceID > 0 {
		exp, err := s.Catalog.GetByID(ctx, experienceID)
		if err != nil {
			s.Logger.Warn("experience lookup failed",
				zap.Int("experienceId", experienceID), zap.Error(err))
		} else if exp != nil {
			experienceName = exp.Name
			unitPrice = exp.Price
		}
	}

	dateTimeText := strings.TrimSpace(draft.Day + " " + draft.Time)
	if dt := ParseDateTime(draft.Day, draft.Time); !dt.IsZero() {
		dateTimeText = dt.Format("2006-01-02 15:04")
	}

	partySize := draft.PartySize
	if partySize <= 0 {
		partySize = 1
	}
	total := unitPrice * float64(partySize)

	displayName := draft.UserName
	if displayName == "" {
		displayName = ident.DisplayName
	}
	if displayName == "" {
		displayName = "No especificado"
	}

	restrictionsText := draft.Restrictions
	if restrictionsText == "" || restrictionsText == models.NoRestrictions {
		restrictionsText = "Ninguna"
	}
	preferencesText := "—"
	if draft.PreferencesJSON != "" {
		preferencesText = "[guardadas]"
	}
	documentText := draft.DocumentID
	if documentText == "" {
		documentText = "—"
	}
	phoneText := draft.Phone
	if phoneText == "" {
		phoneText = "—"
	}

	unitPriceText := FormatPrice(unitPrice)
	totalText := FormatPrice(total)

	text := fmt.Sprintf("Resumen de reserva (no guardada aún):\n"+
		"Nombre a nombre: %s\n"+
		"DNI: %s\n"+
		"Teléfono: %s\n"+
		"Experiencia: %s\n"+
		"Día y hora: %s\n"+
		"Personas: %d\n"+
		"Restricciones: %s\n"+
		"Preferencias: %s\n"+
		"Precio por persona: %s\n"+
		"Total: %s\n\n"+
		"¿Tienes alguna duda sobre las experiencias o sobre tu reserva?",
		displayName, documentText, phoneText, experienceName, dateTimeText,
		partySize, restrictionsText, preferencesText, unitPriceText, totalText)

	summary := &models.ReservationSummary{
		Text:           text,
		ExperienceID:   experienceID,
		ExperienceName: experienceName,
		DateTime:       dateTimeText,
		UnitPrice:      unitPrice,
		Total:          total,
		UnitPriceText:  unitPriceText,
		TotalText:      totalText,
	}

	actions := []models.ChatAction{
		{Label: "Confirmar y guardar reserva", Action: "confirm"},
		{Label: "Editar detalles", Action: "edit"},
		{Label: "Más info de la experiencia", Action: "more_info"},
	}
	hasRestrictions := draft.Restrictions != "" && draft.Restrictions != models.NoRestrictions
	if hasRestrictions || draft.PreferencesJSON != "" {
		actions = append(actions, models.ChatAction{Label: "Guardar estas preferencias", Action: "save_preferences"})
	}

	return summary, actions
}
