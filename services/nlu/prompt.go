package nlu

import "strings"

// systemPrompt instructs the model to answer naturally and append a JSON
// block with the structured fields after a fixed marker line.
const systemPrompt = `Eres un asistente conversacional especializado en reservas para Central Restaurante.
Responde de forma natural y cordial. Al final de tu respuesta, añade exactamente en una línea el marcador:
---JSON---
y en las siguientes líneas un JSON válido con las claves (si están disponibles): dia, hora, personas, experiencia, restricciones, nombre, dni, telefono.
Ejemplo:
---JSON---
{"dia":"2025-10-20", "hora":"20:00", "personas":3, "experiencia":"01", "restricciones":"sin gluten", "nombre":"Juan Perez", "dni":"71234567", "telefono":"987654321"}

Si no puedes extraer un campo, pon null (para personas usa null). No añadas texto después del JSON. No uses otro delimitador.`

// buildPrompt assembles the full prompt: system contract, conversation
// context (which already carries the known-fields prefix), and the user's
// latest message.
func buildPrompt(promptContext, userText string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nHistorial de la conversación (usuario y asistente):\n")
	if strings.TrimSpace(promptContext) != "" {
		b.WriteString(promptContext)
		b.WriteString("\n")
	}
	b.WriteString("Usuario: " + userText + "\nAsistente:")
	return b.String()
}
