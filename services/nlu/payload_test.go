package nlu

import (
	"testing"

	"central/models"
)

func TestSplitReplyWithMarker(t *testing.T) {
	full := "¡Claro! Anoto cuatro personas.\n---JSON---\n{\"personas\":4}"
	reply, jsonPart := splitReply(full)
	if reply != "¡Claro! Anoto cuatro personas." {
		t.Errorf("reply = %q", reply)
	}
	if jsonPart != `{"personas":4}` {
		t.Errorf("jsonPart = %q", jsonPart)
	}
}

func TestSplitReplyTrailingJSONFallback(t *testing.T) {
	full := `Perfecto, lo apunto. {"personas": 2, "dia": "2025-10-20"}`
	reply, jsonPart := splitReply(full)
	if reply != "Perfecto, lo apunto." {
		t.Errorf("reply = %q", reply)
	}
	if jsonPart == "" {
		t.Fatal("expected trailing JSON to be recovered")
	}
}

func TestSplitReplyNoJSON(t *testing.T) {
	reply, jsonPart := splitReply("¿Para cuántas personas sería?")
	if reply != "¿Para cuántas personas sería?" || jsonPart != "" {
		t.Errorf("got reply %q json %q", reply, jsonPart)
	}
}

func TestParseStructuredFlexibleTypes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want models.NLUResult
	}{
		{
			name: "numbers and strings",
			in:   `{"dia":"2025-10-20","hora":"20:00","personas":3,"experiencia":"01","restricciones":"sin gluten","nombre":"Juan Perez","dni":"71234567","telefono":987654321}`,
			want: models.NLUResult{
				Day: "2025-10-20", Time: "20:00", PartySize: 3,
				ExperienceCode: "01", Restrictions: "sin gluten",
				ClientName: "Juan Perez", ClientDNI: "71234567", ClientPhone: "987654321",
			},
		},
		{
			name: "personas as string",
			in:   `{"personas":"5"}`,
			want: models.NLUResult{PartySize: 5},
		},
		{
			name: "experiencia as bare id",
			in:   `{"experiencia":2}`,
			want: models.NLUResult{ExperienceID: 2},
		},
		{
			name: "nulls ignored",
			in:   `{"personas":null,"dni":null,"dia":null}`,
			want: models.NLUResult{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var res models.NLUResult
			parseStructured(c.in, &res)
			if res.Day != c.want.Day || res.Time != c.want.Time ||
				res.PartySize != c.want.PartySize ||
				res.ExperienceCode != c.want.ExperienceCode ||
				res.ExperienceID != c.want.ExperienceID ||
				res.Restrictions != c.want.Restrictions ||
				res.ClientName != c.want.ClientName ||
				res.ClientDNI != c.want.ClientDNI ||
				res.ClientPhone != c.want.ClientPhone {
				t.Errorf("parseStructured(%q) = %+v, want %+v", c.in, res, c.want)
			}
		})
	}
}

func TestParseStructuredMalformedKeepsReply(t *testing.T) {
	var res models.NLUResult
	parseStructured(`texto basura {"personas": 4}`, &res)
	if res.PartySize != 4 {
		t.Errorf("trailing JSON recovery failed: %+v", res)
	}

	res = models.NLUResult{}
	parseStructured(`{completely broken`, &res)
	if res.PartySize != 0 || res.Day != "" {
		t.Errorf("malformed JSON should leave fields empty: %+v", res)
	}
}

func TestApplyTextHeuristics(t *testing.T) {
	var res models.NLUResult
	applyTextHeuristics("Le recomiendo el menú de degustación para su visita", &res)
	if res.ExperienceCode != "01" {
		t.Errorf("experienceCode = %q, want 01", res.ExperienceCode)
	}

	res = models.NLUResult{}
	applyTextHeuristics("Tenemos opciones sin gluten y platos veganos", &res)
	if res.Restrictions == "" {
		t.Error("expected restriction keywords to be detected")
	}

	// Never overwrite fields the JSON already set.
	res = models.NLUResult{ExperienceCode: "03", Restrictions: "sin lactosa"}
	applyTextHeuristics("menú de degustación sin gluten", &res)
	if res.ExperienceCode != "03" || res.Restrictions != "sin lactosa" {
		t.Errorf("heuristics overwrote structured fields: %+v", res)
	}
}

func TestExtractResponseTextShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"top level text", `{"text":"hola mundo"}`, "hola mundo"},
		{"response field", `{"response":"buenas noches"}`, "buenas noches"},
		{"chat choices", `{"choices":[{"message":{"content":"claro que sí"}}]}`, "claro que sí"},
		{"completion choices", `{"choices":[{"text":"por supuesto"}]}`, "por supuesto"},
		{"output content", `{"output":[{"content":[{"text":"bienvenido"}]}]}`, "bienvenido"},
		{"not json", `plain model text`, "plain model text"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := extractResponseText([]byte(c.body)); got != c.want {
				t.Errorf("extractResponseText = %q, want %q", got, c.want)
			}
		})
	}
}

func TestParseModelOutputEndToEnd(t *testing.T) {
	full := "Perfecto, cuatro personas sin gluten.\n---JSON---\n" +
		`{"personas":4,"restricciones":"sin gluten","experiencia":"02"}`
	res := parseModelOutput(full, full)
	if res.Reply != "Perfecto, cuatro personas sin gluten." {
		t.Errorf("reply = %q", res.Reply)
	}
	if res.PartySize != 4 || res.Restrictions != "sin gluten" || res.ExperienceCode != "02" {
		t.Errorf("structured fields = %+v", res)
	}
}

func TestParseModelOutputEmptyReply(t *testing.T) {
	res := parseModelOutput("", "")
	if res.Reply != "[Sin respuesta del asistente]" {
		t.Errorf("reply = %q", res.Reply)
	}
}
