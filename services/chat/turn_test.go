package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"central/models"

	"go.uber.org/zap"
)

// ---------- fakes ----------

type fakeSessions struct {
	drafts  map[string]*models.ReservationDraft
	convs   map[string][]string
	pending map[string]*models.ReservationDraft
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		drafts:  make(map[string]*models.ReservationDraft),
		convs:   make(map[string][]string),
		pending: make(map[string]*models.ReservationDraft),
	}
}

func (f *fakeSessions) GetDraft(_ context.Context, id string) (*models.ReservationDraft, error) {
	if d, ok := f.drafts[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSessions) SaveDraft(_ context.Context, id string, d *models.ReservationDraft) error {
	copied := *d
	f.drafts[id] = &copied
	return nil
}

func (f *fakeSessions) GetConversation(_ context.Context, id string) ([]string, error) {
	return append([]string(nil), f.convs[id]...), nil
}

func (f *fakeSessions) SaveConversation(_ context.Context, id string, lines []string) error {
	f.convs[id] = append([]string(nil), lines...)
	return nil
}

func (f *fakeSessions) GetPendingDraft(_ context.Context, id string) (*models.ReservationDraft, error) {
	if d, ok := f.pending[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSessions) SavePendingDraft(_ context.Context, id string, d *models.ReservationDraft) error {
	copied := *d
	f.pending[id] = &copied
	return nil
}

func (f *fakeSessions) ClearPendingDraft(_ context.Context, id string) error {
	delete(f.pending, id)
	return nil
}

func (f *fakeSessions) Clear(_ context.Context, id string) error {
	delete(f.drafts, id)
	delete(f.convs, id)
	delete(f.pending, id)
	return nil
}

type fakeNLU struct {
	result     *models.NLUResult
	err        error
	lastPrompt string
}

func (f *fakeNLU) Converse(_ context.Context, promptContext, _ string) (*models.NLUResult, error) {
	f.lastPrompt = promptContext
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		copied := *f.result
		return &copied, nil
	}
	return &models.NLUResult{Reply: "Entendido."}, nil
}

type fakeCatalog struct {
	byID map[int]models.Experience
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{byID: map[int]models.Experience{
		1: {ID: 1, Code: "01", Name: "Mundo en Degustación", Price: 150},
		2: {ID: 2, Code: "02", Name: "Inmersión Costa Sierra Selva", Price: 190},
		3: {ID: 3, Code: "03", Name: "Theobroma", Price: 120},
	}}
}

func (f *fakeCatalog) GetByID(_ context.Context, id int) (*models.Experience, error) {
	if exp, ok := f.byID[id]; ok {
		return &exp, nil
	}
	return nil, fmt.Errorf("experience %d not found", id)
}

func (f *fakeCatalog) GetByCode(_ context.Context, code string) (*models.Experience, error) {
	for _, exp := range f.byID {
		if exp.Code == code {
			e := exp
			return &e, nil
		}
	}
	return nil, fmt.Errorf("experience code %q not found", code)
}

func (f *fakeCatalog) List(_ context.Context) ([]models.Experience, error) {
	var out []models.Experience
	for _, exp := range f.byID {
		out = append(out, exp)
	}
	return out, nil
}

type fakeRecommender struct {
	id  int
	err error
}

func (f *fakeRecommender) Predict(_ context.Context, _ int, _ string) (int, error) {
	return f.id, f.err
}

type fakePrefs struct {
	pref *models.Preference
	err  error
}

func (f *fakePrefs) GetByUser(_ context.Context, _ string) (*models.Preference, error) {
	return f.pref, f.err
}

func newTestService(nluClient NLUClient, sessions SessionStore) *DefaultChatService {
	return &DefaultChatService{
		NLU:         nluClient,
		Sessions:    sessions,
		Catalog:     newFakeCatalog(),
		Recommender: &fakeRecommender{id: 1},
		Preferences: &fakePrefs{},
		Logger:      zap.NewNop(),
	}
}

// ---------- turn tests ----------

func TestHandleTurnMergesStructuredFields(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(&fakeNLU{result: &models.NLUResult{
		Reply:        "Perfecto, cuatro personas para la Inmersión.",
		PartySize:    4,
		ExperienceID: 2,
	}}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "Somos 4, queremos la experiencia 2")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.PartySize != 4 || result.Draft.ExperienceID != 2 {
		t.Errorf("draft = %+v, want partySize 4 experienceId 2", result.Draft)
	}
	if result.Draft.Step != models.StepAskRestrictions {
		t.Errorf("step = %q, want %q", result.Draft.Step, models.StepAskRestrictions)
	}
	if result.Done {
		t.Error("Done = true for incomplete draft")
	}
	if sessions.drafts["c1"] == nil {
		t.Error("draft was not persisted")
	}
}

func TestHandleTurnStructuredFieldsOnlyFillGaps(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{PartySize: 2, ExperienceID: 3}
	svc := newTestService(&fakeNLU{result: &models.NLUResult{
		Reply:        "Claro.",
		PartySize:    6,
		ExperienceID: 1,
	}}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "mejor para seis")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.PartySize != 2 || result.Draft.ExperienceID != 3 {
		t.Errorf("confirmed values were overwritten: %+v", result.Draft)
	}
}

func TestHandleTurnResolvesExperienceCode(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(&fakeNLU{result: &models.NLUResult{
		Reply:          "La degustación, buena elección.",
		ExperienceCode: "01",
	}}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "quiero la degustación")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.ExperienceID != 1 {
		t.Errorf("experienceId = %d, want 1", result.Draft.ExperienceID)
	}
}

func TestHandleTurnVegetarianWithGlutenDislike(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{PartySize: 4, ExperienceID: 2}
	svc := newTestService(&fakeNLU{}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1", Identity{},
		"Soy vegetariano y no me gusta el gluten")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.Restrictions != "vegetariano" {
		t.Errorf("restrictions = %q, want %q", result.Draft.Restrictions, "vegetariano")
	}
	if result.Draft.Step != models.StepAskDay {
		t.Errorf("step = %q, want %q", result.Draft.Step, models.StepAskDay)
	}
}

func TestHandleTurnNoneAnswerAtRestrictionsStep(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{PartySize: 4, ExperienceID: 2}
	svc := newTestService(&fakeNLU{}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "no")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.Restrictions != models.NoRestrictions {
		t.Errorf("restrictions = %q, want %q", result.Draft.Restrictions, models.NoRestrictions)
	}
	if result.Draft.Step != models.StepAskDay {
		t.Errorf("step = %q, want %q", result.Draft.Step, models.StepAskDay)
	}
}

func TestHandleTurnNoneAnswerIgnoredElsewhere(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(&fakeNLU{}, sessions)

	// The draft is empty, so the assistant was asking about the experience:
	// a bare "no" must not be recorded as a restrictions answer.
	result, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "no")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.Restrictions != "" {
		t.Errorf("restrictions = %q, want empty", result.Draft.Restrictions)
	}
}

func TestHandleTurnIdentityNameFallback(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(&fakeNLU{}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1",
		Identity{UserID: "u1", DisplayName: "Luis"}, "hola")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if result.Draft.UserName != "Luis" {
		t.Errorf("userName = %q, want %q", result.Draft.UserName, "Luis")
	}
}

func TestHandleTurnCompletionBuildsPricedSummary(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{
		Day:          "2025-10-20",
		Time:         "20:00",
		PartySize:    3,
		ExperienceID: 1,
		Restrictions: "vegetariano",
		UserName:     "Juan Perez",
		DocumentID:   "71234567",
		Phone:        "987654321",
	}
	svc := newTestService(&fakeNLU{result: &models.NLUResult{Reply: "¡Anotado!"}}, sessions)

	result, err := svc.HandleTurn(context.Background(), "c1", Identity{},
		"me gusta la mesa junto a la ventana")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if !result.Done {
		t.Fatalf("Done = false, step %q", result.Draft.Step)
	}
	if result.Summary == nil {
		t.Fatal("Summary is nil for a completed draft")
	}
	if result.Summary.Total != 450 {
		t.Errorf("total = %v, want 450", result.Summary.Total)
	}
	if result.Summary.TotalText != "S/ 450.00" {
		t.Errorf("totalText = %q, want %q", result.Summary.TotalText, "S/ 450.00")
	}
	if result.Summary.ExperienceName != "Mundo en Degustación" {
		t.Errorf("experienceName = %q", result.Summary.ExperienceName)
	}
	if !strings.Contains(result.Summary.Text, "S/ 450.00") {
		t.Errorf("summary text does not show the total: %q", result.Summary.Text)
	}

	var payload models.PreferencePayload
	if err := json.Unmarshal([]byte(result.Draft.PreferencesJSON), &payload); err != nil {
		t.Fatalf("preferences payload: %v", err)
	}
	if payload.Source != "user" || payload.Text != "me gusta la mesa junto a la ventana" {
		t.Errorf("payload = %+v", payload)
	}

	var actionNames []string
	for _, a := range result.Actions {
		actionNames = append(actionNames, a.Action)
	}
	joined := strings.Join(actionNames, ",")
	for _, want := range []string{"confirm", "edit", "more_info", "save_preferences"} {
		if !strings.Contains(joined, want) {
			t.Errorf("actions %v missing %q", actionNames, want)
		}
	}
}

func TestHandleTurnNLUFailureLeavesDraftUntouched(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{PartySize: 4, ExperienceID: 2}
	svc := newTestService(&fakeNLU{err: errors.New("upstream 500")}, sessions)

	_, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "hola")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRetryable(err) {
		t.Errorf("error not retryable: %v", err)
	}
	if d := sessions.drafts["c1"]; d.PartySize != 4 || d.ExperienceID != 2 || d.Restrictions != "" {
		t.Errorf("draft modified on failure: %+v", d)
	}
	if len(sessions.convs["c1"]) != 0 {
		t.Errorf("conversation saved on failure: %v", sessions.convs["c1"])
	}
}

func TestHandleTurnCancellation(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(&fakeNLU{err: fmt.Errorf("request aborted: %w", context.Canceled)}, sessions)

	_, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "hola")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsCancelled(err) {
		t.Errorf("error not recognized as cancellation: %v", err)
	}
	if IsRetryable(err) {
		t.Errorf("cancellation must not be retryable: %v", err)
	}
}

// A gRPC-backed provider reports a caller abort as an opaque status error
// with no unwrap chain to context.Canceled; the cancelled context itself
// must carry the classification.
func TestHandleTurnCancellationOpaqueProviderError(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{PartySize: 4, ExperienceID: 2}

	ctx, cancel := context.WithCancel(context.Background())
	nlu := &cancellingNLU{cancel: cancel, err: errors.New("rpc error: code = Canceled desc = context canceled")}
	svc := newTestService(nlu, sessions)

	_, err := svc.HandleTurn(ctx, "c1", Identity{}, "hola")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsCancelled(err) {
		t.Errorf("error not recognized as cancellation: %v", err)
	}
	if IsRetryable(err) {
		t.Errorf("cancellation must not be retryable: %v", err)
	}
	if d := sessions.drafts["c1"]; d.PartySize != 4 || d.ExperienceID != 2 {
		t.Errorf("draft modified on cancellation: %+v", d)
	}
}

// cancellingNLU cancels the turn's context before failing, the way an
// aborted in-flight gRPC call looks to the orchestrator.
type cancellingNLU struct {
	cancel context.CancelFunc
	err    error
}

func (f *cancellingNLU) Converse(_ context.Context, _, _ string) (*models.NLUResult, error) {
	f.cancel()
	return nil, f.err
}

func TestHandleTurnRejectsEmptyText(t *testing.T) {
	svc := newTestService(&fakeNLU{}, newFakeSessions())
	if _, err := svc.HandleTurn(context.Background(), "c1", Identity{}, "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestBuildPromptContextKnownFieldsAndWindow(t *testing.T) {
	draft := models.ReservationDraft{PartySize: 4, ExperienceID: 2, Restrictions: "vegetariano", UserName: "Juan"}

	var conv []string
	for i := 0; i < 60; i++ {
		conv = append(conv, fmt.Sprintf("Usuario: mensaje %d", i))
	}

	prompt := buildPromptContext(draft, conv)
	if !strings.HasPrefix(prompt, "INFORMACION_INICIAL: ") {
		t.Errorf("prompt missing known-fields prefix: %q", prompt[:40])
	}
	for _, want := range []string{"Personas: 4", "ExperienciaId: 2", "Restricciones: vegetariano", "NombreUsuario: Juan"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "mensaje 19") {
		t.Error("prompt window kept lines beyond the cap")
	}
	if !strings.Contains(prompt, "mensaje 59") {
		t.Error("prompt window dropped the latest line")
	}
}

func TestClearSession(t *testing.T) {
	sessions := newFakeSessions()
	sessions.drafts["c1"] = &models.ReservationDraft{PartySize: 2}
	sessions.convs["c1"] = []string{"Usuario: hola"}
	svc := newTestService(&fakeNLU{}, sessions)

	if err := svc.ClearSession(context.Background(), "c1"); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if sessions.drafts["c1"] != nil || len(sessions.convs["c1"]) != 0 {
		t.Error("session state not cleared")
	}
}
