package chat

import (
	"context"

	"central/models"

	"go.uber.org/zap"
)

// SessionStore keeps the per-conversation state (draft, history, pending
// reservation) between turns. The store is responsible for key-level
// isolation between conversations; the service assumes at most one in-flight
// turn per conversation id.
type SessionStore interface {
	GetDraft(ctx context.Context, conversationID string) (*models.ReservationDraft, error)
	SaveDraft(ctx context.Context, conversationID string, draft *models.ReservationDraft) error
	GetConversation(ctx context.Context, conversationID string) ([]string, error)
	SaveConversation(ctx context.Context, conversationID string, lines []string) error
	GetPendingDraft(ctx context.Context, conversationID string) (*models.ReservationDraft, error)
	SavePendingDraft(ctx context.Context, conversationID string, draft *models.ReservationDraft) error
	ClearPendingDraft(ctx context.Context, conversationID string) error
	Clear(ctx context.Context, conversationID string) error
}

// NLUClient talks to the external conversational model. promptContext
// summarizes already-known draft fields so the model doesn't re-ask for known
// data. Implementations must honor ctx cancellation.
type NLUClient interface {
	Converse(ctx context.Context, promptContext, userText string) (*models.NLUResult, error)
}

// ExperienceCatalog is the read-only experience lookup collaborator.
type ExperienceCatalog interface {
	GetByID(ctx context.Context, id int) (*models.Experience, error)
	GetByCode(ctx context.Context, code string) (*models.Experience, error)
	List(ctx context.Context) ([]models.Experience, error)
}

// Recommender suggests an experience from draft features. Failures are
// swallowed by the turn logic: a recommendation is a suggestion, never a
// requirement.
type Recommender interface {
	Predict(ctx context.Context, partySize int, restrictions string) (int, error)
}

// PreferenceSource loads a user's saved preference blob, used to prefill a
// fresh draft when an authenticated user opens the chat.
type PreferenceSource interface {
	GetByUser(ctx context.Context, userID string) (*models.Preference, error)
}

// Identity is the optional authenticated caller for a turn. The display name
// is used only as a last-resort fill for the draft's user name.
type Identity struct {
	UserID      string
	DisplayName string
}

func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// ChatService drives the conversational reservation flow.
type ChatService interface {
	// Greeting opens (or resumes) a conversation and returns the current
	// assistant message plus the draft snapshot, prefilling the draft from
	// saved preferences for authenticated users.
	Greeting(ctx context.Context, conversationID string, ident Identity) (string, *models.ReservationDraft, error)

	// HandleTurn runs one full conversation turn for the given user text.
	HandleTurn(ctx context.Context, conversationID string, ident Identity, userText string) (*models.TurnResult, error)

	// ClearSession drops the draft, history and pending state for a conversation.
	ClearSession(ctx context.Context, conversationID string) error
}

// DefaultChatService is the production ChatService implementation.
type DefaultChatService struct {
	NLU         NLUClient
	Sessions    SessionStore
	Catalog     ExperienceCatalog
	Recommender Recommender
	Preferences PreferenceSource
	Logger      *zap.Logger
}
