package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/service/generators"

	"github.com/google/uuid"
)

// ErrEmptyMessage is returned for a chat request without text.
var ErrEmptyMessage = apperrors.NewValidationError("message", "Missing required field: message")

// SessionStore persists conversation sessions between requests.
// Get returns (nil, nil) for an unknown session.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.ConversationSession, error)
	SaveWithOptimisticLock(ctx context.Context, session *model.ConversationSession, maxRetries int) error
	Delete(ctx context.Context, sessionID string) error
}

// ChatService runs dialogue turns for stateless callers by loading the
// session context, processing the turn and saving the context back.
type ChatService struct {
	sessions   SessionStore
	classifier *IntentClassifier
	extractor  *EntityExtractor
	generators GeneratorRegistry
	deps       *generators.Deps
	maxRetries int
	logger     logger.Logger
}

func NewChatService(sessions SessionStore, classifier *IntentClassifier, registry GeneratorRegistry, deps *generators.Deps, maxRetries int, log logger.Logger) *ChatService {
	if classifier == nil {
		classifier = NewIntentClassifier(nil, log)
	}
	if registry == nil {
		registry = DefaultGenerators()
	}
	if deps == nil {
		deps = generators.NewDeps(nil, nil)
	}
	return &ChatService{
		sessions:   sessions,
		classifier: classifier,
		extractor:  NewEntityExtractor(),
		generators: registry,
		deps:       deps,
		maxRetries: maxRetries,
		logger:     logger.Component(log, "ChatService"),
	}
}

// NewConversation returns an engine over a fresh context that shares this
// service's classifier, generators and collaborators.
func (s *ChatService) NewConversation() *DialogueEngine {
	return s.engineFor(model.NewConversationContext())
}

func (s *ChatService) engineFor(convo *model.ConversationContext) *DialogueEngine {
	return NewDialogueEngine(convo, EngineConfig{
		Extractor:  s.extractor,
		Classifier: s.classifier,
		Generators: s.generators,
		Deps:       s.deps,
		Logger:     s.logger,
	})
}

// HandleMessage processes one utterance in the given session, creating the
// session when the id is empty or unknown. The session is saved even when
// the turn fails, since the turn is already in the history.
func (s *ChatService) HandleMessage(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	session, err := s.loadOrCreate(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	engine := s.engineFor(session.Context)
	resp, turnErr := engine.ProcessTurn(ctx, req.Message)

	session.UpdatedAt = s.timestamp()
	if err := s.sessions.SaveWithOptimisticLock(ctx, session, s.maxRetries); err != nil {
		s.logger.WithError(err).Error("failed to save session", map[string]interface{}{"session_id": session.ID})
		if turnErr == nil {
			return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeSessionStoreUnavailable, "session store", err)
		}
	}
	if turnErr != nil {
		return &model.ChatResponse{SessionID: session.ID}, turnErr
	}

	return &model.ChatResponse{SessionID: session.ID, Response: resp}, nil
}

// GetContext returns the stored context of a session, or nil when unknown.
func (s *ChatService) GetContext(ctx context.Context, sessionID string) (*model.ConversationContext, error) {
	if sessionID == "" {
		return nil, apperrors.NewValidationError("session_id", "Missing required field: session_id")
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeSessionStoreUnavailable, "session store", err)
	}
	if session == nil {
		return nil, nil
	}
	return session.Context, nil
}

func (s *ChatService) ResetSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.NewValidationError("session_id", "Missing required field: session_id")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.NewCollaboratorError(apperrors.ErrCodeSessionStoreUnavailable, "session store", err)
	}
	s.logger.Info("session reset", map[string]interface{}{"session_id": sessionID})
	return nil
}

func (s *ChatService) loadOrCreate(ctx context.Context, sessionID string) (*model.ConversationSession, error) {
	if sessionID != "" {
		session, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeSessionStoreUnavailable, "session store", err)
		}
		if session != nil {
			if session.Context == nil {
				session.Context = model.NewConversationContext()
			}
			return session, nil
		}
	} else {
		sessionID = uuid.New().String()
	}

	ts := s.timestamp()
	s.logger.Debug("session created", map[string]interface{}{"session_id": sessionID})
	return &model.ConversationSession{
		ID:        sessionID,
		Context:   model.NewConversationContext(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyMessage) || apperrors.CodeOf(err) == apperrors.ErrCodeValidationFailed
}

// timestamp formats the injected clock for session envelopes.
func (s *ChatService) timestamp() string {
	clock := s.deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Format(time.RFC3339Nano)
}
