package service

import (
	"context"
	"time"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/internal/metrics"
	"gastroguide/model"
	"gastroguide/service/generators"
)

// EngineConfig wires a DialogueEngine. Zero fields get defaults.
type EngineConfig struct {
	Extractor  *EntityExtractor
	Classifier *IntentClassifier
	Generators GeneratorRegistry
	Deps       *generators.Deps
	Logger     logger.Logger
}

// DialogueEngine runs turns against the one conversation context it owns.
// It is not safe for concurrent use.
type DialogueEngine struct {
	convo      *model.ConversationContext
	extractor  *EntityExtractor
	classifier *IntentClassifier
	generators GeneratorRegistry
	deps       *generators.Deps
	logger     logger.Logger
}

func NewDialogueEngine(convo *model.ConversationContext, cfg EngineConfig) *DialogueEngine {
	if convo == nil {
		convo = model.NewConversationContext()
	}
	if cfg.Extractor == nil {
		cfg.Extractor = NewEntityExtractor()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = NewIntentClassifier(nil, cfg.Logger)
	}
	if cfg.Generators == nil {
		cfg.Generators = DefaultGenerators()
	}
	if cfg.Deps == nil {
		cfg.Deps = generators.NewDeps(nil, nil)
	}

	return &DialogueEngine{
		convo:      convo,
		extractor:  cfg.Extractor,
		classifier: cfg.Classifier,
		generators: cfg.Generators.clone(),
		deps:       cfg.Deps,
		logger:     logger.Component(cfg.Logger, "DialogueEngine"),
	}
}

// Context exposes the owned context so callers can persist it between turns.
func (e *DialogueEngine) Context() *model.ConversationContext {
	return e.convo
}

// ProcessTurn extracts entities into the context, records the turn,
// classifies the utterance and runs the matching generator.
//
// Extraction and classification cannot fail. A collaborator failure is
// returned as an *apperrors.StandardError and is never reported as a
// "not found" reply. The turn is recorded in the history either way.
func (e *DialogueEngine) ProcessTurn(ctx context.Context, utterance string) (*model.AgentResponse, error) {
	start := time.Now()

	extraction := e.extractor.Extract(utterance)
	e.convo.ApplyExtraction(extraction)
	e.convo.AppendTurn(utterance, e.now())

	intent := e.classifier.Classify(utterance)
	e.logger.Debug("turn classified", map[string]interface{}{
		"intent":       intent,
		"guest_name":   e.convo.GuestName,
		"celebration":  e.convo.Celebration,
		"restrictions": extraction.Restrictions,
	})

	gen, ok := e.generators.Resolve(intent)
	if !ok {
		return nil, apperrors.NewGeneratorMissingError(string(intent))
	}

	resp, err := gen(ctx, e.deps, e.convo, utterance)
	if err != nil {
		if collaborator := collaboratorOf(err); collaborator != "" {
			metrics.CollaboratorErrors.WithLabelValues(collaborator).Inc()
		}
		e.logger.WithError(err).Warn("response generation failed", map[string]interface{}{
			"intent":    intent,
			"retryable": apperrors.IsRetryable(err),
		})
		return nil, err
	}

	metrics.TurnsTotal.WithLabelValues(string(intent)).Inc()
	metrics.TurnDuration.WithLabelValues(string(intent)).Observe(time.Since(start).Seconds())
	return resp, nil
}

func (e *DialogueEngine) now() time.Time {
	if e.deps.Clock != nil {
		return e.deps.Clock()
	}
	return time.Now()
}

func collaboratorOf(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeBookingStoreUnavailable:
		return "booking_store"
	case apperrors.ErrCodeMenuCatalogUnavailable:
		return "menu_catalog"
	}
	return ""
}
