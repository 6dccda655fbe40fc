package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/service/generators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	items []model.MenuItem
	err   error
}

func (s *stubCatalog) ListAvailable(context.Context) ([]model.MenuItem, error) {
	return s.items, s.err
}

type stubBookings struct {
	bookings map[string]*model.Booking
	err      error
}

func (s *stubBookings) Find(_ context.Context, id string) (*model.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bookings[id], nil
}

func newTestEngine(t *testing.T, hour int) (*DialogueEngine, *stubBookings) {
	t.Helper()
	bookings := &stubBookings{bookings: map[string]*model.Booking{
		"BK001": {ID: "BK001", Customer: "Ajeet Gupta", Date: "2025-12-18", Time: "19:00", Guests: 4, TablePref: "Window-5", Status: model.BookingConfirmed},
	}}
	deps := generators.NewDeps(&stubCatalog{}, bookings)
	deps.Clock = func() time.Time { return time.Date(2025, 12, 18, hour, 0, 0, 0, time.Local) }
	deps.Pick = func(int) int { return 1 }

	engine := NewDialogueEngine(model.NewConversationContext(), EngineConfig{
		Deps:   deps,
		Logger: logger.NewTestLogger(t),
	})
	return engine, bookings
}

func TestProcessTurn_EndToEndAnniversary(t *testing.T) {
	engine, _ := newTestEngine(t, 19)
	ctx := context.Background()

	resp, err := engine.ProcessTurn(ctx, "Hi, I'm Alex, it's our anniversary")
	require.NoError(t, err)
	assert.Equal(t, model.IntentGreeting, resp.Intent)
	assert.Contains(t, resp.Message, "Good evening! Alex! Happy Anniversary!")
	assert.Equal(t, "Alex", engine.Context().GuestName)
	assert.Equal(t, model.CelebrationAnniversary, engine.Context().Celebration)

	resp, err = engine.ProcessTurn(ctx, "can I book a table")
	require.NoError(t, err)
	assert.Equal(t, model.IntentBooking, resp.Intent)
	assert.Contains(t, resp.Message, "anniversary")
	assert.Contains(t, resp.Message, "champagne")
	assert.Contains(t, resp.Message, "quieter corner table")

	assert.Len(t, engine.Context().History, 2)
}

func TestProcessTurn_HistoryLengthMatchesCalls(t *testing.T) {
	engine, bookings := newTestEngine(t, 10)
	ctx := context.Background()

	_, err := engine.ProcessTurn(ctx, "hello")
	require.NoError(t, err)
	_, err = engine.ProcessTurn(ctx, "")
	require.NoError(t, err)

	bookings.err = errors.New("timeout")
	_, err = engine.ProcessTurn(ctx, "find booking BK001")
	require.Error(t, err)

	require.Len(t, engine.Context().History, 3)
	assert.Equal(t, "find booking BK001", engine.Context().History[2].Utterance)
	assert.Equal(t, 10, engine.Context().History[0].Timestamp.Hour())
}

func TestProcessTurn_NameIsNeverCleared(t *testing.T) {
	engine, _ := newTestEngine(t, 10)
	ctx := context.Background()

	_, err := engine.ProcessTurn(ctx, "my name is Sam")
	require.NoError(t, err)
	_, err = engine.ProcessTurn(ctx, "what are your hours")
	require.NoError(t, err)

	assert.Equal(t, "Sam", engine.Context().GuestName)
}

func TestProcessTurn_DietaryIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t, 10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := engine.ProcessTurn(ctx, "I'm vegan, no nuts please")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"vegan", "nut allergy"}, engine.Context().DietaryRestrictions)
}

func TestProcessTurn_BookingLookup(t *testing.T) {
	engine, bookings := newTestEngine(t, 10)
	ctx := context.Background()

	resp, err := engine.ProcessTurn(ctx, "Can you find my booking with ID BK001?")
	require.NoError(t, err)
	assert.Equal(t, model.ActionBookingFound, resp.Action)
	assert.Equal(t, bookings.bookings["BK001"], resp.Data)

	resp, err = engine.ProcessTurn(ctx, "booking bk777")
	require.NoError(t, err)
	assert.Equal(t, model.ActionBookingNotFound, resp.Action)
	assert.Nil(t, resp.Data)
}

func TestProcessTurn_CollaboratorErrorIsDistinguishable(t *testing.T) {
	engine, bookings := newTestEngine(t, 10)
	bookings.err = errors.New("connection refused")

	resp, err := engine.ProcessTurn(context.Background(), "booking BK001")

	assert.Nil(t, resp)
	assert.True(t, apperrors.IsCollaboratorError(err))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestProcessTurn_GratitudeUsesPicker(t *testing.T) {
	engine, _ := newTestEngine(t, 10)

	resp, err := engine.ProcessTurn(context.Background(), "thanks so much")
	require.NoError(t, err)

	assert.Equal(t, model.IntentGratitude, resp.Intent)
	assert.Contains(t, resp.Message, generators.GratitudePhrases[1])
}

func TestProcessTurn_CustomGenerator(t *testing.T) {
	registry := DefaultGenerators()
	registry[model.IntentHours] = func(context.Context, *generators.Deps, *model.ConversationContext, string) (*model.AgentResponse, error) {
		return &model.AgentResponse{Intent: model.IntentHours, Message: "always open"}, nil
	}
	engine := NewDialogueEngine(nil, EngineConfig{Generators: registry, Logger: logger.NewNoOpLogger()})

	resp, err := engine.ProcessTurn(context.Background(), "when do you open")
	require.NoError(t, err)
	assert.Equal(t, "always open", resp.Message)

	// The engine keeps its own copy of the registry.
	delete(registry, model.IntentHours)
	resp, err = engine.ProcessTurn(context.Background(), "when do you open")
	require.NoError(t, err)
	assert.Equal(t, "always open", resp.Message)
}

func TestProcessTurn_MissingGeneratorFallsBackToGeneral(t *testing.T) {
	registry := GeneratorRegistry{model.IntentGeneral: generators.General}
	engine := NewDialogueEngine(nil, EngineConfig{Generators: registry, Logger: logger.NewNoOpLogger()})

	resp, err := engine.ProcessTurn(context.Background(), "what's on the menu")
	require.NoError(t, err)
	assert.Equal(t, model.IntentGeneral, resp.Intent)
}

func TestProcessTurn_EmptyRegistry(t *testing.T) {
	engine := NewDialogueEngine(nil, EngineConfig{Generators: GeneratorRegistry{}, Logger: logger.NewNoOpLogger()})

	_, err := engine.ProcessTurn(context.Background(), "hello")
	assert.Equal(t, apperrors.ErrCodeGeneratorMissing, apperrors.CodeOf(err))
}

func TestEnginesDoNotShareContext(t *testing.T) {
	a, _ := newTestEngine(t, 10)
	b, _ := newTestEngine(t, 10)

	_, err := a.ProcessTurn(context.Background(), "my name is Sam")
	require.NoError(t, err)

	assert.Equal(t, "Sam", a.Context().GuestName)
	assert.Empty(t, b.Context().GuestName)
	assert.Empty(t, b.Context().History)
}
