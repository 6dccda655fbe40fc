package generators

import (
	"context"
	"errors"
	"testing"
	"time"

	"gastroguide/internal/apperrors"
	"gastroguide/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fakes
// ==========================

type fakeCatalog struct {
	items []model.MenuItem
	err   error
}

func (f *fakeCatalog) ListAvailable(context.Context) ([]model.MenuItem, error) {
	return f.items, f.err
}

type fakeBookings struct {
	FindFunc func(ctx context.Context, id string) (*model.Booking, error)
}

func (f *fakeBookings) Find(ctx context.Context, id string) (*model.Booking, error) {
	return f.FindFunc(ctx, id)
}

func testDeps(hour int) *Deps {
	deps := NewDeps(&fakeCatalog{items: sampleMenu()}, nil)
	deps.Clock = func() time.Time { return time.Date(2025, 12, 18, hour, 30, 0, 0, time.Local) }
	deps.Pick = func(int) int { return 0 }
	return deps
}

func sampleMenu() []model.MenuItem {
	return []model.MenuItem{
		{Name: "Bruschetta Trio", Category: "Appetizers", Description: "Classic tomato", Price: 10.99},
		{Name: "Crispy Calamari", Category: "Appetizers", Description: "Fried squid", Price: 14.99},
		{Name: "Mediterranean Mezze Platter", Category: "Appetizers", Description: "Hummus", Price: 12.99},
		{Name: "Grilled Sea Bass", Category: "Main Course", Description: "Sea bass", Price: 32.99},
		{Name: "Lamb Tagine", Category: "Main Course", Description: "Slow-cooked lamb", Price: 26.99},
		{Name: "Seafood Paella", Category: "Main Course", Description: "Rice", Price: 28.99},
	}
}

// ==========================
// Greeting
// ==========================

func TestTimeOfDayGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Good morning!"},
		{11, "Good morning!"},
		{12, "Good afternoon!"},
		{16, "Good afternoon!"},
		{17, "Good evening!"},
		{23, "Good evening!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeOfDayGreeting(tt.hour), "hour %d", tt.hour)
	}
}

func TestGreeting_UsesInjectedClock(t *testing.T) {
	convo := model.NewConversationContext()

	resp, err := Greeting(context.Background(), testDeps(9), convo, "hello")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Good morning")

	resp, err = Greeting(context.Background(), testDeps(14), convo, "hello")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Good afternoon")

	resp, err = Greeting(context.Background(), testDeps(19), convo, "hello")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "Good evening")
}

func TestGreeting_WelcomeAndName(t *testing.T) {
	convo := model.NewConversationContext()
	convo.GuestName = "Sam"

	resp, err := Greeting(context.Background(), testDeps(10), convo, "hi")
	require.NoError(t, err)

	assert.Equal(t, model.IntentGreeting, resp.Intent)
	assert.Contains(t, resp.Message, "Good morning! Sam! Welcome to Mediterranean Delight!")
	assert.Contains(t, resp.Message, "What brings you to us today?")
	assert.False(t, resp.NeedsConfirmation)

	snap, ok := resp.Data.(*model.ConversationContext)
	require.True(t, ok)
	assert.Equal(t, "Sam", snap.GuestName)
}

func TestGreeting_CelebrationReplacesWelcome(t *testing.T) {
	convo := model.NewConversationContext()
	convo.Celebration = model.CelebrationBirthday

	resp, err := Greeting(context.Background(), testDeps(20), convo, "hi")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Happy Birthday!")
	assert.NotContains(t, resp.Message, "Welcome to")
}

func TestCelebrationMessage_UnknownFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, CelebrationMessage(model.CelebrationGeneric), CelebrationMessage("retirement"))
	assert.Contains(t, CelebrationMessage(model.CelebrationAnniversary), "Happy Anniversary!")
}

// ==========================
// Menu
// ==========================

func TestSuggestPairing(t *testing.T) {
	assert.Equal(t, "crisp Albariño wine and saffron aioli", SuggestPairing("Seafood Paella"))
	assert.Equal(t, "robust Malbec and truffle mashed potatoes", SuggestPairing("Lamb Tagine"))
	assert.Equal(t, "Chardonnay and roasted Mediterranean vegetables", SuggestPairing("Grilled Sea Bass"))
	assert.Equal(t, "our sommelier's wine selection", SuggestPairing("Mushroom Risotto"))
}

func TestMenuInquiry_FirstTwoPerCategory(t *testing.T) {
	convo := model.NewConversationContext()
	convo.AddDietaryRestriction("vegan")
	convo.AddDietaryRestriction("halal")

	resp, err := MenuInquiry(context.Background(), testDeps(12), convo, "menu")
	require.NoError(t, err)

	assert.Equal(t, model.IntentMenu, resp.Intent)
	assert.Contains(t, resp.Message, "looking for vegan, halal options")
	assert.Contains(t, resp.Message, "**Appetizers:**")
	assert.Contains(t, resp.Message, "• **Bruschetta Trio** ($10.99) - Classic tomato")
	assert.Contains(t, resp.Message, "• **Crispy Calamari** ($14.99)")
	assert.NotContains(t, resp.Message, "Mediterranean Mezze Platter")
	assert.Contains(t, resp.Message, "*Perfect with our robust Malbec and truffle mashed potatoes*")
	assert.NotContains(t, resp.Message, "**Seafood Paella** ($28.99)")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["menu_items"], 6)
}

func TestMenuInquiry_CatalogFailure(t *testing.T) {
	deps := testDeps(12)
	deps.Menu = &fakeCatalog{err: errors.New("db down")}

	resp, err := MenuInquiry(context.Background(), deps, model.NewConversationContext(), "menu")

	assert.Nil(t, resp)
	assert.Equal(t, apperrors.ErrCodeMenuCatalogUnavailable, apperrors.CodeOf(err))
}

// ==========================
// Booking
// ==========================

func TestExtractBookingID(t *testing.T) {
	assert.Equal(t, "BK001", ExtractBookingID("check my booking bk001 please"))
	assert.Equal(t, "BK123456", ExtractBookingID("Booking BK123456"))
	assert.Equal(t, "", ExtractBookingID("book a table"))
}

func TestBookingInquiry_IntakeWithCelebration(t *testing.T) {
	convo := model.NewConversationContext()
	convo.GuestName = "Alex"
	convo.Celebration = model.CelebrationAnniversary

	resp, err := BookingInquiry(context.Background(), testDeps(18), convo, "can I book a table")
	require.NoError(t, err)

	assert.Equal(t, model.ActionBookingInquiry, resp.Action)
	assert.Contains(t, resp.Message, "Certainly, Alex, I'd be delighted")
	assert.Contains(t, resp.Message, "I've noted this is for your anniversary")
	assert.Contains(t, resp.Message, "champagne toast")
	assert.Contains(t, resp.Message, "quieter corner table")
}

func TestBookingInquiry_Found(t *testing.T) {
	stored := &model.Booking{
		ID: "BK001", Customer: "Ajeet Gupta", Date: "2025-12-18", Time: "19:00",
		Guests: 4, TablePref: "Window-5", Status: model.BookingConfirmed,
	}
	deps := testDeps(18)
	deps.Bookings = &fakeBookings{FindFunc: func(_ context.Context, id string) (*model.Booking, error) {
		assert.Equal(t, "BK001", id)
		return stored, nil
	}}

	resp, err := BookingInquiry(context.Background(), deps, model.NewConversationContext(), "find booking bk001")
	require.NoError(t, err)

	assert.Equal(t, model.ActionBookingFound, resp.Action)
	assert.Equal(t, stored, resp.Data)
	assert.Contains(t, resp.Message, "**Booking #BK001**")
	assert.Contains(t, resp.Message, "**Status:** Confirmed")
	assert.Contains(t, resp.Message, "24 hours before your reservation")
}

func TestBookingInquiry_FoundCancelledWithoutTable(t *testing.T) {
	deps := testDeps(18)
	deps.Bookings = &fakeBookings{FindFunc: func(context.Context, string) (*model.Booking, error) {
		return &model.Booking{ID: "BK002", Status: model.BookingCancelled, Guests: 2}, nil
	}}

	resp, err := BookingInquiry(context.Background(), deps, model.NewConversationContext(), "booking BK002")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "**Table:** Any available")
	assert.Contains(t, resp.Message, "has been cancelled")
	assert.Contains(t, resp.Message, "make a new reservation")
}

func TestBookingInquiry_NotFound(t *testing.T) {
	deps := testDeps(18)
	deps.Bookings = &fakeBookings{FindFunc: func(context.Context, string) (*model.Booking, error) {
		return nil, nil
	}}

	resp, err := BookingInquiry(context.Background(), deps, model.NewConversationContext(), "booking BK999")
	require.NoError(t, err)

	assert.Equal(t, model.ActionBookingNotFound, resp.Action)
	assert.Nil(t, resp.Data)
	assert.Contains(t, resp.Message, "not finding booking BK999")
	assert.Contains(t, resp.Message, "Double-check the booking ID")
	assert.Contains(t, resp.Message, "your name and date")
	assert.Contains(t, resp.Message, "+1 (555) 123-4567")
}

func TestBookingInquiry_StoreErrorIsNotNotFound(t *testing.T) {
	deps := testDeps(18)
	deps.Bookings = &fakeBookings{FindFunc: func(context.Context, string) (*model.Booking, error) {
		return nil, errors.New("connection reset")
	}}

	resp, err := BookingInquiry(context.Background(), deps, model.NewConversationContext(), "booking BK001")

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, apperrors.IsCollaboratorError(err))
	assert.Equal(t, apperrors.ErrCodeBookingStoreUnavailable, apperrors.CodeOf(err))
}

// ==========================
// Fixed replies
// ==========================

func TestHoursInquiry(t *testing.T) {
	resp, err := HoursInquiry(context.Background(), testDeps(10), model.NewConversationContext(), "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Monday - Thursday: 11:00 AM - 10:00 PM")
	assert.Contains(t, resp.Message, "Friday - Saturday: 11:00 AM - 11:00 PM")
	assert.Contains(t, resp.Message, "Sunday: 12:00 PM - 9:00 PM")
	assert.Contains(t, resp.Message, "123 Restaurant Street, Food City")
	assert.Contains(t, resp.Message, "happy hour (4-6 PM, weekdays)")
	assert.Nil(t, resp.Data)
}

func TestComplaint_Escalates(t *testing.T) {
	resp, err := Complaint(context.Background(), testDeps(10), model.NewConversationContext(), "")
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"escalate": true}, resp.Data)
	assert.Contains(t, resp.Message, "Connect you with our manager")
	assert.Contains(t, resp.Message, "courtesy adjustment")
}

func TestGratitude_PhraseAndClosing(t *testing.T) {
	deps := testDeps(10)
	convo := model.NewConversationContext()
	convo.GuestName = "Maria"

	for i, phrase := range GratitudePhrases {
		idx := i
		deps.Pick = func(n int) int {
			assert.Equal(t, len(GratitudePhrases), n)
			return idx
		}
		resp, err := Gratitude(context.Background(), deps, convo, "thanks")
		require.NoError(t, err)
		assert.Contains(t, resp.Message, phrase)
		assert.Contains(t, resp.Message, "Maria, is there anything else")
		assert.Contains(t, resp.Message, "make your Mediterranean Delight experience exceptional")
	}
}

func TestGratitude_OutOfRangePickIsClamped(t *testing.T) {
	deps := testDeps(10)
	deps.Pick = func(int) int { return 99 }

	resp, err := Gratitude(context.Background(), deps, model.NewConversationContext(), "thanks")
	require.NoError(t, err)
	assert.Contains(t, resp.Message, GratitudePhrases[0])
}

func TestGeneral(t *testing.T) {
	resp, err := General(context.Background(), testDeps(10), model.NewConversationContext(), "catering?")
	require.NoError(t, err)

	assert.Equal(t, model.IntentGeneral, resp.Intent)
	assert.Contains(t, resp.Message, "Check my booking BK123456")
}
