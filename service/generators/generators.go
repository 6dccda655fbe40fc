package generators

import (
	"context"
	"math/rand"
	"time"

	"gastroguide/model"
)

// MenuCatalog lists the items guests can order, sorted by category then name.
type MenuCatalog interface {
	ListAvailable(ctx context.Context) ([]model.MenuItem, error)
}

// BookingLookup finds a booking by id. An absent booking is (nil, nil);
// a non-nil error always means the store itself failed.
type BookingLookup interface {
	Find(ctx context.Context, id string) (*model.Booking, error)
}

// Deps are the collaborators and sources of nondeterminism a generator may use.
type Deps struct {
	Menu       MenuCatalog
	Bookings   BookingLookup
	Restaurant model.RestaurantInfo

	// Clock returns the wall-clock time of the turn.
	Clock func() time.Time
	// Pick returns a uniformly random index in [0, n).
	Pick func(n int) int
}

// NewDeps fills the clock, picker and restaurant info with production defaults.
func NewDeps(menu MenuCatalog, bookings BookingLookup) *Deps {
	return &Deps{
		Menu:       menu,
		Bookings:   bookings,
		Restaurant: model.DefaultRestaurantInfo(),
		Clock:      time.Now,
		Pick:       rand.Intn,
	}
}

func (d *Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

func (d *Deps) pick(n int) int {
	if n <= 1 {
		return 0
	}
	if d.Pick == nil {
		return rand.Intn(n)
	}
	i := d.Pick(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

// Generator produces the reply for one classified intent. Generators read
// the conversation context and never mutate it.
type Generator func(ctx context.Context, deps *Deps, convo *model.ConversationContext, utterance string) (*model.AgentResponse, error)
