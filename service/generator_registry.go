package service

import (
	"gastroguide/model"
	"gastroguide/service/generators"
)

// GeneratorRegistry maps each intent to the generator that answers it.
type GeneratorRegistry map[model.Intent]generators.Generator

// DefaultGenerators returns a fresh registry with one generator per intent.
// Callers may replace entries without affecting other engines.
func DefaultGenerators() GeneratorRegistry {
	return GeneratorRegistry{
		model.IntentGreeting:  generators.Greeting,
		model.IntentMenu:      generators.MenuInquiry,
		model.IntentBooking:   generators.BookingInquiry,
		model.IntentHours:     generators.HoursInquiry,
		model.IntentComplaint: generators.Complaint,
		model.IntentGratitude: generators.Gratitude,
		model.IntentGeneral:   generators.General,
	}
}

// Resolve returns the generator for intent, falling back to general.
func (r GeneratorRegistry) Resolve(intent model.Intent) (generators.Generator, bool) {
	if gen, ok := r[intent]; ok && gen != nil {
		return gen, true
	}
	gen, ok := r[model.IntentGeneral]
	return gen, ok && gen != nil
}

func (r GeneratorRegistry) clone() GeneratorRegistry {
	out := make(GeneratorRegistry, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
