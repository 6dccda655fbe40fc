package service

import (
	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/utils"
)

// DefaultIntentKeywords are the built-in trigger substrings per intent.
// general has no keywords; it is the fallback.
func DefaultIntentKeywords() map[model.Intent][]string {
	return map[model.Intent][]string{
		model.IntentGreeting:  {"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "greetings"},
		model.IntentMenu:      {"menu", "food", "dish", "recommend"},
		model.IntentBooking:   {"booking", "reservation", "table"},
		model.IntentHours:     {"hour", "open", "close"},
		model.IntentComplaint: {"problem", "issue", "complaint", "wrong", "late", "cold", "bad"},
		model.IntentGratitude: {"thank", "thanks", "appreciate"},
	}
}

type intentRule struct {
	intent   model.Intent
	keywords []string
}

// IntentClassifier evaluates keyword rules in model.IntentPriority order.
type IntentClassifier struct {
	rules []intentRule
}

// NewIntentClassifier builds the rule list from the defaults, applying the
// optional definitions on top: a disabled definition drops its rule and a
// non-empty keyword list replaces the default one. Definitions cannot change
// the evaluation order.
func NewIntentClassifier(defs []model.IntentDefinition, log logger.Logger) *IntentClassifier {
	log = logger.Component(log, "IntentClassifier")

	keywords := DefaultIntentKeywords()
	disabled := make(map[model.Intent]bool)
	for _, d := range defs {
		if d.ID == model.IntentGeneral {
			continue
		}
		if _, known := keywords[d.ID]; !known {
			log.Warn("ignoring unknown intent definition", map[string]interface{}{"intent": d.ID})
			continue
		}
		if !d.IsEnabled() {
			disabled[d.ID] = true
			continue
		}
		if len(d.Keywords) > 0 {
			normalized := make([]string, 0, len(d.Keywords))
			for _, k := range d.Keywords {
				if k = utils.NormalizeString(k); k != "" {
					normalized = append(normalized, k)
				}
			}
			keywords[d.ID] = normalized
		}
	}

	rules := make([]intentRule, 0, len(model.IntentPriority))
	for _, intent := range model.IntentPriority {
		if intent == model.IntentGeneral || disabled[intent] {
			continue
		}
		rules = append(rules, intentRule{intent: intent, keywords: keywords[intent]})
	}
	return &IntentClassifier{rules: rules}
}

// Classify always returns exactly one intent, defaulting to general.
func (c *IntentClassifier) Classify(text string) model.Intent {
	lower := utils.NormalizeString(text)
	for _, r := range c.rules {
		if utils.ContainsAny(lower, r.keywords) {
			return r.intent
		}
	}
	return model.IntentGeneral
}

// Intents lists the active rules in evaluation order.
func (c *IntentClassifier) Intents() []model.Intent {
	out := make([]model.Intent, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.intent)
	}
	return append(out, model.IntentGeneral)
}
