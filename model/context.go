package model

import (
	"sort"
	"time"
)

// Turn is one entry of the conversation log.
type Turn struct {
	Utterance string    `json:"utterance"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the accumulated state of one conversation.
// It is not safe for concurrent use; each DialogueEngine owns exactly one.
type ConversationContext struct {
	GuestName           string                 `json:"guest_name,omitempty"`
	DietaryRestrictions []string               `json:"dietary_restrictions"`
	Celebration         Celebration            `json:"celebration,omitempty"`
	History             []Turn                 `json:"conversation_history"`
	CurrentOrder        map[string]interface{} `json:"current_order"`
	Preferences         map[string]interface{} `json:"preferences"`
}

func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		DietaryRestrictions: []string{},
		History:             []Turn{},
		CurrentOrder:        map[string]interface{}{},
		Preferences:         map[string]interface{}{},
	}
}

// ApplyExtraction folds the entities of one utterance into the context.
// A name or celebration only overwrites when one was found.
func (c *ConversationContext) ApplyExtraction(ex Extraction) {
	if ex.Name != "" {
		c.GuestName = ex.Name
	}
	if ex.Celebration != "" {
		c.Celebration = ex.Celebration
	}
	for _, r := range ex.Restrictions {
		c.AddDietaryRestriction(r)
	}
}

// AddDietaryRestriction appends label unless it is already present.
func (c *ConversationContext) AddDietaryRestriction(label string) bool {
	if label == "" || c.HasDietaryRestriction(label) {
		return false
	}
	c.DietaryRestrictions = append(c.DietaryRestrictions, label)
	return true
}

func (c *ConversationContext) HasDietaryRestriction(label string) bool {
	for _, r := range c.DietaryRestrictions {
		if r == label {
			return true
		}
	}
	return false
}

func (c *ConversationContext) AppendTurn(utterance string, at time.Time) {
	c.History = append(c.History, Turn{Utterance: utterance, Timestamp: at})
}

// Snapshot returns a copy that later turns cannot mutate.
func (c *ConversationContext) Snapshot() *ConversationContext {
	out := &ConversationContext{
		GuestName:           c.GuestName,
		Celebration:         c.Celebration,
		DietaryRestrictions: append([]string{}, c.DietaryRestrictions...),
		History:             append([]Turn{}, c.History...),
		CurrentOrder:        copyMap(c.CurrentOrder),
		Preferences:         copyMap(c.Preferences),
	}
	return out
}

// Merge combines a stored context with a newer local copy of the same
// conversation. Turns from both sides are kept in timestamp order,
// restrictions are unioned and scalar facts prefer the newer copy.
func Merge(current, newer *ConversationContext) *ConversationContext {
	if current == nil {
		return newer.Snapshot()
	}
	if newer == nil {
		return current.Snapshot()
	}

	merged := current.Snapshot()
	if newer.GuestName != "" {
		merged.GuestName = newer.GuestName
	}
	if newer.Celebration != "" {
		merged.Celebration = newer.Celebration
	}
	for _, r := range newer.DietaryRestrictions {
		merged.AddDietaryRestriction(r)
	}
	for k, v := range newer.CurrentOrder {
		merged.CurrentOrder[k] = v
	}
	for k, v := range newer.Preferences {
		merged.Preferences[k] = v
	}
	merged.History = mergeTurns(current.History, newer.History)
	return merged
}

// mergeTurns dedupes by utterance and timestamp, then sorts chronologically.
func mergeTurns(a, b []Turn) []Turn {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]Turn, 0, len(a)+len(b))
	for _, t := range append(append([]Turn{}, a...), b...) {
		key := t.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + t.Utterance
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
