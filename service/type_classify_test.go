package service

import (
	"testing"

	"gastroguide/internal/logger"
	"gastroguide/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SingleCategory(t *testing.T) {
	c := NewIntentClassifier(nil, logger.NewNoOpLogger())

	tests := []struct {
		text string
		want model.Intent
	}{
		{"HELLO!!!", model.IntentGreeting},
		{"Good Evening.", model.IntentGreeting},
		{"What do you RECOMMEND?", model.IntentMenu},
		{"I need a reservation...", model.IntentBooking},
		{"When do you OPEN?", model.IntentHours},
		{"My soup is COLD!", model.IntentComplaint},
		{"Much appreciated :)", model.IntentGratitude},
		{"Do you offer catering services?", model.IntentGeneral},
		{"", model.IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	c := NewIntentClassifier(nil, logger.NewNoOpLogger())

	tests := []struct {
		text string
		want model.Intent
	}{
		{"good morning, my food was cold", model.IntentGreeting},
		{"the menu is wrong", model.IntentMenu},
		{"is the table open late", model.IntentBooking},
		{"what hours, thanks", model.IntentHours},
		{"bad service, thank you", model.IntentComplaint},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassify_DefinitionsOverrideKeywordsNotOrder(t *testing.T) {
	defs := []model.IntentDefinition{
		{ID: model.IntentGratitude, Enabled: enabled(true), Keywords: []string{"Cheers"}},
		{ID: model.IntentComplaint, Enabled: enabled(false)},
		{ID: "unknown", Keywords: []string{"x"}},
	}
	c := NewIntentClassifier(defs, logger.NewNoOpLogger())

	assert.Equal(t, model.IntentGratitude, c.Classify("cheers mate"))
	assert.Equal(t, model.IntentGeneral, c.Classify("thank you"))
	assert.Equal(t, model.IntentGeneral, c.Classify("that was a problem"))
	assert.Equal(t, model.IntentGreeting, c.Classify("hello, cheers"))
	assert.Equal(t, []model.Intent{
		model.IntentGreeting, model.IntentMenu, model.IntentBooking,
		model.IntentHours, model.IntentGratitude, model.IntentGeneral,
	}, c.Intents())
}

func enabled(v bool) *bool { return &v }

func TestClassify_DefinitionWithoutEnabledFlagStaysActive(t *testing.T) {
	defs := []model.IntentDefinition{
		{ID: model.IntentGreeting, Keywords: []string{"hi", "hello", "howdy"}},
	}
	c := NewIntentClassifier(defs, logger.NewNoOpLogger())

	assert.Equal(t, model.IntentGreeting, c.Classify("hello"))
	assert.Equal(t, model.IntentGreeting, c.Classify("howdy"))
	assert.Equal(t, model.IntentGeneral, c.Classify("good evening"))
}
