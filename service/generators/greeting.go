package generators

import (
	"context"
	"fmt"
	"strings"

	"gastroguide/model"
)

var celebrationMessages = map[model.Celebration]string{
	model.CelebrationAnniversary: "Happy Anniversary! 💕 What a joy to celebrate this special milestone with you. We're honored you've chosen us for such a meaningful occasion.",
	model.CelebrationBirthday:    "Happy Birthday! 🎂 This is wonderful! Let's make your birthday dining experience absolutely memorable.",
	model.CelebrationGraduation:  "Congratulations on your graduation! 🎓 What an amazing achievement! We'd be thrilled to help you celebrate this exciting chapter.",
	model.CelebrationEngagement:  "Congratulations on your engagement! 💍 How exciting! We're honored to be part of your celebration.",
	model.CelebrationGeneric:     "I see you're celebrating something special! 🎉 We love being part of life's beautiful moments.",
}

// CelebrationMessage falls back to the generic entry for unknown keys.
func CelebrationMessage(c model.Celebration) string {
	if msg, ok := celebrationMessages[c]; ok {
		return msg
	}
	return celebrationMessages[model.CelebrationGeneric]
}

// TimeOfDayGreeting splits the day at 12:00 and 17:00.
func TimeOfDayGreeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning!"
	case hour < 17:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

func Greeting(_ context.Context, deps *Deps, convo *model.ConversationContext, _ string) (*model.AgentResponse, error) {
	var b strings.Builder

	b.WriteString(TimeOfDayGreeting(deps.now().Hour()))
	b.WriteString(" ")
	if convo.GuestName != "" {
		b.WriteString(convo.GuestName + "! ")
	}

	if convo.Celebration != "" {
		b.WriteString(CelebrationMessage(convo.Celebration))
	} else {
		fmt.Fprintf(&b, "Welcome to %s! I'm %s, your personal dining assistant, and I'm delighted to help you today.",
			deps.Restaurant.Name, deps.Restaurant.Assistant)
	}
	b.WriteString("\n\n")

	b.WriteString("I can assist you with:\n")
	b.WriteString("✨ **Personalized menu recommendations** - Our chef's specials are extraordinary today!\n")
	b.WriteString("🍷 **Wine pairings** - Perfect complements to elevate your meal\n")
	b.WriteString("📅 **Reservations** - Securing your ideal table\n")
	b.WriteString("🎉 **Special occasions** - Making your celebration unforgettable\n\n")
	b.WriteString("What brings you to us today?")

	return &model.AgentResponse{
		Intent:  model.IntentGreeting,
		Action:  model.ActionGreeting,
		Message: b.String(),
		Data:    convo.Snapshot(),
	}, nil
}
