package generators

import (
	"context"
	"fmt"
	"strings"

	"gastroguide/model"
)

func HoursInquiry(_ context.Context, deps *Deps, _ *model.ConversationContext, _ string) (*model.AgentResponse, error) {
	r := deps.Restaurant

	var b strings.Builder
	b.WriteString("I'm so glad you asked! We're open and ready to serve you:\n\n")
	b.WriteString("**🕐 Our Hours:**\n")
	fmt.Fprintf(&b, "• Monday - Thursday: %s\n", r.Hours.MondayThursday)
	fmt.Fprintf(&b, "• Friday - Saturday: %s *(Perfect for weekend celebrations!)*\n", r.Hours.FridaySaturday)
	fmt.Fprintf(&b, "• Sunday: %s *(Lovely for family brunch)*\n\n", r.Hours.Sunday)
	fmt.Fprintf(&b, "📍 **Location:** %s\n", r.Location)
	fmt.Fprintf(&b, "📞 **Phone:** %s\n\n", r.Phone)
	fmt.Fprintf(&b, "We're especially lively during our happy hour (%s) where our bar menu shines!\n\n", r.HappyHour)
	b.WriteString("Would you like to make a reservation, or can I help you with anything else?")

	return &model.AgentResponse{
		Intent:  model.IntentHours,
		Action:  model.ActionHoursInquiry,
		Message: b.String(),
	}, nil
}

// Complaint never acts on its own; data.escalate asks the caller to route
// the conversation to a manager.
func Complaint(_ context.Context, _ *Deps, _ *model.ConversationContext, _ string) (*model.AgentResponse, error) {
	var b strings.Builder
	b.WriteString("I'm truly sorry to hear you're experiencing an issue. Your satisfaction means everything to us, and I want to make this right immediately.\n\n")
	b.WriteString("Please know that I'm taking your concern very seriously. Could you share a bit more detail about what happened? ")
	b.WriteString("This will help me find the best solution for you.\n\n")
	b.WriteString("**What I can do right now:**\n")
	b.WriteString("• Connect you with our manager for immediate assistance\n")
	b.WriteString("• Arrange for a fresh preparation of your dish\n")
	b.WriteString("• Apply a courtesy adjustment to your bill\n")
	b.WriteString("• Ensure this is documented so it never happens again\n\n")
	b.WriteString("Your feedback helps us improve, and I genuinely appreciate you bringing this to our attention. ")
	b.WriteString("How can I make this better for you right now?")

	return &model.AgentResponse{
		Intent:  model.IntentComplaint,
		Action:  model.ActionComplaint,
		Message: b.String(),
		Data:    map[string]interface{}{"escalate": true},
	}, nil
}

// GratitudePhrases are chosen uniformly at random through Deps.Pick.
var GratitudePhrases = []string{
	"My absolute pleasure! It's been wonderful assisting you.",
	"You're so welcome! I'm delighted I could help.",
	"The pleasure is all mine! That's what I'm here for.",
}

func Gratitude(_ context.Context, deps *Deps, convo *model.ConversationContext, _ string) (*model.AgentResponse, error) {
	var b strings.Builder
	b.WriteString(GratitudePhrases[deps.pick(len(GratitudePhrases))])
	b.WriteString("\n\n")
	if convo.GuestName != "" {
		b.WriteString(convo.GuestName + ", ")
	}
	b.WriteString("is there anything else I can help you with today? ")
	fmt.Fprintf(&b, "I'm always here to make your %s experience exceptional! 😊", deps.Restaurant.Name)

	return &model.AgentResponse{
		Intent:  model.IntentGratitude,
		Action:  model.ActionGratitude,
		Message: b.String(),
	}, nil
}

func General(_ context.Context, _ *Deps, _ *model.ConversationContext, _ string) (*model.AgentResponse, error) {
	var b strings.Builder
	b.WriteString("I want to make sure I give you exactly the information you need!\n\n")
	b.WriteString("I'm your personal dining assistant, and I can help you with:\n\n")
	b.WriteString("**🍽️ Menu & Recommendations**\n")
	b.WriteString("Ask me: *'What do you recommend?'* or *'Tell me about your specials'*\n\n")
	b.WriteString("**📅 Reservations**\n")
	b.WriteString("Say: *'I'd like to book a table'* or *'Check my booking BK123456'*\n\n")
	b.WriteString("**🎉 Special Occasions**\n")
	b.WriteString("Let me know: *'It's our anniversary'* and I'll make it magical\n\n")
	b.WriteString("**ℹ️ Restaurant Information**\n")
	b.WriteString("Ask: *'What are your hours?'* or *'Where are you located?'*\n\n")
	b.WriteString("What can I help you with today?")

	return &model.AgentResponse{
		Intent:  model.IntentGeneral,
		Action:  model.ActionGeneral,
		Message: b.String(),
	}, nil
}
