package generators

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gastroguide/internal/apperrors"
	"gastroguide/model"
	"gastroguide/utils"
)

var bookingIDPattern = regexp.MustCompile(`BK\d+`)

// ExtractBookingID returns the first booking id in message, uppercased.
func ExtractBookingID(message string) string {
	return bookingIDPattern.FindString(strings.ToUpper(message))
}

func BookingInquiry(ctx context.Context, deps *Deps, convo *model.ConversationContext, utterance string) (*model.AgentResponse, error) {
	if id := ExtractBookingID(utterance); id != "" {
		return lookupBooking(ctx, deps, id)
	}

	var b strings.Builder
	b.WriteString("Certainly, ")
	if convo.GuestName != "" {
		b.WriteString(convo.GuestName + ", ")
	}
	b.WriteString("I'd be delighted to help you reserve a table!\n\n")

	if convo.Celebration != "" {
		fmt.Fprintf(&b, "I've noted this is for your %s - how special! ", convo.Celebration)
		b.WriteString("Would you like me to arrange something extra to make it memorable? ")
		b.WriteString("Perhaps a complimentary champagne toast or a quieter corner table for intimacy?\n\n")
	}

	b.WriteString("To secure the perfect table for you, I'll need just a few details:\n")
	b.WriteString("📅 What date works best for you?\n")
	b.WriteString("🕐 What time would you prefer?\n")
	b.WriteString("👥 How many guests will be joining you?\n\n")

	b.WriteString("Also, do you have any seating preferences? We have:\n")
	b.WriteString("• Cozy booths perfect for intimate conversations\n")
	b.WriteString("• Window tables with beautiful city views\n")
	b.WriteString("• Outdoor patio for a lovely Mediterranean ambiance\n\n")
	b.WriteString("You can provide these details here, or I can direct you to our quick booking form!")

	return &model.AgentResponse{
		Intent:  model.IntentBooking,
		Action:  model.ActionBookingInquiry,
		Message: b.String(),
		Data:    convo.Snapshot(),
	}, nil
}

// lookupBooking distinguishes a missing booking from a failing store.
func lookupBooking(ctx context.Context, deps *Deps, id string) (*model.AgentResponse, error) {
	if deps.Bookings == nil {
		return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeBookingStoreUnavailable, "booking store", errors.New("not configured"))
	}
	booking, err := deps.Bookings.Find(ctx, id)
	if err != nil {
		return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeBookingStoreUnavailable, "booking store", err)
	}
	if booking == nil {
		return bookingNotFound(deps, id), nil
	}
	return bookingFound(booking), nil
}

func bookingFound(booking *model.Booking) *model.AgentResponse {
	tablePref := booking.TablePref
	if tablePref == "" {
		tablePref = "Any available"
	}

	var b strings.Builder
	b.WriteString("Wonderful! I found your reservation!\n\n")
	fmt.Fprintf(&b, "**Booking #%s**\n\n", booking.ID)
	fmt.Fprintf(&b, "👤 **Guest:** %s\n", booking.Customer)
	fmt.Fprintf(&b, "📅 **Date:** %s\n", booking.Date)
	fmt.Fprintf(&b, "🕐 **Time:** %s\n", booking.Time)
	fmt.Fprintf(&b, "👥 **Party size:** %d guests\n", booking.Guests)
	fmt.Fprintf(&b, "🪑 **Table:** %s\n", tablePref)
	fmt.Fprintf(&b, "✨ **Status:** %s\n\n", utils.TitleCase(string(booking.Status)))

	if booking.Status == model.BookingConfirmed {
		b.WriteString("Everything looks perfect! We're looking forward to welcoming you. ")
		b.WriteString("Is there anything special you'd like us to prepare for your visit? ")
		b.WriteString("Any dietary preferences or special requests?\n\n")
		b.WriteString("*We send a reminder 24 hours before your reservation.*")
	} else {
		b.WriteString("I see this booking has been cancelled. ")
		b.WriteString("Would you like me to help you make a new reservation? ")
		b.WriteString("I'd be happy to find you the perfect table!")
	}

	return &model.AgentResponse{
		Intent:  model.IntentBooking,
		Action:  model.ActionBookingFound,
		Message: b.String(),
		Data:    booking,
	}
}

func bookingNotFound(deps *Deps, id string) *model.AgentResponse {
	var b strings.Builder
	fmt.Fprintf(&b, "Hmm, I'm not finding booking %s in our system at the moment.\n\n", id)
	b.WriteString("This could mean:\n")
	b.WriteString("• The booking ID might have a small typo\n")
	b.WriteString("• It may have been made under a different confirmation number\n\n")
	b.WriteString("No worries though! I'm here to help. You could:\n")
	b.WriteString("1️⃣ Double-check the booking ID from your confirmation email\n")
	b.WriteString("2️⃣ Let me know your name and date, and I can search that way\n")
	fmt.Fprintf(&b, "3️⃣ Call us at %s and our team will locate it immediately\n\n", deps.Restaurant.Phone)
	b.WriteString("What works best for you?")

	return &model.AgentResponse{
		Intent:  model.IntentBooking,
		Action:  model.ActionBookingNotFound,
		Message: b.String(),
	}
}
