package model

// Intent is the classification of a single guest utterance.
type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentMenu      Intent = "menu_inquiry"
	IntentBooking   Intent = "booking_inquiry"
	IntentHours     Intent = "hours_inquiry"
	IntentComplaint Intent = "complaint"
	IntentGratitude Intent = "gratitude"
	IntentGeneral   Intent = "general"

	// IntentError is never produced by classification. The embedding layer
	// uses it when a turn fails.
	IntentError Intent = "error"
)

// IntentPriority is the evaluation order of the classifier. First match wins.
var IntentPriority = []Intent{
	IntentGreeting,
	IntentMenu,
	IntentBooking,
	IntentHours,
	IntentComplaint,
	IntentGratitude,
	IntentGeneral,
}

// Action names reported alongside the intent. Booking lookups refine
// booking_inquiry into found / not found.
const (
	ActionGreeting        = "greeting"
	ActionMenuInquiry     = "menu_inquiry"
	ActionBookingInquiry  = "booking_inquiry"
	ActionBookingFound    = "booking_found"
	ActionBookingNotFound = "booking_not_found"
	ActionHoursInquiry    = "hours_inquiry"
	ActionComplaint       = "complaint_handling"
	ActionGratitude       = "gratitude_response"
	ActionGeneral         = "general_response"
	ActionError           = "error"
)

type Celebration string

const (
	CelebrationAnniversary Celebration = "anniversary"
	CelebrationBirthday    Celebration = "birthday"
	CelebrationGraduation  Celebration = "graduation"
	CelebrationEngagement  Celebration = "engagement"
	CelebrationGeneric     Celebration = "celebration"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// AgentResponse is the result of one dialogue turn.
type AgentResponse struct {
	Intent            Intent      `json:"intent"`
	Action            string      `json:"action"`
	Message           string      `json:"message"`
	Data              interface{} `json:"data"`
	NeedsConfirmation bool        `json:"needs_confirmation"`
}

const ErrorMessage = "Sorry, I encountered an error. Please try again."

// ErrorResponse is the neutral reply returned to guests when a turn fails.
func ErrorResponse() *AgentResponse {
	return &AgentResponse{
		Intent:  IntentError,
		Action:  ActionError,
		Message: ErrorMessage,
	}
}

// Extraction holds the entities found in one utterance.
type Extraction struct {
	Name         string      `json:"name,omitempty"`
	Celebration  Celebration `json:"celebration,omitempty"`
	Restrictions []string    `json:"restrictions,omitempty"`
}

type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

type Booking struct {
	ID        string        `json:"id"`
	Customer  string        `json:"customer"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Guests    int           `json:"guests"`
	TablePref string        `json:"table_pref"`
	Status    BookingStatus `json:"status"`
	CreatedAt string        `json:"created_at"`
}

// BookingRequest carries the caller supplied fields of a new reservation.
type BookingRequest struct {
	Customer  string `json:"customer"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
	TablePref string `json:"table_pref"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Response  *AgentResponse `json:"response"`
}

// ConversationSession is the persisted envelope around a conversation context.
type ConversationSession struct {
	ID        string               `json:"id"`
	Context   *ConversationContext `json:"context"`
	CreatedAt string               `json:"created_at"`
	UpdatedAt string               `json:"updated_at"`
}

// IntentConfig is the shape of config/intents.yaml.
type IntentConfig struct {
	Intents []IntentDefinition `yaml:"intents"`
}

// IntentDefinition overrides one built-in intent rule. An omitted enabled
// flag leaves the rule on.
type IntentDefinition struct {
	ID          Intent   `yaml:"id"`
	Description string   `yaml:"description"`
	Enabled     *bool    `yaml:"enabled"`
	Keywords    []string `yaml:"keywords"`
}

func (d IntentDefinition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

type Hours struct {
	MondayThursday string `json:"monday_thursday" mapstructure:"monday_thursday"`
	FridaySaturday string `json:"friday_saturday" mapstructure:"friday_saturday"`
	Sunday         string `json:"sunday" mapstructure:"sunday"`
}

// RestaurantInfo describes the venue the assistant speaks for.
type RestaurantInfo struct {
	Name        string `json:"name" mapstructure:"name"`
	Assistant   string `json:"assistant" mapstructure:"assistant"`
	Description string `json:"description" mapstructure:"description"`
	Hours       Hours  `json:"hours" mapstructure:"hours"`
	HappyHour   string `json:"happy_hour" mapstructure:"happy_hour"`
	Location    string `json:"location" mapstructure:"location"`
	Phone       string `json:"phone" mapstructure:"phone"`
	Email       string `json:"email" mapstructure:"email"`
}

func DefaultRestaurantInfo() RestaurantInfo {
	return RestaurantInfo{
		Name:        "Mediterranean Delight",
		Assistant:   "GastroGuide",
		Description: "Authentic Mediterranean cuisine with a modern twist",
		Hours: Hours{
			MondayThursday: "11:00 AM - 10:00 PM",
			FridaySaturday: "11:00 AM - 11:00 PM",
			Sunday:         "12:00 PM - 9:00 PM",
		},
		HappyHour: "4-6 PM, weekdays",
		Location:  "123 Restaurant Street, Food City",
		Phone:     "+1 (555) 123-4567",
		Email:     "info@mediterraneandelight.com",
	}
}
