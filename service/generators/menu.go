package generators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gastroguide/internal/apperrors"
	"gastroguide/model"
)

const mainCourse = "Main Course"

// Checked in order against the lowercased dish name.
var pairings = []struct {
	dish    string
	pairing string
}{
	{"paella", "crisp Albariño wine and saffron aioli"},
	{"lamb", "robust Malbec and truffle mashed potatoes"},
	{"sea bass", "Chardonnay and roasted Mediterranean vegetables"},
	{"chicken", "Sauvignon Blanc and herb-crusted focaccia"},
	{"beef", "Cabernet Sauvignon and garlic butter asparagus"},
}

const defaultPairing = "our sommelier's wine selection"

func SuggestPairing(dish string) string {
	lower := strings.ToLower(dish)
	for _, p := range pairings {
		if strings.Contains(lower, p.dish) {
			return p.pairing
		}
	}
	return defaultPairing
}

// groupByCategory keeps categories in order of first appearance.
func groupByCategory(items []model.MenuItem) ([]string, map[string][]model.MenuItem) {
	var order []string
	groups := make(map[string][]model.MenuItem)
	for _, item := range items {
		if _, ok := groups[item.Category]; !ok {
			order = append(order, item.Category)
		}
		groups[item.Category] = append(groups[item.Category], item)
	}
	return order, groups
}

func MenuInquiry(ctx context.Context, deps *Deps, convo *model.ConversationContext, _ string) (*model.AgentResponse, error) {
	if deps.Menu == nil {
		return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeMenuCatalogUnavailable, "menu catalog", errors.New("not configured"))
	}
	items, err := deps.Menu.ListAvailable(ctx)
	if err != nil {
		return nil, apperrors.NewCollaboratorError(apperrors.ErrCodeMenuCatalogUnavailable, "menu catalog", err)
	}

	var b strings.Builder
	b.WriteString("Wonderful question! Let me share some of our most exquisite offerings with you.")
	if len(convo.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "\n\n*I've noted you're looking for %s options. Let me highlight those for you!*\n",
			strings.Join(convo.DietaryRestrictions, ", "))
	}
	b.WriteString("\n\n")

	b.WriteString("**🌟 Chef's Recommendations:**\n\n")
	order, groups := groupByCategory(items)
	for _, category := range order {
		fmt.Fprintf(&b, "**%s:**\n", category)
		shown := groups[category]
		if len(shown) > 2 {
			shown = shown[:2]
		}
		for _, item := range shown {
			fmt.Fprintf(&b, "• **%s** ($%.2f) - %s\n", item.Name, item.Price, item.Description)
			if category == mainCourse {
				fmt.Fprintf(&b, "  *Perfect with our %s*\n", SuggestPairing(item.Name))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 **My Suggestion:** The Seafood Paella paired with our house Pinot Grigio is absolutely divine. ")
	b.WriteString("May I also recommend starting with our Hummus Platter? It's a guest favorite!\n\n")
	b.WriteString("Which of these tempts your palate, or would you like me to tell you more about a specific dish?")

	if items == nil {
		items = []model.MenuItem{}
	}
	return &model.AgentResponse{
		Intent:  model.IntentMenu,
		Action:  model.ActionMenuInquiry,
		Message: b.String(),
		Data:    map[string]interface{}{"menu_items": items},
	}, nil
}
