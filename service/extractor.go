package service

import (
	"regexp"
	"strings"

	"gastroguide/model"
	"gastroguide/utils"
)

// keywordRule maps a canonical label to the substrings that trigger it.
type keywordRule[T any] struct {
	label    T
	keywords []string
}

// Self-introduction patterns, tried in order on lowercased text.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is ([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`i'm ([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`this is ([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`i am ([\p{L}\p{N}_]+)`),
}

var celebrationRules = []keywordRule[model.Celebration]{
	{model.CelebrationAnniversary, []string{"anniversary", "anniversaries"}},
	{model.CelebrationBirthday, []string{"birthday", "bday", "b-day"}},
	{model.CelebrationGraduation, []string{"graduation", "graduated"}},
	{model.CelebrationEngagement, []string{"engagement", "engaged", "proposal"}},
	{model.CelebrationGeneric, []string{"celebrating", "celebrate", "special occasion"}},
}

var dietaryRules = []keywordRule[string]{
	{"vegetarian", []string{"vegetarian", "veggie", "no meat"}},
	{"vegan", []string{"vegan"}},
	{"gluten-free", []string{"gluten free", "gluten-free", "celiac"}},
	{"nut allergy", []string{"nut allergy", "allergic to nuts", "no nuts"}},
	{"dairy-free", []string{"dairy free", "dairy-free", "lactose", "no dairy"}},
	{"halal", []string{"halal"}},
	{"kosher", []string{"kosher"}},
}

// EntityExtractor pulls guest facts out of a raw utterance. It holds no state.
type EntityExtractor struct{}

func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

func (e *EntityExtractor) Extract(text string) model.Extraction {
	lower := strings.ToLower(text)
	return model.Extraction{
		Name:         e.extractName(lower),
		Celebration:  e.detectCelebration(lower),
		Restrictions: e.detectDietaryRestrictions(lower),
	}
}

func (e *EntityExtractor) extractName(lower string) string {
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(lower); len(m) > 1 && m[1] != "" {
			return utils.Capitalize(m[1])
		}
	}
	return ""
}

// detectCelebration reports only the earliest ordered category that matches.
func (e *EntityExtractor) detectCelebration(lower string) model.Celebration {
	for _, rule := range celebrationRules {
		if utils.ContainsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return ""
}

// detectDietaryRestrictions reports every category that matches.
func (e *EntityExtractor) detectDietaryRestrictions(lower string) []string {
	var out []string
	for _, rule := range dietaryRules {
		if utils.ContainsAny(lower, rule.keywords) {
			out = append(out, rule.label)
		}
	}
	return out
}
