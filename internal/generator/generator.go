package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"smartchef/internal/models"
)

const systemPrompt = "You are a professional chef focused on reducing food waste. " +
	"Always respond with a single JSON object and nothing else."

// serviceMessage is the sentinel content returned in place of tips or
// substitutions when the LLM call fails. Consumers detect it by
// substring ("unavailable", "api key", "billing").
const serviceMessage = "This feature is currently unavailable. Please check your API key and billing status."

// Generator produces recipes, waste-reduction tips, and ingredient
// substitutions through a chat-completion provider.
type Generator struct {
	provider Provider
	logger   *zap.Logger
	timeout  time.Duration
}

// New creates a generator. A zero timeout disables the per-call deadline.
func New(provider Provider, timeout time.Duration, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
		timeout:  timeout,
	}
}

// recipePayload is the JSON shape requested from the model.
type recipePayload struct {
	Title        string   `json:"title"`
	PrepTime     int      `json:"prep_time"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         string   `json:"tips"`
	Cuisine      string   `json:"cuisine"`
}

// GenerateRecipe asks the provider for a recipe built from the given
// ingredients, honoring dietary tags and the optional personalization
// snapshot. Failures are reported as a degenerate recipe rather than an
// error, so the caller always has something to render.
func (g *Generator) GenerateRecipe(ctx context.Context, ingredients, dietary []string, personalization *Personalization) models.Recipe {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a recipe using these ingredients: %s\n", strings.Join(ingredients, ", "))
	if len(dietary) > 0 {
		fmt.Fprintf(&b, "Dietary preferences: %s\n", strings.Join(dietary, ", "))
	} else {
		b.WriteString("Dietary preferences: None\n")
	}
	if personalization != nil {
		if len(personalization.FavoriteIngredients) > 0 {
			fmt.Fprintf(&b, "The user especially likes: %s\n", strings.Join(personalization.FavoriteIngredients, ", "))
		}
		if len(personalization.DislikedIngredients) > 0 {
			fmt.Fprintf(&b, "Avoid these ingredients where possible: %s\n", strings.Join(personalization.DislikedIngredients, ", "))
		}
		if len(personalization.CuisinePreferences) > 0 {
			fmt.Fprintf(&b, "Preferred cuisines, best first: %s\n", strings.Join(personalization.CuisinePreferences, ", "))
		}
	}
	b.WriteString("\nRespond with a JSON object containing:\n" +
		"- title: recipe name\n" +
		"- prep_time: in minutes (integer)\n" +
		"- servings: number of servings (integer)\n" +
		"- ingredients: list of ingredients with measurements\n" +
		"- instructions: list of step-by-step instructions\n" +
		"- tips: cooking and storage tips\n" +
		"- cuisine: the cuisine the recipe belongs to\n")

	raw, err := g.complete(ctx, b.String())
	if err != nil {
		g.logger.Warn("recipe generation failed", zap.Error(err))
		return errorRecipe(err)
	}

	var payload recipePayload
	if err := json.Unmarshal(extractJSON(raw), &payload); err != nil {
		g.logger.Warn("recipe response did not parse", zap.Error(err))
		return errorRecipe(fmt.Errorf("unexpected response from recipe service: %w", err))
	}

	return models.Recipe{
		Title:        payload.Title,
		PrepTime:     payload.PrepTime,
		Servings:     payload.Servings,
		Ingredients:  payload.Ingredients,
		Instructions: payload.Instructions,
		Tips:         payload.Tips,
		Cuisine:      payload.Cuisine,
	}
}

// WasteReductionTips returns waste-reduction tips for the given
// ingredients. On failure it returns a single sentinel message.
func (g *Generator) WasteReductionTips(ctx context.Context, ingredients []string) []string {
	prompt := fmt.Sprintf("Generate specific food waste reduction tips for these ingredients: %s\n\n"+
		"Respond with a JSON object of the form {\"tips\": [\"...\"]}.",
		strings.Join(ingredients, ", "))

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("waste reduction tips failed", zap.Error(err))
		return []string{serviceMessage}
	}

	var payload struct {
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal(extractJSON(raw), &payload); err != nil || len(payload.Tips) == 0 {
		g.logger.Warn("tips response did not parse", zap.Error(err))
		return []string{serviceMessage}
	}
	return payload.Tips
}

// Substitutions returns common substitutions per ingredient. On failure
// every requested ingredient maps to the single sentinel message.
func (g *Generator) Substitutions(ctx context.Context, ingredients []string) map[string][]string {
	prompt := fmt.Sprintf("Suggest common substitutions for these ingredients: %s\n\n"+
		"Respond with a JSON object where keys are original ingredients and values are arrays of possible substitutions.",
		strings.Join(ingredients, ", "))

	raw, err := g.complete(ctx, prompt)
	if err == nil {
		var subs map[string][]string
		if jsonErr := json.Unmarshal(extractJSON(raw), &subs); jsonErr == nil && len(subs) > 0 {
			return subs
		}
		err = fmt.Errorf("unexpected substitutions payload")
	}

	g.logger.Warn("substitutions failed", zap.Error(err))
	fallback := make(map[string][]string, len(ingredients))
	for _, ingredient := range ingredients {
		fallback[ingredient] = []string{serviceMessage}
	}
	return fallback
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.provider.Complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
}

// errorRecipe presents a generation failure as a degenerate recipe:
// zero prep time and servings with the error in the instructions.
func errorRecipe(err error) models.Recipe {
	return models.Recipe{
		Title:    "Recipe generation failed",
		PrepTime: 0,
		Servings: 0,
		Instructions: []string{
			"We couldn't generate a recipe right now.",
			err.Error(),
			"Check your API key and billing status, then try again.",
		},
		Tips: serviceMessage,
	}
}

// extractJSON trims markdown code fences and surrounding prose so the
// first JSON object in the response can be unmarshalled.
func extractJSON(raw string) []byte {
	s := strings.TrimSpace(raw)
	if start := strings.IndexAny(s, "{["); start >= 0 {
		var end int
		if s[start] == '{' {
			end = strings.LastIndex(s, "}")
		} else {
			end = strings.LastIndex(s, "]")
		}
		if end > start {
			s = s[start : end+1]
		}
	}
	return []byte(s)
}

// IsServiceMessage reports whether content is a sentinel error string
// rather than real generated content.
func IsServiceMessage(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range []string{"unavailable", "api key", "billing"} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
