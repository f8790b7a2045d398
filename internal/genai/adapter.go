package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Fallback values returned when the endpoint is unavailable or its output
// cannot be parsed. Degraded results are distinguishable from genuine ones
// via the Degraded flag, but serialize to the same text the UI expects.
const (
	reflectionInsightFallback = "I couldn't process that reflection at the moment. Please try again later."
	viewingInsightsFallback   = "Unable to generate viewing insights at the moment. Please try again later."
)

// Insight is free-text commentary from the model.
type Insight struct {
	Text     string `json:"insight"`
	Degraded bool   `json:"-"`
}

// Analysis is the structured read of a reflection.
type Analysis struct {
	Sentiment string   `json:"sentiment"`
	Themes    []string `json:"themes"`
	Tags      []string `json:"tags"`
	Degraded  bool     `json:"-"`
}

// Recommendation is one suggested title.
type Recommendation struct {
	Title  string `json:"title"`
	Type   string `json:"type"` // movie, tv or "error" for the degraded item
	Reason string `json:"reason"`
}

// RecommendationResult carries either parsed recommendations or, when the
// model's output was not valid JSON, the raw text with Parsed=false so the
// caller can decide how to render it.
type RecommendationResult struct {
	Items    []Recommendation
	Raw      string
	Parsed   bool
	Degraded bool
}

// RecommendationInput describes the caller's viewing profile.
type RecommendationInput struct {
	Watched         []string
	PreferredGenres []string
	Mood            string
	TimeAvailable   int // minutes
}

// Assistant builds prompts from domain data and normalizes the model's
// best-effort text output into typed results. Endpoint failures degrade to
// fixed fallbacks, never to errors.
type Assistant struct {
	gen Generator
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

// ReflectionInsight returns short conversational commentary on a reflection.
func (a *Assistant) ReflectionInsight(ctx context.Context, contentTitle, contentType, reflectionText string) Insight {
	prompt := fmt.Sprintf(`I'm watching %s (%s) and wrote this reflection:
"%s"

Please provide a short, thoughtful response to my reflection that might deepen my understanding
or connect it to themes in the content. Keep it conversational, as if we're chatting about the show/movie.
Limit to 3-4 sentences max.`, contentTitle, contentType, reflectionText)

	text, err := a.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[genai] reflection insight failed: %v", err)
		return Insight{Text: reflectionInsightFallback, Degraded: true}
	}
	return Insight{Text: strings.TrimSpace(text)}
}

// AnalyzeReflection extracts sentiment, themes and tags from a reflection.
// Parse failures return the neutral default, never an error.
func (a *Assistant) AnalyzeReflection(ctx context.Context, reflectionText string) Analysis {
	prompt := fmt.Sprintf(`Analyze this reflection about a movie or TV show:
"%s"

Return the result as JSON with these fields:
1. sentiment: a single word describing the overall sentiment (positive, negative, neutral, mixed)
2. themes: an array of 2-3 main themes or topics detected in the reflection
3. tags: an array of 3-5 relevant tags that could be used to categorize this reflection

Format the response as valid JSON only, with no additional text.`, reflectionText)

	neutral := Analysis{
		Sentiment: "neutral",
		Themes:    []string{"entertainment"},
		Tags:      []string{"general"},
		Degraded:  true,
	}

	text, err := a.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[genai] reflection analysis failed: %v", err)
		return neutral
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(extractJSON(text, '{', '}')), &analysis); err != nil {
		log.Printf("[genai] reflection analysis not parseable: %v", err)
		return neutral
	}
	if analysis.Sentiment == "" {
		return neutral
	}
	return analysis
}

// Recommendations suggests 2-3 titles based on the caller's watch history.
func (a *Assistant) Recommendations(ctx context.Context, in RecommendationInput) RecommendationResult {
	var b strings.Builder
	fmt.Fprintf(&b, "I've watched: %s.\n", strings.Join(in.Watched, ", "))
	fmt.Fprintf(&b, "I enjoy these genres: %s.\n", strings.Join(in.PreferredGenres, ", "))
	if in.Mood != "" {
		fmt.Fprintf(&b, "I'm in the mood for something %s. ", in.Mood)
	}
	if in.TimeAvailable > 0 {
		fmt.Fprintf(&b, "I have about %d minutes available to watch. ", in.TimeAvailable)
	}
	b.WriteString(`
Please recommend 2-3 movies or shows I might enjoy and briefly explain why for each.
Format as a JSON array with objects having fields: title, type (movie/tv), and reason.`)

	text, err := a.gen.GenerateText(ctx, b.String())
	if err != nil {
		log.Printf("[genai] recommendations failed: %v", err)
		return RecommendationResult{
			Items: []Recommendation{{
				Title:  "Error generating recommendations",
				Type:   "error",
				Reason: "Unable to process your request at this time.",
			}},
			Parsed:   true,
			Degraded: true,
		}
	}

	var items []Recommendation
	if err := json.Unmarshal([]byte(extractJSON(text, '[', ']')), &items); err != nil {
		// Hand the raw text back rather than dropping it.
		return RecommendationResult{Raw: text, Parsed: false}
	}
	return RecommendationResult{Items: items, Parsed: true}
}

// ViewingInsights comments on patterns across recent watches and reflections.
func (a *Assistant) ViewingInsights(ctx context.Context, recentlyWatched, reflectionHighlights []string) Insight {
	prompt := fmt.Sprintf(`Recently watched: %s

Some of my reflections:
- %s

Based on my watching history and reflections, provide 2-3 insights about my viewing preferences
or patterns that might help me discover new content or appreciate my current watches more deeply.
Keep it conversational and brief (3-4 sentences total).`,
		strings.Join(recentlyWatched, ", "),
		strings.Join(reflectionHighlights, "\n- "))

	text, err := a.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[genai] viewing insights failed: %v", err)
		return Insight{Text: viewingInsightsFallback, Degraded: true}
	}
	return Insight{Text: strings.TrimSpace(text)}
}

// extractJSON pulls the outermost JSON value delimited by open/close out of
// model output, tolerating markdown code fences and surrounding prose.
func extractJSON(s string, open, close byte) string {
	s = stripCodeFences(s)
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
