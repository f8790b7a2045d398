package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records the prompt and returns a canned response.
type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestReflectionInsight_TrimsModelOutput(t *testing.T) {
	gen := &stubGenerator{text: "  That scene echoes the book's central tension.  \n"}
	a := NewAssistant(gen)

	insight := a.ReflectionInsight(context.Background(), "Dune", "movie", "The sandworm reveal was stunning")

	assert.Equal(t, "That scene echoes the book's central tension.", insight.Text)
	assert.False(t, insight.Degraded)
	assert.Contains(t, gen.prompt, "Dune")
	assert.Contains(t, gen.prompt, "(movie)")
	assert.Contains(t, gen.prompt, "The sandworm reveal was stunning")
}

func TestReflectionInsight_FallsBackOnError(t *testing.T) {
	a := NewAssistant(&stubGenerator{err: errors.New("boom")})

	insight := a.ReflectionInsight(context.Background(), "Dune", "movie", "text")

	assert.Equal(t, reflectionInsightFallback, insight.Text)
	assert.True(t, insight.Degraded)
}

func TestReflectionInsight_DisabledClientFallsBack(t *testing.T) {
	a := NewAssistant(NewClient("", "gemini-pro", 0))

	insight := a.ReflectionInsight(context.Background(), "Dune", "movie", "text")

	assert.Equal(t, reflectionInsightFallback, insight.Text)
	assert.True(t, insight.Degraded)
}

func TestAnalyzeReflection_ParsesFencedJSON(t *testing.T) {
	gen := &stubGenerator{text: "```json\n{\"sentiment\":\"positive\",\"themes\":[\"family\",\"power\"],\"tags\":[\"epic\",\"sci-fi\",\"adaptation\"]}\n```"}
	a := NewAssistant(gen)

	analysis := a.AnalyzeReflection(context.Background(), "Loved it")

	assert.Equal(t, "positive", analysis.Sentiment)
	assert.Equal(t, []string{"family", "power"}, analysis.Themes)
	assert.Equal(t, []string{"epic", "sci-fi", "adaptation"}, analysis.Tags)
	assert.False(t, analysis.Degraded)
}

func TestAnalyzeReflection_ParsesJSONWithSurroundingProse(t *testing.T) {
	gen := &stubGenerator{text: "Here is the analysis you asked for:\n{\"sentiment\":\"mixed\",\"themes\":[\"loss\"],\"tags\":[\"drama\"]}\nHope that helps!"}
	a := NewAssistant(gen)

	analysis := a.AnalyzeReflection(context.Background(), "text")

	assert.Equal(t, "mixed", analysis.Sentiment)
	assert.False(t, analysis.Degraded)
}

func TestAnalyzeReflection_NeutralDefaultOnGarbage(t *testing.T) {
	for name, gen := range map[string]*stubGenerator{
		"not json":      {text: "I cannot analyze that."},
		"empty fields":  {text: "{}"},
		"endpoint down": {err: errors.New("timeout")},
	} {
		t.Run(name, func(t *testing.T) {
			analysis := NewAssistant(gen).AnalyzeReflection(context.Background(), "text")

			assert.Equal(t, "neutral", analysis.Sentiment)
			assert.Equal(t, []string{"entertainment"}, analysis.Themes)
			assert.Equal(t, []string{"general"}, analysis.Tags)
			assert.True(t, analysis.Degraded)
		})
	}
}

func TestRecommendations_ParsesArray(t *testing.T) {
	gen := &stubGenerator{text: `Sure! [{"title":"Blade Runner 2049","type":"movie","reason":"Visually rich sci-fi."}] Enjoy!`}
	a := NewAssistant(gen)

	result := a.Recommendations(context.Background(), RecommendationInput{
		Watched:         []string{"Dune", "Arrival"},
		PreferredGenres: []string{"Sci-Fi", "Drama"},
		Mood:            "thoughtful",
		TimeAvailable:   120,
	})

	require.True(t, result.Parsed)
	assert.False(t, result.Degraded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Blade Runner 2049", result.Items[0].Title)

	assert.Contains(t, gen.prompt, "Dune, Arrival")
	assert.Contains(t, gen.prompt, "Sci-Fi, Drama")
	assert.Contains(t, gen.prompt, "thoughtful")
	assert.Contains(t, gen.prompt, "120 minutes")
}

func TestRecommendations_KeepsRawTextWhenUnparseable(t *testing.T) {
	raw := "You should definitely watch Blade Runner 2049, and maybe Ex Machina."
	a := NewAssistant(&stubGenerator{text: raw})

	result := a.Recommendations(context.Background(), RecommendationInput{Watched: []string{"Dune"}})

	assert.False(t, result.Parsed)
	assert.Equal(t, raw, result.Raw)
	assert.Empty(t, result.Items)
}

func TestRecommendations_ErrorItemOnEndpointFailure(t *testing.T) {
	a := NewAssistant(&stubGenerator{err: errors.New("boom")})

	result := a.Recommendations(context.Background(), RecommendationInput{Watched: []string{"Dune"}})

	require.True(t, result.Parsed)
	assert.True(t, result.Degraded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "error", result.Items[0].Type)
	assert.Equal(t, "Error generating recommendations", result.Items[0].Title)
}

func TestViewingInsights_FallsBackOnError(t *testing.T) {
	a := NewAssistant(&stubGenerator{err: errors.New("boom")})

	insight := a.ViewingInsights(context.Background(), []string{"Dune"}, []string{"great visuals"})

	assert.Equal(t, viewingInsightsFallback, insight.Text)
	assert.True(t, insight.Degraded)
}

func TestViewingInsights_PromptCarriesHistory(t *testing.T) {
	gen := &stubGenerator{text: "You gravitate toward slow-burn sci-fi."}
	a := NewAssistant(gen)

	insight := a.ViewingInsights(context.Background(),
		[]string{"Dune", "Arrival"},
		[]string{"loved the score", "the ending recontextualizes everything"})

	assert.Equal(t, "You gravitate toward slow-burn sci-fi.", insight.Text)
	assert.Contains(t, gen.prompt, "Dune, Arrival")
	assert.Contains(t, gen.prompt, "- loved the score\n- the ending recontextualizes everything")
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		open byte
		want string
	}{
		{"bare object", `{"a":1}`, '{', `{"a":1}`},
		{"object in prose", `before {"a":1} after`, '{', `{"a":1}`},
		{"fenced array", "```json\n[1,2]\n```", '[', `[1,2]`},
		{"no delimiters", "plain text", '{', "plain text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			close := byte('}')
			if tc.open == '[' {
				close = ']'
			}
			assert.Equal(t, tc.want, extractJSON(tc.in, tc.open, close))
		})
	}
}
