package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cassette/internal/genai"
	"cassette/internal/models"
	"cassette/internal/repository"
)

// scriptedGenerator records prompts and plays back a fixed response.
type scriptedGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *scriptedGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

type aiFixture struct {
	svc   AIService
	gen   *scriptedGenerator
	repos *repository.Repositories
}

func newAIFixture(t *testing.T, gen *scriptedGenerator) aiFixture {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	svc := NewAIService(genai.NewAssistant(gen), repos.Content, repos.UserContent, repos.Reflections, nil, 0)
	return aiFixture{svc: svc, gen: gen, repos: repos}
}

func (f aiFixture) addWatched(t *testing.T, userID int64, title string, genres ...string) *models.Content {
	t.Helper()
	ctx := context.Background()
	content := &models.Content{Title: title, Type: models.ContentTypeMovie, Genres: genres}
	require.NoError(t, f.repos.Content.Create(ctx, content))
	status := models.StatusWatched
	_, _, err := f.repos.UserContent.Upsert(ctx, userID, content.ID, models.UserContentChange{Status: &status})
	require.NoError(t, err)
	return content
}

func TestReflectionInsight_RequiresExistingContent(t *testing.T) {
	f := newAIFixture(t, &scriptedGenerator{text: "Nice observation."})

	_, err := f.svc.ReflectionInsight(context.Background(), 999, "some text")
	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.Empty(t, f.gen.prompts, "no prompt should be sent for unknown content")
}

func TestReflectionInsight_UsesContentTitle(t *testing.T) {
	f := newAIFixture(t, &scriptedGenerator{text: "Nice observation."})
	content := f.addWatched(t, 1, "Dune", "Sci-Fi")

	insight, err := f.svc.ReflectionInsight(context.Background(), content.ID, "The score is haunting")

	require.NoError(t, err)
	assert.Equal(t, "Nice observation.", insight.Text)
	require.Len(t, f.gen.prompts, 1)
	assert.Contains(t, f.gen.prompts[0], "Dune")
	assert.Contains(t, f.gen.prompts[0], "The score is haunting")
}

func TestRecommendations_PromptBuiltFromLibrary(t *testing.T) {
	f := newAIFixture(t, &scriptedGenerator{
		text: `[{"title":"Blade Runner 2049","type":"movie","reason":"More cerebral sci-fi."}]`,
	})
	f.addWatched(t, 1, "Dune", "Sci-Fi", "Adventure")
	f.addWatched(t, 1, "Arrival", "Sci-Fi", "Drama")

	result, err := f.svc.Recommendations(context.Background(), 1, "thoughtful", 120)

	require.NoError(t, err)
	require.True(t, result.Parsed)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Blade Runner 2049", result.Items[0].Title)

	require.Len(t, f.gen.prompts, 1)
	prompt := f.gen.prompts[0]
	assert.Contains(t, prompt, "Dune")
	assert.Contains(t, prompt, "Arrival")
	assert.Contains(t, prompt, "Sci-Fi")
	assert.Contains(t, prompt, "Drama")
	assert.Contains(t, prompt, "thoughtful")
}

func TestRecommendations_RawTextSurvivesParseFailure(t *testing.T) {
	f := newAIFixture(t, &scriptedGenerator{text: "Try Blade Runner 2049, you'll love it."})
	f.addWatched(t, 1, "Dune", "Sci-Fi")

	result, err := f.svc.Recommendations(context.Background(), 1, "", 0)

	require.NoError(t, err)
	assert.False(t, result.Parsed)
	assert.Equal(t, "Try Blade Runner 2049, you'll love it.", result.Raw)
}

func TestViewingInsights_BoundedHistory(t *testing.T) {
	f := newAIFixture(t, &scriptedGenerator{text: "You like dense sci-fi."})
	ctx := context.Background()

	titles := []string{"Dune", "Arrival", "Foundation", "Succession", "Knives Out", "The Queen's Gambit", "Stranger Things"}
	var first *models.Content
	for _, title := range titles {
		c := f.addWatched(t, 1, title, "Drama")
		if first == nil {
			first = c
		}
	}
	for _, text := range []string{"one", "two", "three", "four"} {
		require.NoError(t, f.repos.Reflections.Create(ctx, &models.Reflection{
			UserID: 1, ContentID: first.ID, Text: text,
		}))
	}

	insight, err := f.svc.ViewingInsights(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "You like dense sci-fi.", insight.Text)
	require.Len(t, f.gen.prompts, 1)
	prompt := f.gen.prompts[0]
	// Recent watches are capped at five, reflection excerpts at three.
	assert.Contains(t, prompt, "Stranger Things")
	assert.NotContains(t, prompt, "Dune")
	assert.Contains(t, prompt, "- four")
	assert.NotContains(t, prompt, "- one")
}

func TestAnalyzeReflection_Passthrough(t *testing.T) {
	f := newAIFixture(t, &scriptedGenerator{
		text: `{"sentiment":"positive","themes":["power"],"tags":["sci-fi"]}`,
	})

	analysis := f.svc.AnalyzeReflection(context.Background(), "Loved the worldbuilding")

	assert.Equal(t, "positive", analysis.Sentiment)
	assert.False(t, analysis.Degraded)
}
