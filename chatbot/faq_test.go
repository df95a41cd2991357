package chatbot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondMatchesIntent(t *testing.T) {
	engine := newEngine(1)

	cases := []struct {
		input    string
		category string
	}{
		{"How do I book an appointment?", "appointments"},
		{"My pet is sick, this is urgent", "emergency"},
		{"How much does a consultation cost?", "pricing"},
		{"What are your opening hours?", "hours"},
		{"Does my dog need vaccines?", "vaccinations"},
		{"Do you offer nail trimming and grooming?", "grooming"},
	}
	for _, tc := range cases {
		answer := engine.Respond(tc.input)
		assert.Equal(t, tc.category, answer.Category, "input %q", tc.input)
		assert.NotEmpty(t, answer.Response)
		assert.Greater(t, answer.Confidence, 0.0)
	}
}

func TestRespondFallback(t *testing.T) {
	engine := newEngine(1)
	answer := engine.Respond("zxqw plummet gargle")
	assert.Equal(t, "general", answer.Category)
	assert.Equal(t, fallbackResponse, answer.Response)
	assert.Equal(t, 0.3, answer.Confidence)
}

func TestRespondConfidenceCapped(t *testing.T) {
	engine := newEngine(1)
	// Stacks question similarity plus several intent patterns.
	answer := engine.Respond("how do I book an appointment, can I schedule online and reserve a visit")
	assert.LessOrEqual(t, answer.Confidence, 1.0)
}

func TestRespondConcurrentCallers(t *testing.T) {
	engine := newEngine(1)

	// One engine serves every handler, so concurrent questions must not
	// corrupt the response pick. Run with -race.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				answer := engine.Respond("how do I book an appointment")
				assert.Equal(t, "appointments", answer.Category)
				assert.NotEmpty(t, answer.Response)
			}
		}()
	}
	wg.Wait()
}

func TestRespondCaseInsensitive(t *testing.T) {
	engine := newEngine(1)
	lower := engine.Respond("pet emergency")
	upper := engine.Respond("PET EMERGENCY")
	assert.Equal(t, lower.Category, upper.Category)
}

func TestSuggestedQuestionsByCategory(t *testing.T) {
	engine := newEngine(1)

	suggestions := engine.SuggestedQuestions("pricing")
	require.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 3)
	assert.Contains(t, suggestions, "How much does it cost?")

	assert.Nil(t, engine.SuggestedQuestions("astrology"))
}

func TestSuggestedQuestionsSpread(t *testing.T) {
	engine := newEngine(1)
	suggestions := engine.SuggestedQuestions("")
	assert.Len(t, suggestions, 6)
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, jaccard("book an appointment", "book an appointment"))
	assert.Equal(t, 0.0, jaccard("cats", "dogs"))
	assert.Equal(t, 0.0, jaccard("", "anything"))
	assert.InDelta(t, 0.5, jaccard("a b c", "a b d"), 1e-9)
}
