package chatbot

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Answer is the engine's reply to one free-text question.
type Answer struct {
	Response   string  `json:"response"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type category struct {
	name      string
	questions []string
	responses []string
	patterns  []*regexp.Regexp
}

// Engine matches free-text questions to canned answers. It keeps no
// scheduler state and is safe for concurrent use; the rng is mutex-guarded
// since one Engine serves all handlers.
type Engine struct {
	categories []category
	mu         sync.Mutex
	rng        *rand.Rand
}

func NewEngine() *Engine {
	return newEngine(time.Now().UnixNano())
}

func newEngine(seed int64) *Engine {
	return &Engine{
		categories: buildCategories(),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

const fallbackResponse = "I'm not sure I understand your question. Could you please rephrase it? " +
	"I can help you with appointments, services, emergency care, pricing, and general pet health questions."

// Respond finds the best canned response for the input. Question similarity
// above 0.6 counts 1.0 toward a category, each matched intent pattern counts
// 0.5, and confidence is the winning score over 3, capped at 1.
func (e *Engine) Respond(input string) Answer {
	lowered := strings.ToLower(input)

	bestScore := 0.0
	var best *category
	for i := range e.categories {
		cat := &e.categories[i]
		score := 0.0
		for _, q := range cat.questions {
			if jaccard(lowered, strings.ToLower(q)) > 0.6 {
				score++
			}
		}
		for _, p := range cat.patterns {
			if p.MatchString(lowered) {
				score += 0.5
			}
		}
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}

	if best == nil {
		return Answer{Response: fallbackResponse, Category: "general", Confidence: 0.3}
	}
	confidence := bestScore / 3
	if confidence > 1 {
		confidence = 1
	}
	e.mu.Lock()
	response := best.responses[e.rng.Intn(len(best.responses))]
	e.mu.Unlock()
	return Answer{
		Response:   response,
		Category:   best.name,
		Confidence: confidence,
	}
}

// SuggestedQuestions returns example questions, from one category when named
// or a spread across all of them otherwise.
func (e *Engine) SuggestedQuestions(categoryName string) []string {
	if categoryName != "" {
		for _, cat := range e.categories {
			if cat.name == categoryName {
				return firstN(cat.questions, 3)
			}
		}
		return nil
	}
	var popular []string
	for _, cat := range e.categories {
		popular = append(popular, firstN(cat.questions, 2)...)
	}
	return firstN(popular, 6)
}

// jaccard is word-set intersection over union, a cheap text similarity.
func jaccard(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
