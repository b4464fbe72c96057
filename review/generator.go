// Package review assembles short positive review suggestions from fixed
// phrase lists.
package review

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Review is one generated suggestion. Each segment is an element of the
// corresponding PhraseBook list.
type Review struct {
	Business       string `json:"business"`
	Opening        string `json:"opening"`
	Quality        string `json:"quality"`
	Action         string `json:"action"`
	Recommendation string `json:"recommendation"`
}

// Text renders the review as a single sentence in fixed order: opening,
// business name, quality, action, recommendation.
func (r Review) Text() string {
	var b strings.Builder
	b.WriteString(r.Opening)
	b.WriteByte(' ')
	b.WriteString(r.Business)
	b.WriteString("! ")
	b.WriteString(r.Quality)
	b.WriteByte(' ')
	b.WriteString(r.Action)
	b.WriteByte(' ')
	b.WriteString(r.Recommendation)
	return b.String()
}

// String implements fmt.Stringer.
func (r Review) String() string { return r.Text() }

// Generator picks one phrase from each list of its PhraseBook. It is safe for
// concurrent use.
type Generator struct {
	business string
	book     PhraseBook

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator for business. Every list in book must be
// non-empty; Generate panics otherwise. Call book.Validate first when the
// book comes from outside the program. The business name appears exactly once
// in each review only if book.CheckBusiness(business) passes. A nil rng is
// replaced with a time-seeded source.
func NewGenerator(business string, book PhraseBook, rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Generator{
		business: business,
		book:     book,
		rng:      rng,
	}
}

// Business returns the business name interpolated into every review.
func (g *Generator) Business() string { return g.business }

// Book returns the phrase lists the generator draws from.
func (g *Generator) Book() PhraseBook { return g.book }

// Generate returns a new review with each segment chosen uniformly at random.
func (g *Generator) Generate() Review {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Review{
		Business:       g.business,
		Opening:        g.pick(g.book.Openings),
		Quality:        g.pick(g.book.Qualities),
		Action:         g.pick(g.book.Actions),
		Recommendation: g.pick(g.book.Recommendations),
	}
}

// pick must be called with g.mu held.
func (g *Generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}
