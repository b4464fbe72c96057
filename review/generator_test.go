package review

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const business = "Ludhiana SEO Expert"

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestGenerateContainsBusinessOnce(t *testing.T) {
	g := NewGenerator(business, DefaultPhraseBook(), seeded(1))

	for i := 0; i < 200; i++ {
		text := g.Generate().Text()
		require.NotEmpty(t, text)
		assert.Equal(t, 1, strings.Count(text, business), text)
	}
}

func TestGenerateSegmentsComeFromLists(t *testing.T) {
	book := DefaultPhraseBook()
	g := NewGenerator(business, book, seeded(2))

	for i := 0; i < 1000; i++ {
		r := g.Generate()
		assert.Contains(t, book.Openings, r.Opening)
		assert.Contains(t, book.Qualities, r.Quality)
		assert.Contains(t, book.Actions, r.Action)
		assert.Contains(t, book.Recommendations, r.Recommendation)

		want := r.Opening + " " + business + "! " + r.Quality + " " + r.Action + " " + r.Recommendation
		assert.Equal(t, want, r.Text())
	}
}

func TestGenerateStaysInsideCartesianProduct(t *testing.T) {
	book := DefaultPhraseBook()

	product := make(map[string]struct{}, book.Size())
	for _, o := range book.Openings {
		for _, q := range book.Qualities {
			for _, a := range book.Actions {
				for _, rec := range book.Recommendations {
					r := Review{Business: business, Opening: o, Quality: q, Action: a, Recommendation: rec}
					product[r.Text()] = struct{}{}
				}
			}
		}
	}

	g := NewGenerator(business, book, nil)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		text := g.Generate().Text()
		_, ok := product[text]
		require.True(t, ok, "unexpected review %q", text)
		seen[text] = struct{}{}
	}
	assert.GreaterOrEqual(t, len(seen), 2)
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := NewGenerator(business, DefaultPhraseBook(), seeded(42))
	b := NewGenerator(business, DefaultPhraseBook(), seeded(42))

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestGenerateSingletonLists(t *testing.T) {
	book := PhraseBook{
		Openings:        []string{"Great work by"},
		Qualities:       []string{"friendly staff,"},
		Actions:         []string{"fast turnaround."},
		Recommendations: []string{"Recommended!"},
	}
	g := NewGenerator("Acme", book, seeded(3))

	assert.Equal(t, "Great work by Acme! friendly staff, fast turnaround. Recommended!", g.Generate().Text())
	assert.Equal(t, 1, book.Size())
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultPhraseBook().Validate())

	book := DefaultPhraseBook()
	book.Actions = nil
	err := book.Validate()
	require.ErrorIs(t, err, ErrEmptyList)
	assert.Contains(t, err.Error(), "actions")
}

func TestLoadPhraseBook(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("openings:\n  - Loved working with\n"), 0o644))

		book, err := LoadPhraseBook(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Loved working with"}, book.Openings)
		assert.Equal(t, DefaultPhraseBook().Qualities, book.Qualities)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("qualities: []\n"), 0o644))

		_, err := LoadPhraseBook(path)
		assert.ErrorIs(t, err, ErrEmptyList)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPhraseBook(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestCheckBusiness(t *testing.T) {
	book := DefaultPhraseBook()
	require.NoError(t, book.CheckBusiness(business))

	err := book.CheckBusiness("the team")
	require.ErrorIs(t, err, ErrBusinessInPhrase)
	assert.Contains(t, err.Error(), "the team")
}
