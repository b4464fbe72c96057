package review

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyList is returned by Validate when one of the phrase lists has no
// entries.
var ErrEmptyList = errors.New("phrase list is empty")

// ErrBusinessInPhrase is returned by CheckBusiness when the business name
// occurs inside a phrase.
var ErrBusinessInPhrase = errors.New("business name occurs in a phrase")

// PhraseBook holds the four ordered phrase lists a review is assembled from.
type PhraseBook struct {
	Openings        []string `yaml:"openings"`
	Qualities       []string `yaml:"qualities"`
	Actions         []string `yaml:"actions"`
	Recommendations []string `yaml:"recommendations"`
}

// DefaultPhraseBook returns the built-in phrase lists.
func DefaultPhraseBook() PhraseBook {
	return PhraseBook{
		Openings: []string{
			"Absolutely wonderful experience with",
			"Had a fantastic time working with",
			"Truly impressed with the service from",
			"A big thank you to the team at",
			"Couldn't be happier with the results from",
			"Five stars all the way for",
			"An amazing company! I loved my experience with",
			"Exceptional service and expertise from",
		},
		Qualities: []string{
			"the team was incredibly professional and knowledgeable,",
			"they were super helpful and responsive,",
			"the customer service was top-notch,",
			"the quality of their work is outstanding,",
			"their attention to detail is second to none,",
		},
		Actions: []string{
			"making the whole process smooth and easy.",
			"and they went above and beyond for me.",
			"which made my day so much better.",
			"and I felt truly valued as a customer.",
			"and the results exceeded all my expectations.",
			"creating a genuinely positive and great atmosphere.",
		},
		Recommendations: []string{
			"I will definitely be back for future projects!",
			"Would highly recommend them to everyone!",
			"Can't wait to work with them again!",
			"This is my new go-to expert!",
			"You have earned a loyal customer!",
			"Keep up the fantastic work!",
		},
	}
}

// Validate reports an error wrapping ErrEmptyList if any list is empty.
func (b PhraseBook) Validate() error {
	for _, l := range []struct {
		name   string
		values []string
	}{
		{"openings", b.Openings},
		{"qualities", b.Qualities},
		{"actions", b.Actions},
		{"recommendations", b.Recommendations},
	} {
		if len(l.values) == 0 {
			return fmt.Errorf("%s: %w", l.name, ErrEmptyList)
		}
	}
	return nil
}

// CheckBusiness reports an error wrapping ErrBusinessInPhrase if name occurs
// in any phrase. A generated review contains name exactly once only when this
// check passes.
func (b PhraseBook) CheckBusiness(name string) error {
	for _, list := range [][]string{b.Openings, b.Qualities, b.Actions, b.Recommendations} {
		for _, phrase := range list {
			if strings.Contains(phrase, name) {
				return fmt.Errorf("%w: %q in %q", ErrBusinessInPhrase, name, phrase)
			}
		}
	}
	return nil
}

// Size returns the number of distinct reviews the book can produce.
func (b PhraseBook) Size() int {
	return len(b.Openings) * len(b.Qualities) * len(b.Actions) * len(b.Recommendations)
}

// LoadPhraseBook reads a YAML phrase book from path. Lists missing from the
// file keep their built-in values.
func LoadPhraseBook(path string) (PhraseBook, error) {
	book := DefaultPhraseBook()

	data, err := os.ReadFile(path)
	if err != nil {
		return PhraseBook{}, fmt.Errorf("reading phrase book: %w", err)
	}

	var override PhraseBook
	if err := yaml.Unmarshal(data, &override); err != nil {
		return PhraseBook{}, fmt.Errorf("parsing phrase book: %w", err)
	}
	if override.Openings != nil {
		book.Openings = override.Openings
	}
	if override.Qualities != nil {
		book.Qualities = override.Qualities
	}
	if override.Actions != nil {
		book.Actions = override.Actions
	}
	if override.Recommendations != nil {
		book.Recommendations = override.Recommendations
	}

	if err := book.Validate(); err != nil {
		return PhraseBook{}, fmt.Errorf("phrase book %s: %w", path, err)
	}
	return book, nil
}
