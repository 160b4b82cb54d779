package conjugation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// VerbForms holds the past forms of a verb.
type VerbForms struct {
	PastSimple     string
	PastParticiple string
}

var (
	ErrExcludedVerb        = errors.New("verb is excluded from the catalog")
	ErrDuplicateVerb       = errors.New("duplicate verb")
	ErrInvalidVerb         = errors.New("invalid verb")
	ErrVerbCountOutOfRange = errors.New("verb count out of range")
)

// Lexicon is an ordered verb catalog with its irregular forms.
// It is built once and never mutated, so it is safe to share between sessions.
type Lexicon struct {
	verbs        []string
	irregulars   map[string]VerbForms
	participles  map[string]string
	excluded     map[string]struct{}
	verbPosition map[string]int
}

// LexiconOption configures optional tables of a Lexicon
type LexiconOption func(*Lexicon)

// WithPresentParticiples overrides MakeIng for verbs whose -ing spelling depends on stress,
// such as "open" -> "opening" or "visit" -> "visiting".
func WithPresentParticiples(participles map[string]string) LexiconOption {
	return func(l *Lexicon) {
		for verb, ing := range participles {
			l.participles[verb] = ing
		}
	}
}

// NewLexicon validates the catalog and builds an immutable Lexicon.
// Verbs are kept in the given order, most common first.
func NewLexicon(verbs []string, irregulars map[string]VerbForms, excluded []string, opts ...LexiconOption) (*Lexicon, error) {
	l := &Lexicon{
		verbs:        make([]string, 0, len(verbs)),
		irregulars:   make(map[string]VerbForms, len(irregulars)),
		participles:  make(map[string]string),
		excluded:     make(map[string]struct{}, len(excluded)),
		verbPosition: make(map[string]int, len(verbs)),
	}
	for _, verb := range excluded {
		l.excluded[strings.ToLower(verb)] = struct{}{}
	}
	for verb, forms := range irregulars {
		if forms.PastSimple == "" || forms.PastParticiple == "" {
			return nil, fmt.Errorf("%w: %q has an incomplete irregular entry", ErrInvalidVerb, verb)
		}
		l.irregulars[verb] = forms
	}
	for _, verb := range verbs {
		if !isBaseForm(verb) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVerb, verb)
		}
		if l.IsExcluded(verb) {
			return nil, fmt.Errorf("%w: %q", ErrExcludedVerb, verb)
		}
		if _, ok := l.verbPosition[verb]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVerb, verb)
		}
		l.verbPosition[verb] = len(l.verbs)
		l.verbs = append(l.verbs, verb)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func isBaseForm(verb string) bool {
	if verb == "" {
		return false
	}
	for i := 0; i < len(verb); i++ {
		if verb[i] < 'a' || verb[i] > 'z' {
			return false
		}
	}
	return true
}

// LookupForms returns the irregular forms of verb, or verb+"ed" for both forms.
// Any string is accepted, including verbs outside the catalog.
func (l *Lexicon) LookupForms(verb string) VerbForms {
	if forms, ok := l.irregulars[verb]; ok {
		return forms
	}
	return VerbForms{
		PastSimple:     verb + "ed",
		PastParticiple: verb + "ed",
	}
}

// PresentParticiple returns the -ing form, preferring a catalog override to MakeIng.
func (l *Lexicon) PresentParticiple(verb string) string {
	if ing, ok := l.participles[verb]; ok {
		return ing
	}
	return MakeIng(verb)
}

func (l *Lexicon) IsExcluded(verb string) bool {
	_, ok := l.excluded[strings.ToLower(verb)]
	return ok
}

func (l *Lexicon) Contains(verb string) bool {
	_, ok := l.verbPosition[verb]
	return ok
}

func (l *Lexicon) HasIrregularForms(verb string) bool {
	_, ok := l.irregulars[verb]
	return ok
}

// Verbs returns a copy of the catalog in order
func (l *Lexicon) Verbs() []string {
	return append([]string(nil), l.verbs...)
}

func (l *Lexicon) Len() int {
	return len(l.verbs)
}

// FirstN returns the n most common verbs. n must be within 1..Len().
func (l *Lexicon) FirstN(n int) ([]string, error) {
	if n < 1 || n > len(l.verbs) {
		return nil, fmt.Errorf("%w: %d is not within 1..%d", ErrVerbCountOutOfRange, n, len(l.verbs))
	}
	return append([]string(nil), l.verbs[:n]...), nil
}

// Excluded returns the exclusion set sorted alphabetically
func (l *Lexicon) Excluded() []string {
	result := make([]string, 0, len(l.excluded))
	for verb := range l.excluded {
		result = append(result, verb)
	}
	slices.Sort(result)
	return result
}

// Irregulars returns a copy of the irregular table
func (l *Lexicon) Irregulars() map[string]VerbForms {
	result := make(map[string]VerbForms, len(l.irregulars))
	for verb, forms := range l.irregulars {
		result[verb] = forms
	}
	return result
}

// PresentParticiples returns a copy of the -ing overrides
func (l *Lexicon) PresentParticiples() map[string]string {
	result := make(map[string]string, len(l.participles))
	for verb, ing := range l.participles {
		result[verb] = ing
	}
	return result
}
