// Package conjugation builds English verb phrases for a pronoun, tense and grammatical form.
package conjugation

import (
	"errors"
	"fmt"
	"strings"
)

// Pronoun is the subject of a conjugated phrase.
type Pronoun string

const (
	PronounI    Pronoun = "I"
	PronounYou  Pronoun = "you"
	PronounWe   Pronoun = "we"
	PronounThey Pronoun = "they"
	PronounHe   Pronoun = "he"
	PronounShe  Pronoun = "she"
	PronounIt   Pronoun = "it"
)

var (
	ErrUnknownPronoun = errors.New("unknown pronoun")
)

var allPronouns = []Pronoun{
	PronounI, PronounYou, PronounWe, PronounThey, PronounHe, PronounShe, PronounIt,
}

// Pronouns returns every supported pronoun in display order
func Pronouns() []Pronoun {
	return append([]Pronoun(nil), allPronouns...)
}

// ParsePronoun matches s against the supported pronouns ignoring case
func ParsePronoun(s string) (Pronoun, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, p := range allPronouns {
		if strings.ToLower(string(p)) == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPronoun, s)
}

// Display returns the pronoun as it starts a sentence.
func (p Pronoun) Display() string {
	if strings.EqualFold(string(p), string(PronounI)) {
		return "I"
	}
	return capitalize(strings.ToLower(string(p)))
}

// Inline returns the pronoun as it appears after the first word of a sentence.
func (p Pronoun) Inline() string {
	if strings.EqualFold(string(p), string(PronounI)) {
		return "I"
	}
	return strings.ToLower(string(p))
}

// IsThirdPersonSingular reports whether p is he, she or it.
func (p Pronoun) IsThirdPersonSingular() bool {
	switch Pronoun(strings.ToLower(string(p))) {
	case PronounHe, PronounShe, PronounIt:
		return true
	}
	return false
}

func (p Pronoun) IsValid() bool {
	_, err := ParsePronoun(string(p))
	return err == nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
