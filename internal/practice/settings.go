package practice

import (
	"fmt"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

// DefaultVerbCount is the number of leading catalog verbs practiced when nothing else is configured.
const DefaultVerbCount = 5

// Settings restricts what a practice session samples from.
type Settings struct {
	VerbCount int
	Pronouns  []conjugation.Pronoun
	Tenses    []conjugation.Tense
	Forms     []conjugation.Form
}

// DefaultSettings practices every pronoun, tense and form with the first verbs of the catalog.
func DefaultSettings(lexicon *conjugation.Lexicon) Settings {
	return Settings{
		VerbCount: min(DefaultVerbCount, lexicon.Len()),
		Pronouns:  conjugation.Pronouns(),
		Tenses:    conjugation.Tenses(),
		Forms:     conjugation.Forms(),
	}
}

// Validate checks the settings against the catalog.
func (s Settings) Validate(lexicon *conjugation.Lexicon) error {
	if _, err := lexicon.FirstN(s.VerbCount); err != nil {
		return err
	}
	if len(s.Pronouns) == 0 {
		return fmt.Errorf("%w: no pronouns", ErrEmptySelection)
	}
	if len(s.Tenses) == 0 {
		return fmt.Errorf("%w: no tenses", ErrEmptySelection)
	}
	if len(s.Forms) == 0 {
		return fmt.Errorf("%w: no forms", ErrEmptySelection)
	}
	for _, p := range s.Pronouns {
		if !p.IsValid() {
			return fmt.Errorf("%w: %q", conjugation.ErrUnknownPronoun, p)
		}
	}
	for _, t := range s.Tenses {
		if !t.IsValid() {
			return fmt.Errorf("%w: %q", conjugation.ErrUnknownTense, t)
		}
	}
	for _, f := range s.Forms {
		if !f.IsValid() {
			return fmt.Errorf("%w: %q", conjugation.ErrUnknownForm, f)
		}
	}
	return nil
}

// ParseSettings converts names from configuration or flags into Settings.
// Empty name lists select every value of the enumeration.
func ParseSettings(verbCount int, pronouns, tenses, forms []string) (Settings, error) {
	settings := Settings{VerbCount: verbCount}

	if len(pronouns) == 0 {
		settings.Pronouns = conjugation.Pronouns()
	}
	for _, name := range pronouns {
		p, err := conjugation.ParsePronoun(name)
		if err != nil {
			return Settings{}, err
		}
		settings.Pronouns = append(settings.Pronouns, p)
	}

	if len(tenses) == 0 {
		settings.Tenses = conjugation.Tenses()
	}
	for _, name := range tenses {
		t, err := conjugation.ParseTense(name)
		if err != nil {
			return Settings{}, err
		}
		settings.Tenses = append(settings.Tenses, t)
	}

	if len(forms) == 0 {
		settings.Forms = conjugation.Forms()
	}
	for _, name := range forms {
		f, err := conjugation.ParseForm(name)
		if err != nil {
			return Settings{}, err
		}
		settings.Forms = append(settings.Forms, f)
	}
	return settings, nil
}
