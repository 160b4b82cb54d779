package conjugation

import (
	"fmt"
	"strings"
)

// Construct builds the phrase for a pronoun, base verb, tense and form.
//
//	Construct("she", "work", TensePresentSimple, FormAffirmative)   // "She works"
//	Construct("I", "work", TensePresentSimple, FormNegative)        // "I don't work"
//	Construct("they", "work", TenseFutureContinuous, FormQuestion)  // "Will they be working?"
func (l *Lexicon) Construct(pronoun Pronoun, verb string, tense Tense, form Form) (string, error) {
	if !tense.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTense, tense)
	}

	switch form {
	case FormAffirmative:
		return l.affirmative(pronoun, verb, tense), nil
	case FormNegative:
		return l.negative(pronoun, verb, tense), nil
	case FormQuestion:
		return l.question(pronoun, verb, tense), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
}

func (l *Lexicon) affirmative(pronoun Pronoun, verb string, tense Tense) string {
	subject := pronoun.Display()
	switch tense {
	case TensePresentSimple:
		if pronoun.IsThirdPersonSingular() {
			return phrase(subject, ThirdPersonSingular(verb))
		}
		return phrase(subject, verb)
	case TensePastSimple:
		return phrase(subject, l.LookupForms(verb).PastSimple)
	case TenseFutureSimple:
		return phrase(subject, "will", verb)
	default:
		return phrase(subject, Aux(pronoun, tense), l.PresentParticiple(verb))
	}
}

func (l *Lexicon) negative(pronoun Pronoun, verb string, tense Tense) string {
	subject := pronoun.Display()
	switch tense {
	case TensePresentSimple:
		if pronoun.IsThirdPersonSingular() {
			return phrase(subject, "doesn't", verb)
		}
		return phrase(subject, "don't", verb)
	case TensePastSimple:
		return phrase(subject, "didn't", verb)
	case TenseFutureSimple:
		return phrase(subject, "will not", verb)
	default:
		first, rest := splitAux(Aux(pronoun, tense))
		return phrase(subject, first, "not", rest, l.PresentParticiple(verb))
	}
}

func (l *Lexicon) question(pronoun Pronoun, verb string, tense Tense) string {
	subject := pronoun.Inline()
	switch tense {
	case TensePresentSimple:
		if pronoun.IsThirdPersonSingular() {
			return phrase("Does", subject, verb) + "?"
		}
		return phrase("Do", subject, verb) + "?"
	case TensePastSimple:
		return phrase("Did", subject, verb) + "?"
	case TenseFutureSimple:
		return phrase("Will", subject, verb) + "?"
	default:
		first, rest := splitAux(Aux(pronoun, tense))
		return phrase(capitalize(first), subject, rest, l.PresentParticiple(verb)) + "?"
	}
}

// phrase joins non-empty words with single spaces.
func phrase(words ...string) string {
	nonEmpty := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			nonEmpty = append(nonEmpty, w)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Table is every answer of a verb for one pronoun, indexed by tense then form.
type Table map[Tense]map[Form]string

// Conjugate builds the full table of a verb for the pronoun.
func (l *Lexicon) Conjugate(pronoun Pronoun, verb string) (Table, error) {
	table := make(Table, len(allTenses))
	for _, tense := range allTenses {
		table[tense] = make(map[Form]string, len(allForms))
		for _, form := range allForms {
			answer, err := l.Construct(pronoun, verb, tense, form)
			if err != nil {
				return nil, fmt.Errorf("Construct(%s, %s, %s, %s) > %w", pronoun, verb, tense, form, err)
			}
			table[tense][form] = answer
		}
	}
	return table, nil
}
