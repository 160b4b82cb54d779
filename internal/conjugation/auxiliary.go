package conjugation

import "strings"

// Aux returns the "to be" auxiliary of a continuous tense for the pronoun.
// Simple tenses have no auxiliary and yield an empty string.
func Aux(pronoun Pronoun, tense Tense) string {
	switch tense {
	case TensePresentContinuous:
		switch Pronoun(strings.ToLower(string(pronoun))) {
		case "i":
			return "am"
		case PronounHe, PronounShe, PronounIt:
			return "is"
		default:
			return "are"
		}
	case TensePastContinuous:
		return "was"
	case TenseFutureContinuous:
		return "will be"
	default:
		return ""
	}
}

// splitAux separates the first word of an auxiliary from the rest,
// so that "will be" negates as "will not be" and questions as "Will ... be".
func splitAux(aux string) (string, string) {
	first, rest, _ := strings.Cut(aux, " ")
	return first, rest
}
