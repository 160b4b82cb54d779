package conjugation

import "strings"

const vowels = "aeiou"

func isVowel(c byte) bool {
	return strings.IndexByte(vowels, c) >= 0
}

// MakeIng returns the present participle of verb.
// The first matching rule wins:
//  1. "ie" becomes "ying" (tie -> tying)
//  2. a final "e" is dropped, except for "be" (live -> living)
//  3. consonant-vowel-consonant endings double the last letter unless it is w, x or y (stop -> stopping)
//  4. "ing" is appended
func MakeIng(verb string) string {
	switch {
	case strings.HasSuffix(verb, "ie"):
		return verb[:len(verb)-2] + "ying"
	case strings.HasSuffix(verb, "e") && verb != "be":
		return verb[:len(verb)-1] + "ing"
	case endsWithDoublingCVC(verb):
		return verb + verb[len(verb)-1:] + "ing"
	default:
		return verb + "ing"
	}
}

// endsWithDoublingCVC only looks at the last three letters.
func endsWithDoublingCVC(verb string) bool {
	if len(verb) < 3 {
		return false
	}
	tail := verb[len(verb)-3:]
	if isVowel(tail[0]) || !isVowel(tail[1]) || isVowel(tail[2]) {
		return false
	}
	return strings.IndexByte("wxy", tail[2]) < 0
}

// ThirdPersonSingular returns the present simple form used with he, she and it.
func ThirdPersonSingular(verb string) string {
	switch {
	case verb == "have":
		return "has"
	case hasAnySuffix(verb, "s", "x", "z", "ch", "sh", "o"):
		return verb + "es"
	case len(verb) >= 2 && strings.HasSuffix(verb, "y") && !isVowel(verb[len(verb)-2]):
		return verb[:len(verb)-1] + "ies"
	default:
		return verb + "s"
	}
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
