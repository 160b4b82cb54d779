package practice

import "strings"

// Normalize trims, collapses whitespace, strips trailing . ! ? and lower-cases s.
func Normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, ".!?")
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// GradeAnswer reports whether the user's text matches the expected answer
// ignoring case, extra whitespace and trailing punctuation.
func GradeAnswer(userText, answer string) bool {
	return Normalize(userText) == Normalize(answer)
}
