package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAux(t *testing.T) {
	tests := []struct {
		name    string
		pronoun Pronoun
		tense   Tense
		want    string
	}{
		{name: "present continuous I", pronoun: PronounI, tense: TensePresentContinuous, want: "am"},
		{name: "present continuous lower case i", pronoun: "i", tense: TensePresentContinuous, want: "am"},
		{name: "present continuous you", pronoun: PronounYou, tense: TensePresentContinuous, want: "are"},
		{name: "present continuous we", pronoun: PronounWe, tense: TensePresentContinuous, want: "are"},
		{name: "present continuous they", pronoun: PronounThey, tense: TensePresentContinuous, want: "are"},
		{name: "present continuous he", pronoun: PronounHe, tense: TensePresentContinuous, want: "is"},
		{name: "present continuous capitalized She", pronoun: "She", tense: TensePresentContinuous, want: "is"},
		{name: "present continuous it", pronoun: PronounIt, tense: TensePresentContinuous, want: "is"},
		{name: "past continuous I", pronoun: PronounI, tense: TensePastContinuous, want: "was"},
		{name: "past continuous they", pronoun: PronounThey, tense: TensePastContinuous, want: "was"},
		{name: "future continuous they", pronoun: PronounThey, tense: TenseFutureContinuous, want: "will be"},
		{name: "future continuous he", pronoun: PronounHe, tense: TenseFutureContinuous, want: "will be"},
		{name: "simple tense has no auxiliary", pronoun: PronounHe, tense: TensePresentSimple, want: ""},
		{name: "unknown tense has no auxiliary", pronoun: PronounHe, tense: "Perfect", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aux(tt.pronoun, tt.tense))
		})
	}
}

func TestSplitAux(t *testing.T) {
	first, rest := splitAux("will be")
	assert.Equal(t, "will", first)
	assert.Equal(t, "be", rest)

	first, rest = splitAux("was")
	assert.Equal(t, "was", first)
	assert.Empty(t, rest)
}
