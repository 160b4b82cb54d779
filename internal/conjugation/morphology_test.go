package conjugation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeIng(t *testing.T) {
	tests := []struct {
		name string
		verb string
		want string
	}{
		{name: "ie becomes ying", verb: "tie", want: "tying"},
		{name: "ie wins over silent e", verb: "lie", want: "lying"},
		{name: "silent e is dropped", verb: "live", want: "living"},
		{name: "silent e after two consonants", verb: "close", want: "closing"},
		{name: "be keeps its e", verb: "be", want: "being"},
		{name: "consonant vowel consonant doubles", verb: "stop", want: "stopping"},
		{name: "three letter verb doubles", verb: "run", want: "running"},
		{name: "ends in y is not doubled", verb: "play", want: "playing"},
		{name: "ends in x is not doubled", verb: "fix", want: "fixing"},
		{name: "ends in w is not doubled", verb: "snow", want: "snowing"},
		{name: "two vowels before consonant", verb: "read", want: "reading"},
		{name: "two consonants at the end", verb: "work", want: "working"},
		{name: "only the last three letters are examined", verb: "open", want: "openning"},
		{name: "shorter than three letters", verb: "go", want: "going"},
		{name: "single letter", verb: "a", want: "aing"},
		{name: "empty", verb: "", want: "ing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeIng(tt.verb))
		})
	}
}

func TestThirdPersonSingular(t *testing.T) {
	tests := []struct {
		verb string
		want string
	}{
		{verb: "work", want: "works"},
		{verb: "play", want: "plays"},
		{verb: "watch", want: "watches"},
		{verb: "wash", want: "washes"},
		{verb: "fix", want: "fixes"},
		{verb: "miss", want: "misses"},
		{verb: "buzz", want: "buzzes"},
		{verb: "go", want: "goes"},
		{verb: "do", want: "does"},
		{verb: "study", want: "studies"},
		{verb: "try", want: "tries"},
		{verb: "have", want: "has"},
	}

	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			assert.Equal(t, tt.want, ThirdPersonSingular(tt.verb))
		})
	}
}
