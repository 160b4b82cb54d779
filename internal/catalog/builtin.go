// Package catalog provides the verb catalog used by practice sessions.
package catalog

import (
	"fmt"
	"sync"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

// builtinVerbs is ordered by how common the verb is, so that a session
// restricted to the first N verbs practices the most useful ones.
var builtinVerbs = []string{
	"work", "talk", "call", "live", "play", "use", "watch", "move", "open", "close",
	"go", "write", "read", "run", "eat", "drink", "speak", "make", "take", "get",
	"give", "come", "see", "buy", "sleep", "swim", "drive", "sit", "stop", "study",
	"try", "help", "listen", "visit", "travel", "wait", "cook", "clean", "dance", "sing",
	"teach", "learn", "walk", "carry", "tie", "fix",
}

// builtinIrregulars lists every verb whose past forms are not verb+"ed",
// including regular verbs with spelling changes.
var builtinIrregulars = map[string]conjugation.VerbForms{
	"live":   {PastSimple: "lived", PastParticiple: "lived"},
	"use":    {PastSimple: "used", PastParticiple: "used"},
	"move":   {PastSimple: "moved", PastParticiple: "moved"},
	"close":  {PastSimple: "closed", PastParticiple: "closed"},
	"go":     {PastSimple: "went", PastParticiple: "gone"},
	"write":  {PastSimple: "wrote", PastParticiple: "written"},
	"read":   {PastSimple: "read", PastParticiple: "read"},
	"run":    {PastSimple: "ran", PastParticiple: "run"},
	"eat":    {PastSimple: "ate", PastParticiple: "eaten"},
	"drink":  {PastSimple: "drank", PastParticiple: "drunk"},
	"speak":  {PastSimple: "spoke", PastParticiple: "spoken"},
	"make":   {PastSimple: "made", PastParticiple: "made"},
	"take":   {PastSimple: "took", PastParticiple: "taken"},
	"get":    {PastSimple: "got", PastParticiple: "gotten"},
	"give":   {PastSimple: "gave", PastParticiple: "given"},
	"come":   {PastSimple: "came", PastParticiple: "come"},
	"see":    {PastSimple: "saw", PastParticiple: "seen"},
	"buy":    {PastSimple: "bought", PastParticiple: "bought"},
	"sleep":  {PastSimple: "slept", PastParticiple: "slept"},
	"swim":   {PastSimple: "swam", PastParticiple: "swum"},
	"drive":  {PastSimple: "drove", PastParticiple: "driven"},
	"sit":    {PastSimple: "sat", PastParticiple: "sat"},
	"stop":   {PastSimple: "stopped", PastParticiple: "stopped"},
	"study":  {PastSimple: "studied", PastParticiple: "studied"},
	"try":    {PastSimple: "tried", PastParticiple: "tried"},
	"travel": {PastSimple: "traveled", PastParticiple: "traveled"},
	"dance":  {PastSimple: "danced", PastParticiple: "danced"},
	"sing":   {PastSimple: "sang", PastParticiple: "sung"},
	"teach":  {PastSimple: "taught", PastParticiple: "taught"},
	"carry":  {PastSimple: "carried", PastParticiple: "carried"},
	"tie":    {PastSimple: "tied", PastParticiple: "tied"},
}

// builtinPresentParticiples covers verbs the -ing spelling rules get wrong:
// unstressed final syllables and "see".
var builtinPresentParticiples = map[string]string{
	"open":   "opening",
	"listen": "listening",
	"visit":  "visiting",
	"travel": "traveling",
	"see":    "seeing",
}

// builtinExcluded are modal and stative verbs that are not practiced
// because they have no continuous form or do not follow the trainer's templates.
var builtinExcluded = []string{
	"be", "can", "could", "may", "might", "must", "shall", "should", "will", "would",
	"like", "love", "know", "want", "need", "belong", "seem", "own",
}

var defaultLexicon = sync.OnceValue(func() *conjugation.Lexicon {
	lexicon, err := conjugation.NewLexicon(
		builtinVerbs,
		builtinIrregulars,
		builtinExcluded,
		conjugation.WithPresentParticiples(builtinPresentParticiples),
	)
	if err != nil {
		panic(fmt.Errorf("built-in catalog is invalid: %w", err))
	}
	return lexicon
})

// Default returns the built-in catalog. It is built on first use and shared afterwards.
func Default() *conjugation.Lexicon {
	return defaultLexicon()
}

// Load reads a catalog file, or returns the built-in catalog when path is empty.
func Load(path string) (*conjugation.Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	lexicon, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.ReadFile(%s) > %w", path, err)
	}
	return lexicon, nil
}
