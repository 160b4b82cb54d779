// Package rapidapi models responses of WordsAPI on RapidAPI.
// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

const PartOfSpeechVerb = "verb"

type Response struct {
	Word          string        `json:"word"`
	Syllables     Syllable      `json:"syllables"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Syllable struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = s
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	TypeOf       []string `json:"typeOf,omitempty"`
	Examples     []string `json:"examples"`
}

// VerbResults returns the results used as a verb.
func (r Response) VerbResults() []Result {
	var results []Result
	for _, result := range r.Results {
		if result.PartOfSpeech == PartOfSpeechVerb {
			results = append(results, result)
		}
	}
	return results
}

// Hint is the first verb definition, or the first definition of any kind.
func (r Response) Hint() string {
	if results := r.VerbResults(); len(results) > 0 {
		return results[0].Definition
	}
	if len(r.Results) > 0 {
		return r.Results[0].Definition
	}
	return ""
}

// Format renders the response as numbered lines for a terminal.
func (r Response) Format() string {
	var builder strings.Builder
	if r.Pronunciation.All != "" {
		fmt.Fprintf(&builder, "%s: /%s/\n", r.Word, r.Pronunciation.All)
	} else {
		builder.WriteString(r.Word + "\n")
	}
	for i, result := range r.Results {
		fmt.Fprintf(&builder, "%d. [%s] %s\n", i+1, result.PartOfSpeech, result.Definition)
		if len(result.Examples) > 0 {
			fmt.Fprintf(&builder, "   Examples: %s\n", strings.Join(result.Examples, ", "))
		}
		if len(result.Synonyms) > 0 {
			fmt.Fprintf(&builder, "   Synonyms: %s\n", strings.Join(result.Synonyms, ", "))
		}
	}
	return builder.String()
}
