package conjugation

import (
	"errors"
	"fmt"
	"strings"
)

// Form is the grammatical shape of a phrase.
type Form string

const (
	FormAffirmative Form = "affirmative"
	FormNegative    Form = "negative"
	FormQuestion    Form = "question"
)

var (
	ErrUnknownForm = errors.New("unknown form")
)

var allForms = []Form{FormAffirmative, FormNegative, FormQuestion}

// Forms returns every supported form in display order
func Forms() []Form {
	return append([]Form(nil), allForms...)
}

func ParseForm(s string) (Form, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, f := range allForms {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownForm, s)
}

func (f Form) IsValid() bool {
	switch f {
	case FormAffirmative, FormNegative, FormQuestion:
		return true
	}
	return false
}
