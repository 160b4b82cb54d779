package catalog

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

// File is the YAML representation of a verb catalog.
//
//	verbs: [work, write]
//	irregulars:
//	  write: {past_simple: wrote, past_participle: written}
//	present_participles:
//	  open: opening
//	excluded: [be, can]
type File struct {
	Verbs              []string             `yaml:"verbs" validate:"required,min=1,dive,required,lowercase,alpha"`
	Irregulars         map[string]FileForms `yaml:"irregulars,omitempty" validate:"dive,keys,required,lowercase,alpha,endkeys"`
	PresentParticiples map[string]string    `yaml:"present_participles,omitempty" validate:"dive,keys,required,lowercase,alpha,endkeys,required,lowercase,alpha"`
	Excluded           []string             `yaml:"excluded,omitempty" validate:"dive,required,lowercase,alpha"`
}

type FileForms struct {
	PastSimple     string `yaml:"past_simple" validate:"required,lowercase,alpha"`
	PastParticiple string `yaml:"past_participle" validate:"required,lowercase,alpha"`
}

var (
	ErrInvalidFile = errors.New("invalid catalog file")
)

// ReadFile reads, validates and converts a catalog file into a Lexicon.
func ReadFile(path string) (*conjugation.Lexicon, error) {
	file, err := readYamlFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(file); err != nil {
		return nil, err
	}
	return file.Lexicon()
}

// WriteFile exports a Lexicon, for example the built-in catalog, as YAML.
func WriteFile(path string, lexicon *conjugation.Lexicon) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(FromLexicon(lexicon)); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	return encoder.Close()
}

func readYamlFile(path string) (File, error) {
	var result File

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}

// Validate checks the shape of a catalog file. Consistency rules such as
// excluded verbs appearing in the verb list are reported by Lexicon.
func Validate(file File) error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}
	if err := validate.Struct(file); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(trans))
		}
		return fmt.Errorf("%w: %s", ErrInvalidFile, strings.Join(errorMsgs, ", "))
	}
	return nil
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate, trans, nil
}

// Lexicon converts the file into an immutable Lexicon.
func (file File) Lexicon() (*conjugation.Lexicon, error) {
	irregulars := make(map[string]conjugation.VerbForms, len(file.Irregulars))
	for verb, forms := range file.Irregulars {
		irregulars[verb] = conjugation.VerbForms{
			PastSimple:     forms.PastSimple,
			PastParticiple: forms.PastParticiple,
		}
	}

	lexicon, err := conjugation.NewLexicon(
		file.Verbs,
		irregulars,
		file.Excluded,
		conjugation.WithPresentParticiples(file.PresentParticiples),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return lexicon, nil
}

// FromLexicon is the inverse of File.Lexicon.
func FromLexicon(lexicon *conjugation.Lexicon) File {
	irregulars := make(map[string]FileForms)
	for verb, forms := range lexicon.Irregulars() {
		irregulars[verb] = FileForms{
			PastSimple:     forms.PastSimple,
			PastParticiple: forms.PastParticiple,
		}
	}
	return File{
		Verbs:              lexicon.Verbs(),
		Irregulars:         irregulars,
		PresentParticiples: lexicon.PresentParticiples(),
		Excluded:           lexicon.Excluded(),
	}
}
