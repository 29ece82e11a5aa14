package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/studykit/matchgrid/internal/deck"
)

// deckSchema constrains authored deck files. Every deck is a name plus a
// list of cards; each card maps side identifiers to string values.
const deckSchema = `
#Card: {[string]: string}

#Deck: {
	name: string & !=""
	cards: [...#Card]
}

deck?: [ID=string]: #Deck
`

// LoadMode controls how errors are handled during deck loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading decks from a directory.
type LoadResult struct {
	Decks     []deck.Deck
	FileCount int // Number of CUE files found
}

// LoadError represents an error that occurred during deck loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	// Deck validation errors
	ErrCodeDeckSchema = "E101" // Deck does not satisfy the schema
	ErrCodeDeckEmpty  = "E102" // Deck has no cards
	ErrCodeDeckDecode = "E103" // Deck value could not be decoded

	// Session/database errors
	ErrCodeDeckUnknown = "E201" // Deck id not found in the library
	ErrCodeStore       = "E202" // Database failure
)

// LoadDecks loads deck definitions from a directory of CUE files,
// validating every deck against the embedded schema. The files must share
// a package clause; CUE only assembles package-less files when they are
// listed individually.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadDecks(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("deck directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing deck directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	// Unify with the schema so malformed decks fail validation with
	// positions pointing at the authored file.
	schema := ctx.CompileString(deckSchema)
	if err := schema.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling deck schema: %v", err)}}
	}
	value = value.Unify(schema)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		errs = append(errs, &LoadError{Code: ErrCodeDeckSchema, Message: err.Error()})
		if mode == LoadModeFailFast {
			return &LoadResult{FileCount: len(cueFiles)}, errs
		}
	}

	result := &LoadResult{FileCount: len(cueFiles)}

	decksVal := value.LookupPath(cue.ParsePath("deck"))
	if decksVal.Exists() {
		iter, iterErr := decksVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating decks: %v", iterErr)})
			return result, errs
		}
		for iter.Next() {
			d, decodeErrs := decodeDeck(iter.Label(), iter.Value())
			if len(decodeErrs) > 0 {
				errs = append(errs, decodeErrs...)
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}
			result.Decks = append(result.Decks, d)
		}
	}

	if len(result.Decks) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no decks found in CUE files"})
	}

	return result, errs
}

// decodeDeck converts one CUE deck value into the engine's deck type.
func decodeDeck(id string, v cue.Value) (deck.Deck, []error) {
	var def struct {
		Name  string              `json:"name"`
		Cards []map[string]string `json:"cards"`
	}
	if err := v.Decode(&def); err != nil {
		return deck.Deck{}, []error{&LoadError{
			Code:    ErrCodeDeckDecode,
			Message: fmt.Sprintf("deck %s: %v", id, err),
			Pos:     v.Pos(),
		}}
	}

	if len(def.Cards) == 0 {
		return deck.Deck{}, []error{&LoadError{
			Code:    ErrCodeDeckEmpty,
			Message: fmt.Sprintf("deck %s has no cards", id),
			Pos:     v.Pos(),
		}}
	}

	d := deck.Deck{ID: id, Name: def.Name}
	for _, sides := range def.Cards {
		d.Cards = append(d.Cards, deck.Card{Sides: sides})
	}
	return d, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
