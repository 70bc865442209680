package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var ErrUnknownKind = errors.New("unknown entity kind")

var validate = validator.New()

// Document is the decoded content of an input file. Items that could not be
// decoded are reported in Skipped and never abort the rest.
type Document struct {
	People   []Person
	Openings []Opening
	Skipped  []error
}

// Decode turns one loosely-typed item into a Person or an Opening depending
// on its "kind". Scalars are converted weakly, so "5" decodes as 5.
func Decode(item map[string]any) (any, error) {
	raw, _ := item["kind"].(string)
	kind := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))

	var rec any
	switch kind {
	case KindCandidate:
		rec = &Candidate{}
	case KindApplication:
		rec = &Application{}
	case KindTalentPool:
		rec = &TalentPoolSnapshot{}
	case KindJob:
		rec = &Job{}
	case KindCustomerRequirement:
		rec = &CustomerRequirement{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           rec,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(item); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if err := validate.Struct(rec); err != nil {
		return nil, fmt.Errorf("validate %s: %w", kind, err)
	}

	switch r := rec.(type) {
	case *Candidate:
		return *r, nil
	case *Application:
		return *r, nil
	case *TalentPoolSnapshot:
		return *r, nil
	case *Job:
		return *r, nil
	default:
		return *rec.(*CustomerRequirement), nil
	}
}

// DecodeAll decodes items in order. Records without an ID get a positional
// one such as "job-3".
func DecodeAll(items []map[string]any) Document {
	var doc Document
	for i, item := range items {
		rec, err := Decode(item)
		if err != nil {
			doc.Skipped = append(doc.Skipped, fmt.Errorf("item %d: %w", i+1, err))
			continue
		}
		switch r := withDefaultID(rec, i+1).(type) {
		case Person:
			doc.People = append(doc.People, r)
		case Opening:
			doc.Openings = append(doc.Openings, r)
		}
	}
	return doc
}

// LoadFile reads the "items" list of a yaml, json or toml file.
func LoadFile(path string) (Document, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	var items []map[string]any
	if err := v.UnmarshalKey("items", &items); err != nil {
		return Document{}, fmt.Errorf("decode items of %s: %w", path, err)
	}
	return DecodeAll(items), nil
}

func withDefaultID(rec any, n int) any {
	id := func(current string, kind Kind) string {
		if strings.TrimSpace(current) != "" {
			return current
		}
		return fmt.Sprintf("%s-%d", kind, n)
	}

	switch r := rec.(type) {
	case Candidate:
		r.ID = id(r.ID, KindCandidate)
		return r
	case Application:
		r.ID = id(firstNonEmpty(r.ID, r.Candidate.ID), KindApplication)
		return r
	case TalentPoolSnapshot:
		r.ID = id(r.ID, KindTalentPool)
		return r
	case Job:
		r.ID = id(r.ID, KindJob)
		return r
	case CustomerRequirement:
		r.ID = id(r.ID, KindCustomerRequirement)
		return r
	}
	return rec
}
