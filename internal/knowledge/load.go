package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ErrInvalidTables is returned when a knowledge-base file fails validation.
var ErrInvalidTables = errors.New("invalid knowledge tables")

// Load reads a knowledge-base file (yaml, json or toml) and fills every
// section the file leaves empty from Default.
func Load(path string) (Tables, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Tables{}, fmt.Errorf("reading knowledge tables %q: %w", path, err)
	}

	var loaded Tables
	if err := decode(v.AllSettings(), &loaded); err != nil {
		return Tables{}, fmt.Errorf("decoding knowledge tables %q: %w", path, err)
	}

	merged := Merge(Default(), loaded)
	if err := Validate(merged); err != nil {
		return Tables{}, fmt.Errorf("%q: %w", path, err)
	}

	return merged, nil
}

// Merge returns base with every non-empty section of override applied.
func Merge(base, override Tables) Tables {
	if len(override.Synonyms) > 0 {
		base.Synonyms = override.Synonyms
	}
	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}
	if len(override.Regions) > 0 {
		base.Regions = override.Regions
	}
	if len(override.RemoteKeywords) > 0 {
		base.RemoteKeywords = override.RemoteKeywords
	}
	if len(override.HybridKeywords) > 0 {
		base.HybridKeywords = override.HybridKeywords
	}
	if len(override.Education) > 0 {
		base.Education = override.Education
	}
	if len(override.WorkModels) > 0 {
		base.WorkModels = override.WorkModels
	}
	return base
}

// Validate checks table shapes: synonym groups need two tokens, level and
// model keys must be known names.
func Validate(t Tables) error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}
	return nil
}

func decode(input map[string]any, out *Tables) error {
	// viper lowercases keys, so region and category names arrive lowercased.
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
