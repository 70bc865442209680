package skills

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	reDelimiters = regexp.MustCompile(`[,;|\n\r\t]+`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// Normalize returns the ordered skill tokens of in. Duplicates are kept.
// degraded is true when a JSON value could not be parsed and the whole value
// was treated as a single free-text token.
func Normalize(in Input) (tokens []string, degraded bool) {
	switch in.kind {
	case KindJSON:
		names, err := parseJSON(in.text)
		if err != nil {
			return appendToken(nil, in.text), true
		}
		return tokensOf(names), false
	case KindList:
		return tokensOf(in.list), false
	case KindStructured:
		names := make([]string, 0, len(in.structured))
		for _, s := range in.structured {
			names = append(names, s.Name)
		}
		return tokensOf(names), false
	default:
		return tokensOf(reDelimiters.Split(in.text, -1)), false
	}
}

// Token canonicalises one skill name: lowercase, trimmed, punctuation other
// than '#', '+' and '-' removed, inner whitespace joined with '-'.
func Token(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '#', r == '+', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	token := strings.TrimSpace(reSpaces.ReplaceAllString(b.String(), " "))
	return strings.Trim(strings.ReplaceAll(token, " ", "-"), "-")
}

func tokensOf(names []string) []string {
	tokens := make([]string, 0, len(names))
	for _, n := range names {
		tokens = appendToken(tokens, n)
	}
	return tokens
}

func appendToken(tokens []string, name string) []string {
	if t := Token(name); t != "" {
		tokens = append(tokens, t)
	}
	return tokens
}

func parseJSON(raw string) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			names = append(names, name)
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err == nil {
			names = append(names, skillFromMap(obj).Name)
			continue
		}

		var scalar any
		if err := json.Unmarshal(item, &scalar); err != nil {
			return nil, err
		}
		if scalar != nil {
			names = append(names, fmt.Sprintf("%v", scalar))
		}
	}
	return names, nil
}
