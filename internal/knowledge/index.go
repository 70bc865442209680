package knowledge

import (
	"sort"
	"strings"

	"github.com/spigell/talent-match/internal/textnorm"
)

// Index is the compiled, read-only form of Tables. It is safe for concurrent use.
type Index struct {
	synonyms   map[string]map[string]struct{}
	categories map[string][]string
	regions    map[string]string
	cities     []string

	remote    []string
	hybrid    []string
	education map[string][]string
	models    map[string][]string
}

// NewIndex compiles t. Skill tokens are expected in SkillToken form and are
// only lowercased; city names are folded so spelling variants resolve.
func NewIndex(t Tables) *Index {
	idx := &Index{
		synonyms:   make(map[string]map[string]struct{}),
		categories: make(map[string][]string),
		regions:    make(map[string]string),
		remote:     clean(t.RemoteKeywords),
		hybrid:     clean(t.HybridKeywords),
		education:  make(map[string][]string, len(t.Education)),
		models:     make(map[string][]string, len(t.WorkModels)),
	}

	for _, group := range t.Synonyms {
		tokens := clean(group)
		for _, a := range tokens {
			for _, b := range tokens {
				if a == b {
					continue
				}
				if idx.synonyms[a] == nil {
					idx.synonyms[a] = make(map[string]struct{})
				}
				idx.synonyms[a][b] = struct{}{}
			}
		}
	}

	for _, name := range sortedKeys(t.Categories) {
		for _, token := range clean(t.Categories[name]) {
			idx.categories[token] = append(idx.categories[token], name)
		}
	}

	for _, name := range sortedKeys(t.Regions) {
		for _, city := range t.Regions[name] {
			folded := textnorm.FoldTransliterated(city)
			if folded == "" {
				continue
			}
			if _, ok := idx.regions[folded]; !ok {
				idx.cities = append(idx.cities, folded)
			}
			idx.regions[folded] = name
		}
	}
	// Longest names first so "bad homburg" wins over "homburg".
	sort.SliceStable(idx.cities, func(i, j int) bool { return len(idx.cities[i]) > len(idx.cities[j]) })

	for level, words := range t.Education {
		idx.education[level] = clean(words)
	}
	for model, words := range t.WorkModels {
		idx.models[model] = clean(words)
	}

	return idx
}

// Synonyms reports whether a and b form a synonym pair.
func (idx *Index) Synonyms(a, b string) bool {
	_, ok := idx.synonyms[a][b]
	return ok
}

// SameCategory returns the first category shared by a and b.
func (idx *Index) SameCategory(a, b string) (string, bool) {
	for _, ca := range idx.categories[a] {
		for _, cb := range idx.categories[b] {
			if ca == cb {
				return ca, true
			}
		}
	}
	return "", false
}

// Region returns the region of the first known city mentioned in text,
// along with the matched city and whether the text consists of the city alone.
func (idx *Index) Region(text string) (region, city string, exact bool) {
	folded := textnorm.FoldTransliterated(text)
	if folded == "" {
		return "", "", false
	}
	if r, ok := idx.regions[folded]; ok {
		return r, folded, true
	}
	words := textnorm.Words(folded)
	for _, c := range idx.cities {
		if textnorm.ContainsPhrase(words, c) {
			return idx.regions[c], c, false
		}
	}
	return "", "", false
}

// RemoteKeywords returns the remote-work vocabulary.
func (idx *Index) RemoteKeywords() []string { return idx.remote }

// HybridKeywords returns the hybrid/partial-remote vocabulary.
func (idx *Index) HybridKeywords() []string { return idx.hybrid }

// EducationKeywords returns the vocabulary of an education level.
func (idx *Index) EducationKeywords(level string) []string { return idx.education[level] }

// WorkModelKeywords returns the vocabulary of a work model.
func (idx *Index) WorkModelKeywords(model string) []string { return idx.models[model] }

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
