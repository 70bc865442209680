package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Ranking is an ordered list of scored pairs produced by one run.
type Ranking struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Items       []Details `json:"items"`
}

// NewRanking wraps items, already sorted best first, with a fresh run ID.
func NewRanking(items []Details) *Ranking {
	return &Ranking{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Items:       items,
	}
}

func (r *Ranking) Len() int {
	return len(r.Items)
}

// Exclude removes every pair drop reports true for and returns their keys.
// The order of the remaining pairs is kept.
func (r *Ranking) Exclude(drop func(Details) bool) []string {
	var excluded []string
	kept := r.Items[:0]
	for _, d := range r.Items {
		if drop(d) {
			excluded = append(excluded, d.Key())
			continue
		}
		kept = append(kept, d)
	}
	r.Items = kept
	return excluded
}

// Positions lists position IDs in order of first appearance.
func (r *Ranking) Positions() []string {
	seen := map[string]bool{}
	var ids []string
	for _, d := range r.Items {
		if !seen[d.PositionID] {
			seen[d.PositionID] = true
			ids = append(ids, d.PositionID)
		}
	}
	return ids
}

// ReportByPosition groups pairs under "title (id)" keys, best first.
func (r *Ranking) ReportByPosition() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, d := range r.Items {
		key := fmt.Sprintf("%s (%s)", d.PositionTitle, d.PositionID)
		report[key] = append(report[key], map[string]string{
			"entity":     d.EntityID,
			"name":       d.EntityName,
			"overall":    strconv.FormatFloat(d.Overall, 'f', 2, 64),
			"skills":     strconv.FormatFloat(d.Skills.Score, 'f', 2, 64),
			"location":   d.Location.Reason,
			"experience": fmt.Sprintf("%g/%g years", d.Experience.ActualYears, d.Experience.RequiredYears),
			"education":  d.Education.Actual + "/" + d.Education.Required,
			"work_model": d.WorkModel.Preferred + "/" + d.WorkModel.Required,
		})
	}
	return report
}

func (r *Ranking) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToExcluded turns the current pairs into exclusion records.
func (r *Ranking) ToExcluded(at time.Time) *ExcludedPairs {
	excluded := &ExcludedPairs{}
	for _, d := range r.Items {
		excluded.Items = append(excluded.Items, &ExcludedPair{
			EntityID:   d.EntityID,
			PositionID: d.PositionID,
			Overall:    d.Overall,
			ExcludedAt: at.UTC(),
		})
	}
	return excluded
}

// ExcludedPairs are pairs a recruiter already handled and does not want to
// see in later runs.
type ExcludedPairs struct {
	Items []*ExcludedPair
}

type ExcludedPair struct {
	EntityID   string
	PositionID string
	Overall    float64
	ExcludedAt time.Time
}

// ExcludedPairsFromFile reads an exclude file. A missing or empty file
// holds no pairs.
func ExcludedPairsFromFile(path string) (*ExcludedPairs, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedPairs{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &ExcludedPairs{}, nil
	}

	var excluded ExcludedPairs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &excluded, nil
}

func (e *ExcludedPairs) Append(other *ExcludedPairs) {
	e.Items = append(e.Items, other.Items...)
}

// Keys returns the set of excluded pair keys.
func (e *ExcludedPairs) Keys() map[string]bool {
	keys := make(map[string]bool, len(e.Items))
	for _, p := range e.Items {
		keys[PairKey(p.EntityID, p.PositionID)] = true
	}
	return keys
}

func (e *ExcludedPairs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
