package entity

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talent-match/internal/experience"
	"github.com/spigell/talent-match/internal/skills"
)

func TestDecodeCandidate(t *testing.T) {
	t.Parallel()

	rec, err := Decode(map[string]any{
		"kind":             "Candidate",
		"id":               "c-1",
		"first_name":       "Anna",
		"last_name":        "Schmidt",
		"skills":           "Go, Kubernetes; PostgreSQL",
		"location":         "Berlin",
		"postal_code":      "10115",
		"open_to_remote":   "true",
		"experience_years": "6",
		"education":        "M.Sc. Informatik",
		"part_time":        true,
	})
	require.NoError(t, err)

	p, ok := rec.(Person)
	require.True(t, ok)
	profile := p.Profile()
	assert.Equal(t, "c-1", profile.ID)
	assert.Equal(t, KindCandidate, profile.Kind)
	assert.Equal(t, "Anna Schmidt", profile.Name)
	assert.Equal(t, "10115 Berlin, remote", profile.Location)
	require.NotNil(t, profile.Experience.Years)
	assert.Equal(t, 6.0, *profile.Experience.Years)
	assert.True(t, profile.WorkFlags.PartTime)

	tokens, degraded := skills.Normalize(profile.Skills)
	assert.False(t, degraded)
	assert.Equal(t, []string{"go", "kubernetes", "postgresql"}, tokens)
}

func TestDecodeApplicationOverridesCandidate(t *testing.T) {
	t.Parallel()

	rec, err := Decode(map[string]any{
		"kind":   "application",
		"id":     "a-7",
		"job_id": "j-1",
		"candidate": map[string]any{
			"id":         "c-1",
			"skills":     []any{"java"},
			"work_model": "Vollzeit",
		},
		"skills": []any{
			map[string]any{"name": "Go", "level": "expert"},
		},
	})
	require.NoError(t, err)

	profile := rec.(Person).Profile()
	assert.Equal(t, "a-7", profile.ID)
	assert.Equal(t, KindApplication, profile.Kind)
	assert.Equal(t, "j-1", profile.AppliedTo)
	assert.Equal(t, "Vollzeit", profile.WorkModel)

	tokens, _ := skills.Normalize(profile.Skills)
	assert.Equal(t, []string{"go"}, tokens)
}

func TestTalentPoolFallsBackToTags(t *testing.T) {
	t.Parallel()

	profile := TalentPoolSnapshot{ID: "tp-1", Tags: []string{"SAP", "Controlling"}}.Profile()
	tokens, _ := skills.Normalize(profile.Skills)
	assert.Equal(t, []string{"sap", "controlling"}, tokens)
	assert.Equal(t, KindTalentPool, profile.Kind)
}

func TestJobRequirement(t *testing.T) {
	t.Parallel()

	rec, err := Decode(map[string]any{
		"kind":            "job",
		"id":              "j-1",
		"title":           "Backend Engineer",
		"description":     "Wir suchen jemanden mit 3-5 Jahren Erfahrung.",
		"required_skills": `["go", "postgresql"]`,
		"location":        "Berlin",
		"remote_allowed":  1,
		"employment_type": "Vollzeit",
	})
	require.NoError(t, err)

	req := rec.(Opening).Requirement()
	assert.Equal(t, "Backend Engineer", req.Title)
	assert.True(t, req.RemoteAllowed)
	assert.Equal(t, skills.KindJSON, req.Skills.Kind())
	assert.Nil(t, req.Experience.Years)
	assert.Contains(t, req.Experience.Text, "3-5 Jahren")
}

func TestCustomerRequirementTitle(t *testing.T) {
	t.Parallel()

	req := CustomerRequirement{ID: "cr-1", Customer: "ACME", Title: "SAP Berater", Project: true}.Requirement()
	assert.Equal(t, "ACME: SAP Berater", req.Title)
	assert.True(t, req.WorkFlags.Project)
	assert.Equal(t, KindCustomerRequirement, req.Kind)
}

func TestDecodeUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Decode(map[string]any{"kind": "invoice"})
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestDecodeDegradesDirtyFields(t *testing.T) {
	t.Parallel()

	doc := DecodeAll([]map[string]any{
		{"kind": "candidate", "id": "c-1", "experience_years": "5 Jahre", "experience": "Backend"},
		{"kind": "candidate", "id": "c-2", "postal_code": "D-10115", "location": "Berlin"},
		{"kind": "candidate", "id": "c-3", "experience_years": -3},
		{"kind": "job", "id": "j-1", "experience_years": 80, "description": "3-5 years of Go"},
		{"kind": "job", "id": "j-2", "postal_code": 10115, "experience_years": "4,5"},
	})
	require.Empty(t, doc.Skipped)
	require.Len(t, doc.People, 3)
	require.Len(t, doc.Openings, 2)

	tests := []struct {
		name     string
		profile  Profile
		years    *float64
		text     string
		location string
		note     string
	}{
		{
			name:    "years given as text",
			profile: doc.People[0].Profile(),
			text:    "5 Jahre; Backend",
			note:    `experience_years "5 Jahre" is not a number, read as experience text`,
		},
		{
			name:     "postal code with country prefix",
			profile:  doc.People[1].Profile(),
			location: "D-10115 Berlin",
			note:     `postal code "D-10115" is not numeric, kept as location text`,
		},
		{
			name:    "negative years",
			profile: doc.People[2].Profile(),
			note:    "experience_years -3 out of range 0-70, ignored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, tt.profile.Experience.Years)
			assert.Equal(t, tt.text, tt.profile.Experience.Text)
			assert.Equal(t, tt.location, tt.profile.Location)
			assert.Equal(t, []string{tt.note}, tt.profile.Notes)
		})
	}

	years, origin := experience.Extract(doc.People[0].Profile().Experience, time.Time{})
	assert.Equal(t, 5.0, years)
	assert.Equal(t, experience.OriginText, origin)

	job := doc.Openings[0].Requirement()
	assert.Nil(t, job.Experience.Years)
	assert.Equal(t, []string{"experience_years 80 out of range 0-70, ignored"}, job.Notes)
	years, _ = experience.Extract(job.Experience, time.Time{})
	assert.Equal(t, 4.0, years)

	clean := doc.Openings[1].Requirement()
	assert.Empty(t, clean.Notes)
	assert.Equal(t, "10115", clean.Location)
	require.NotNil(t, clean.Experience.Years)
	assert.Equal(t, 4.5, *clean.Experience.Years)
}

func TestLooseYears(t *testing.T) {
	t.Parallel()

	v := 3.0
	var nilYears *float64
	tests := []struct {
		name  string
		input any
		years float64
		used  bool
	}{
		{name: "nil", input: nil},
		{name: "nil pointer", input: nilYears},
		{name: "pointer", input: &v, years: 3, used: true},
		{name: "int", input: 7, years: 7, used: true},
		{name: "float", input: 2.5, years: 2.5, used: true},
		{name: "numeric string", input: " 6 ", years: 6, used: true},
		{name: "decimal comma", input: "1,5", years: 1.5, used: true},
		{name: "upper bound", input: 70, years: 70, used: true},
		{name: "too large", input: 71},
		{name: "infinite", input: math.Inf(1)},
		{name: "bool", input: true},
		{name: "empty string", input: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			years, _, _ := looseYears(tt.input)
			if !tt.used {
				assert.Nil(t, years)
				return
			}
			require.NotNil(t, years)
			assert.Equal(t, tt.years, *years)
		})
	}
}

func TestDecodeAllSkipsBadItemsAndAssignsIDs(t *testing.T) {
	t.Parallel()

	doc := DecodeAll([]map[string]any{
		{"kind": "candidate", "skills": "go"},
		{"kind": "unknown"},
		{"kind": "customer-requirement", "title": "Go developer"},
		{"kind": "job", "id": "j-9"},
	})

	require.Len(t, doc.People, 1)
	require.Len(t, doc.Openings, 2)
	require.Len(t, doc.Skipped, 1)
	assert.True(t, errors.Is(doc.Skipped[0], ErrUnknownKind))

	assert.Equal(t, "candidate-1", doc.People[0].Profile().ID)
	assert.Equal(t, "customer_requirement-3", doc.Openings[0].Requirement().ID)
	assert.Equal(t, "j-9", doc.Openings[1].Requirement().ID)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "people.yaml")
	content := `items:
  - kind: candidate
    id: c-1
    skills:
      - name: React
        level: senior
      - name: TypeScript
    location: München
    work_history:
      - title: Frontend
        start: "2018-01"
        end: "2022-01"
  - kind: job
    id: j-1
    required_skills: react, node
    location: Munich
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.People, 1)
	require.Len(t, doc.Openings, 1)
	assert.Empty(t, doc.Skipped)

	profile := doc.People[0].Profile()
	require.Len(t, profile.Experience.History, 1)
	assert.Equal(t, "2018-01", profile.Experience.History[0].Start)

	tokens, _ := skills.Normalize(profile.Skills)
	assert.Equal(t, []string{"react", "typescript"}, tokens)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
