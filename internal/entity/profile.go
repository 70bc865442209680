// Package entity adapts the records a recruiting system stores (candidates,
// applications, talent-pool snapshots, jobs and customer requirements) to
// the two shapes the matching engine scores.
package entity

import (
	"strings"

	"github.com/spigell/talent-match/internal/experience"
	"github.com/spigell/talent-match/internal/skills"
	"github.com/spigell/talent-match/internal/workmodel"
)

// Kind names a record type in input documents.
type Kind string

const (
	KindCandidate           Kind = "candidate"
	KindApplication         Kind = "application"
	KindTalentPool          Kind = "talent_pool"
	KindJob                 Kind = "job"
	KindCustomerRequirement Kind = "customer_requirement"
)

// Profile is what the engine knows about a person being scored.
type Profile struct {
	ID         string
	Kind       Kind
	Name       string
	AppliedTo  string
	Skills     skills.Input
	Location   string
	Experience experience.Source
	Education  string
	WorkModel  string
	WorkFlags  workmodel.Flags
	// Notes explain fields that were degraded while reading the record.
	Notes      []string
}

// Requirement is what the engine knows about a position.
type Requirement struct {
	ID            string
	Kind          Kind
	Title         string
	Skills        skills.Input
	Location      string
	RemoteAllowed bool
	Experience    experience.Source
	Education     string
	WorkModel     string
	WorkFlags     workmodel.Flags
	Notes         []string
}

// Person is implemented by every record that can be scored against a position.
type Person interface {
	Profile() Profile
}

// Opening is implemented by every record that describes a position.
type Opening interface {
	Requirement() Requirement
}

// joinLocation builds "10115 Berlin" style text and appends a remote hint
// for people who are open to remote work.
func joinLocation(postal, location string, remote bool) string {
	loc := strings.TrimSpace(strings.Join(nonEmpty(postal, location), " "))
	if remote {
		return strings.Join(nonEmpty(loc, "remote"), ", ")
	}
	return loc
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
