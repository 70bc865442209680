package entity

import (
	"strings"

	"github.com/spigell/talent-match/internal/experience"
	"github.com/spigell/talent-match/internal/skills"
	"github.com/spigell/talent-match/internal/workmodel"
)

// Candidate is a person in the applicant database.
type Candidate struct {
	ID              string             `mapstructure:"id" validate:"max=128"`
	FirstName       string             `mapstructure:"first_name"`
	LastName        string             `mapstructure:"last_name"`
	Skills          any                `mapstructure:"skills"`
	Location        string             `mapstructure:"location"`
	PostalCode      any                `mapstructure:"postal_code"`
	OpenToRemote    bool               `mapstructure:"open_to_remote"`
	ExperienceYears any                `mapstructure:"experience_years"`
	Experience      string             `mapstructure:"experience"`
	History         []experience.Entry `mapstructure:"work_history"`
	Education       string             `mapstructure:"education"`
	WorkModel       string             `mapstructure:"work_model"`
	FullTime        bool               `mapstructure:"full_time"`
	PartTime        bool               `mapstructure:"part_time"`
	Freelance       bool               `mapstructure:"freelance"`
}

// Profile never fails: fields that cannot be read are degraded and
// explained in Notes.
func (c Candidate) Profile() Profile {
	loc, locNotes := looseLocation(c.PostalCode, c.Location, c.OpenToRemote)
	exp, expNotes := experienceSource(c.ExperienceYears, c.Experience, c.History)
	return Profile{
		ID:         c.ID,
		Kind:       KindCandidate,
		Name:       strings.Join(nonEmpty(c.FirstName, c.LastName), " "),
		Skills:     skills.FromAny(c.Skills),
		Location:   loc,
		Experience: exp,
		Education:  c.Education,
		WorkModel:  c.WorkModel,
		WorkFlags:  workmodel.Flags{FullTime: c.FullTime, PartTime: c.PartTime, Project: c.Freelance},
		Notes:      append(locNotes, expNotes...),
	}
}

// Application is a candidate applying to one job. Skills listed on the
// application replace the candidate's when present.
type Application struct {
	ID        string    `mapstructure:"id" validate:"max=128"`
	JobID     string    `mapstructure:"job_id"`
	Candidate Candidate `mapstructure:"candidate"`
	Skills    any       `mapstructure:"skills"`
	Education string    `mapstructure:"education"`
	WorkModel string    `mapstructure:"work_model"`
}

func (a Application) Profile() Profile {
	p := a.Candidate.Profile()
	p.ID = firstNonEmpty(a.ID, a.Candidate.ID)
	p.Kind = KindApplication
	p.AppliedTo = a.JobID
	if in := skills.FromAny(a.Skills); !in.IsEmpty() {
		p.Skills = in
	}
	p.Education = firstNonEmpty(a.Education, p.Education)
	p.WorkModel = firstNonEmpty(a.WorkModel, p.WorkModel)
	return p
}

// TalentPoolSnapshot is a frozen copy of a pooled profile.
type TalentPoolSnapshot struct {
	ID              string   `mapstructure:"id" validate:"max=128"`
	Pool            string   `mapstructure:"pool"`
	Name            string   `mapstructure:"name"`
	Tags            []string `mapstructure:"tags"`
	Skills          any      `mapstructure:"skills"`
	Location        string   `mapstructure:"location"`
	OpenToRemote    bool     `mapstructure:"open_to_remote"`
	ExperienceYears any      `mapstructure:"experience_years"`
	Summary         string   `mapstructure:"summary"`
	Education       string   `mapstructure:"education"`
	Availability    string   `mapstructure:"availability"`
}

// Profile falls back to the pool tags when no skills were captured.
func (t TalentPoolSnapshot) Profile() Profile {
	in := skills.FromAny(t.Skills)
	if in.IsEmpty() && len(t.Tags) > 0 {
		in = skills.List(t.Tags...)
	}
	exp, notes := experienceSource(t.ExperienceYears, t.Summary, nil)
	return Profile{
		ID:         t.ID,
		Kind:       KindTalentPool,
		Name:       t.Name,
		Skills:     in,
		Location:   joinLocation("", t.Location, t.OpenToRemote),
		Experience: exp,
		Education:  t.Education,
		WorkModel:  t.Availability,
		Notes:      notes,
	}
}

// Job is a published position.
type Job struct {
	ID              string   `mapstructure:"id" validate:"max=128"`
	Title           string   `mapstructure:"title"`
	Description     string   `mapstructure:"description"`
	Skills          any      `mapstructure:"required_skills"`
	Location        string   `mapstructure:"location"`
	PostalCode      any      `mapstructure:"postal_code"`
	RemoteAllowed   bool     `mapstructure:"remote_allowed"`
	ExperienceYears any      `mapstructure:"experience_years"`
	Experience      string   `mapstructure:"experience"`
	Education       string   `mapstructure:"education"`
	EmploymentType  string   `mapstructure:"employment_type"`
}

// Requirement reads the experience requirement from the description when
// no dedicated field is filled.
func (j Job) Requirement() Requirement {
	loc, locNotes := looseLocation(j.PostalCode, j.Location, false)
	exp, expNotes := experienceSource(j.ExperienceYears, firstNonEmpty(j.Experience, j.Description), nil)
	return Requirement{
		ID:            j.ID,
		Kind:          KindJob,
		Title:         j.Title,
		Skills:        skills.FromAny(j.Skills),
		Location:      loc,
		RemoteAllowed: j.RemoteAllowed,
		Experience:    exp,
		Education:     j.Education,
		WorkModel:     j.EmploymentType,
		Notes:         append(locNotes, expNotes...),
	}
}

// CustomerRequirement is a staffing request from a client.
type CustomerRequirement struct {
	ID              string   `mapstructure:"id" validate:"max=128"`
	Customer        string   `mapstructure:"customer"`
	Title           string   `mapstructure:"title"`
	Skills          any      `mapstructure:"skills"`
	Location        string   `mapstructure:"location"`
	Remote          bool     `mapstructure:"remote"`
	ExperienceYears any      `mapstructure:"experience_years"`
	Experience      string   `mapstructure:"experience"`
	Education       string   `mapstructure:"education"`
	WorkModel       string   `mapstructure:"work_model"`
	FullTime        bool     `mapstructure:"full_time"`
	PartTime        bool     `mapstructure:"part_time"`
	Project         bool     `mapstructure:"project"`
}

func (c CustomerRequirement) Requirement() Requirement {
	title := c.Title
	if c.Customer != "" && title != "" {
		title = c.Customer + ": " + title
	}
	exp, notes := experienceSource(c.ExperienceYears, c.Experience, nil)
	return Requirement{
		ID:            c.ID,
		Kind:          KindCustomerRequirement,
		Title:         firstNonEmpty(title, c.Customer),
		Skills:        skills.FromAny(c.Skills),
		Location:      c.Location,
		RemoteAllowed: c.Remote,
		Experience:    exp,
		Education:     c.Education,
		WorkModel:     c.WorkModel,
		WorkFlags:     workmodel.Flags{FullTime: c.FullTime, PartTime: c.PartTime, Project: c.Project},
		Notes:         notes,
	}
}
