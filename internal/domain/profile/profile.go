package profile

import (
	"context"
	"errors"
	"fmt"
)

type SkillLevel string

const (
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

var ErrInvalidSkillLevel = errors.New("skill level must be Intermediate, Advanced or Expert")

func ParseSkillLevel(s string) (SkillLevel, error) {
	switch l := SkillLevel(s); l {
	case LevelIntermediate, LevelAdvanced, LevelExpert:
		return l, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidSkillLevel, s)
}

// Percent is the filled proportion of the skill bar.
func (l SkillLevel) Percent() int {
	switch l {
	case LevelExpert:
		return 92
	case LevelAdvanced:
		return 74
	default:
		return 48
	}
}

type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Years       string `json:"years"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type ExperienceEntry struct {
	Role    string   `json:"role"`
	Company string   `json:"company"`
	Period  string   `json:"period"`
	Details []string `json:"details"`
}

type Contact struct {
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Stat is a small label/value card shown in the hero section.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Profile struct {
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Bio            string            `json:"bio"`
	ImageRef       string            `json:"image_ref,omitempty"`
	Location       string            `json:"location"`
	Availability   string            `json:"availability"`
	Highlights     string            `json:"highlights"`
	LatestProject  string            `json:"latest_project"`
	ResumeURL      string            `json:"resume_url"`
	Contact        Contact           `json:"contact"`
	Stats          []Stat            `json:"stats"`
	Skills         []Skill           `json:"skills"`
	Certifications []Certification   `json:"certifications"`
	Education      []EducationEntry  `json:"education"`
	Projects       []Project         `json:"projects"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
}

// Clone returns a deep copy so callers can never mutate the shared profile.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Stats = append([]Stat(nil), p.Stats...)
	c.Skills = append([]Skill(nil), p.Skills...)
	c.Certifications = append([]Certification(nil), p.Certifications...)
	c.Education = append([]EducationEntry(nil), p.Education...)
	c.Projects = append([]Project(nil), p.Projects...)
	if p.Experience != nil {
		c.Experience = make([]ExperienceEntry, len(p.Experience))
		for i, e := range p.Experience {
			e.Details = append([]string(nil), e.Details...)
			c.Experience[i] = e
		}
	}
	return &c
}

type Repository interface {
	Get(ctx context.Context) (*Profile, error)
}
