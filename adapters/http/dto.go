package http

import (
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/internal/domain/profile"
)

// Profile DTOs
type SkillDTO struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Percent int    `json:"percent"`
}

type ProfileDTO struct {
	Name           string                    `json:"name"`
	Initials       string                    `json:"initials"`
	Title          string                    `json:"title"`
	Bio            string                    `json:"bio"`
	ImageRef       string                    `json:"image_ref,omitempty"`
	Location       string                    `json:"location,omitempty"`
	Availability   string                    `json:"availability,omitempty"`
	Contact        profile.Contact           `json:"contact"`
	Skills         []SkillDTO                `json:"skills"`
	Certifications []profile.Certification   `json:"certifications"`
	Education      []profile.EducationEntry  `json:"education"`
	Projects       []profile.Project         `json:"projects"`
	Experience     []profile.ExperienceEntry `json:"experience,omitempty"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		Name:           p.Name,
		Initials:       avatar.Initials(p.Name),
		Title:          p.Title,
		Bio:            p.Bio,
		ImageRef:       p.ImageRef,
		Location:       p.Location,
		Availability:   p.Availability,
		Contact:        p.Contact,
		Certifications: p.Certifications,
		Education:      p.Education,
		Projects:       p.Projects,
		Experience:     p.Experience,
	}
	dto.Skills = make([]SkillDTO, len(p.Skills))
	for i, s := range p.Skills {
		dto.Skills[i] = SkillDTO{Name: s.Name, Level: string(s.Level), Percent: s.Level.Percent()}
	}
	return dto
}

// Page view DTOs
type ViewStatsDTO struct {
	Total  int64            `json:"total"`
	ByPath map[string]int64 `json:"by_path"`
}
