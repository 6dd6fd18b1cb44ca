package persistence

import (
	"context"

	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/profile"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

// NewProfileRepo loads the configured profile file, or serves DefaultProfile
// when none is set.
func NewProfileRepo(cfg config.Config, log logger.Logger) (profile.Repository, error) {
	if cfg.Profile.Path == "" {
		log.Info("No profile file configured, using built-in profile")
		return NewStaticProfileRepo(DefaultProfile()), nil
	}
	return NewFileProfileRepo(cfg.Profile.Path, log)
}

type staticProfileRepo struct {
	profile *profile.Profile
}

// NewStaticProfileRepo serves one immutable profile. Every Get returns a
// fresh copy.
func NewStaticProfileRepo(p *profile.Profile) profile.Repository {
	return &staticProfileRepo{profile: p.Clone()}
}

func (r *staticProfileRepo) Get(_ context.Context) (*profile.Profile, error) {
	return r.profile.Clone(), nil
}

// DefaultProfile is the built-in page content used when no profile file is
// configured.
func DefaultProfile() *profile.Profile {
	return &profile.Profile{
		Name:          "Your Name",
		Title:         "Senior Software Engineer • Frontend & Backend",
		Bio:           "I build fast, accessible, and delightful web apps. I enjoy crafting pixel-perfect UI, solid architecture, and turning ideas into production.",
		Location:      "Bengaluru, India",
		Availability:  "Open to work",
		Highlights:    "Design systems • Scalable Microservices • Frontend performance",
		LatestProject: "Real-time dashboard",
		ResumeURL:     "#",
		Contact: profile.Contact{
			Email:    "you@example.com",
			LinkedIn: "https://linkedin.com/in/yourprofile",
			GitHub:   "https://github.com/yourprofile",
		},
		Stats: []profile.Stat{
			{Label: "Experience", Value: "5+ yrs"},
			{Label: "Open to", Value: "SWE / Frontend"},
		},
		Skills: []profile.Skill{
			{Name: "React", Level: profile.LevelExpert},
			{Name: "Angular", Level: profile.LevelAdvanced},
			{Name: "Spring Boot", Level: profile.LevelAdvanced},
			{Name: "TypeScript", Level: profile.LevelAdvanced},
			{Name: "Docker & Kubernetes", Level: profile.LevelIntermediate},
			{Name: "AWS / GCP", Level: profile.LevelIntermediate},
		},
		Certifications: []profile.Certification{
			{Title: "AWS Solutions Architect – Associate", Issuer: "Amazon", Year: 2024},
			{Title: "Oracle Certified Java Programmer", Issuer: "Oracle", Year: 2022},
			{Title: "React Professional Certification", Issuer: "Frontend Masters", Year: 2023},
		},
		Education: []profile.EducationEntry{
			{Institution: "Institute of Tech", Degree: "B.Tech in Computer Science", Years: "2016 - 2020"},
		},
		Projects: []profile.Project{
			{Title: "Project One", Description: "A fullstack app with React + Spring Boot. Features realtime updates, auth, and CI/CD.", Link: "#"},
			{Title: "Design System", Description: "A component library used across multiple products with Storybook and unit tests.", Link: "#"},
		},
	}
}
