// Package view maps a profile onto the markup model of the portfolio page
// and renders it.
package view

import (
	"time"

	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/internal/domain/profile"
)

// Entrance animations are driven by an external script reading data-delay.
const staggerStep = 60 * time.Millisecond

type NavLink struct {
	Label  string
	Anchor string
}

var navLinks = []NavLink{
	{Label: "About", Anchor: "#about"},
	{Label: "Skills", Anchor: "#skills"},
	{Label: "Certifications", Anchor: "#certs"},
	{Label: "Projects", Anchor: "#projects"},
	{Label: "Contact", Anchor: "#contact"},
}

type Contact struct {
	Mailto   string
	Email    string
	LinkedIn string
	GitHub   string
}

type SkillCard struct {
	Name    string
	Level   string
	Percent int
	DelayMS int64
}

type ProjectCard struct {
	Title       string
	Description string
	Link        string
	DelayMS     int64
}

type Page struct {
	Name          string
	Title         string
	Bio           string
	Location      string
	Availability  string
	Highlights    string
	LatestProject string
	ResumeURL     string
	Brand         avatar.Display
	Hero          avatar.Display
	Nav           []NavLink
	Contact       Contact
	Stats         []profile.Stat
	Skills        []SkillCard
	Certs         []profile.Certification
	Education     []profile.EducationEntry
	Experience    []profile.ExperienceEntry
	Projects      []ProjectCard
	Year          int
}

// Build is a pure mapping from profile data and the two resolved avatars to
// the page model.
func Build(p *profile.Profile, brand, hero avatar.Display, now time.Time) Page {
	page := Page{
		Name:          p.Name,
		Title:         p.Title,
		Bio:           p.Bio,
		Location:      p.Location,
		Availability:  p.Availability,
		Highlights:    p.Highlights,
		LatestProject: p.LatestProject,
		ResumeURL:     p.ResumeURL,
		Brand:         brand,
		Hero:          hero,
		Nav:           navLinks,
		Contact: Contact{
			Email:    p.Contact.Email,
			LinkedIn: p.Contact.LinkedIn,
			GitHub:   p.Contact.GitHub,
		},
		Stats:      p.Stats,
		Certs:      p.Certifications,
		Education:  p.Education,
		Experience: p.Experience,
		Year:       now.Year(),
	}
	if p.Contact.Email != "" {
		page.Contact.Mailto = "mailto:" + p.Contact.Email
	}

	page.Skills = make([]SkillCard, len(p.Skills))
	for i, s := range p.Skills {
		page.Skills[i] = SkillCard{
			Name:    s.Name,
			Level:   string(s.Level),
			Percent: s.Level.Percent(),
			DelayMS: stagger(i),
		}
	}

	page.Projects = make([]ProjectCard, len(p.Projects))
	for i, pr := range p.Projects {
		page.Projects[i] = ProjectCard{
			Title:       pr.Title,
			Description: pr.Description,
			Link:        pr.Link,
			DelayMS:     stagger(i),
		}
	}
	return page
}

func stagger(i int) int64 {
	return (time.Duration(i) * staggerStep).Milliseconds()
}
