package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/internal/domain/profile"
	"github.com/khoahotran/portfolio-page/pkg/apperror"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type profileFile struct {
	Name          string `mapstructure:"name" validate:"required"`
	Title         string `mapstructure:"title"`
	Bio           string `mapstructure:"bio"`
	Image         string `mapstructure:"image"`
	Location      string `mapstructure:"location"`
	Availability  string `mapstructure:"availability"`
	Highlights    string `mapstructure:"highlights"`
	LatestProject string `mapstructure:"latest_project"`
	ResumeURL     string `mapstructure:"resume_url"`
	Contact       struct {
		Email    string `mapstructure:"email"`
		LinkedIn string `mapstructure:"linkedin"`
		GitHub   string `mapstructure:"github"`
	} `mapstructure:"contact"`
	Stats []struct {
		Label string `mapstructure:"label" validate:"required"`
		Value string `mapstructure:"value"`
	} `mapstructure:"stats" validate:"dive"`
	Skills []struct {
		Name  string `mapstructure:"name" validate:"required"`
		Level string `mapstructure:"level" validate:"required,oneof=Intermediate Advanced Expert"`
	} `mapstructure:"skills" validate:"dive"`
	Certifications []struct {
		Title  string `mapstructure:"title" validate:"required"`
		Issuer string `mapstructure:"issuer"`
		Year   int    `mapstructure:"year"`
	} `mapstructure:"certifications" validate:"dive"`
	Education []struct {
		Institution string `mapstructure:"institution" validate:"required"`
		Degree      string `mapstructure:"degree"`
		Years       string `mapstructure:"years"`
	} `mapstructure:"education" validate:"dive"`
	Projects []struct {
		Title       string `mapstructure:"title" validate:"required"`
		Description string `mapstructure:"description"`
		Link        string `mapstructure:"link"`
	} `mapstructure:"projects" validate:"dive"`
	Experience []struct {
		Role    string   `mapstructure:"role" validate:"required"`
		Company string   `mapstructure:"company"`
		Period  string   `mapstructure:"period"`
		Details []string `mapstructure:"details"`
	} `mapstructure:"experience" validate:"dive"`
}

// NewFileProfileRepo reads a profile file (YAML, JSON or TOML by extension)
// once. The file is not watched; the profile stays fixed for the process.
func NewFileProfileRepo(path string, log logger.Logger) (profile.Repository, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("cannot read profile file %s", path), err)
	}

	var f profileFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("cannot decode profile file %s", path), err)
	}

	if err := validator.New().Struct(&f); err != nil {
		return nil, apperror.NewInvalidInput(describeValidation(err), err)
	}

	p, err := f.toDomain()
	if err != nil {
		return nil, apperror.NewInvalidInput("profile file is invalid", err)
	}
	log.Info("Loaded profile file",
		zap.String("path", path),
		zap.String("name", p.Name),
		zap.Int("skills", len(p.Skills)),
		zap.Int("projects", len(p.Projects)),
	)
	return NewStaticProfileRepo(p), nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "profile file is invalid"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return "profile file is invalid: " + strings.Join(fields, ", ")
}

func (f *profileFile) toDomain() (*profile.Profile, error) {
	p := &profile.Profile{
		Name:          f.Name,
		Title:         f.Title,
		Bio:           strings.TrimSpace(f.Bio),
		ImageRef:      f.Image,
		Location:      f.Location,
		Availability:  f.Availability,
		Highlights:    f.Highlights,
		LatestProject: f.LatestProject,
		ResumeURL:     f.ResumeURL,
		Contact: profile.Contact{
			Email:    f.Contact.Email,
			LinkedIn: f.Contact.LinkedIn,
			GitHub:   f.Contact.GitHub,
		},
	}
	for _, s := range f.Stats {
		p.Stats = append(p.Stats, profile.Stat{Label: s.Label, Value: s.Value})
	}
	for _, s := range f.Skills {
		level, err := profile.ParseSkillLevel(s.Level)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", s.Name, err)
		}
		p.Skills = append(p.Skills, profile.Skill{Name: s.Name, Level: level})
	}
	for _, c := range f.Certifications {
		p.Certifications = append(p.Certifications, profile.Certification{Title: c.Title, Issuer: c.Issuer, Year: c.Year})
	}
	for _, e := range f.Education {
		p.Education = append(p.Education, profile.EducationEntry{Institution: e.Institution, Degree: e.Degree, Years: e.Years})
	}
	for _, pr := range f.Projects {
		p.Projects = append(p.Projects, profile.Project{Title: pr.Title, Description: pr.Description, Link: pr.Link})
	}
	for _, e := range f.Experience {
		p.Experience = append(p.Experience, profile.ExperienceEntry{
			Role:    e.Role,
			Company: e.Company,
			Period:  e.Period,
			Details: append([]string(nil), e.Details...),
		})
	}
	return p, nil
}
