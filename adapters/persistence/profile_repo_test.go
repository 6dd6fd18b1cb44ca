package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/profile"
	"github.com/khoahotran/portfolio-page/pkg/apperror"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

const ashwinProfile = `
name: Ashwin Nambiar
title: Full-stack Engineer
bio: |
  Builds things for the web.
image: https://cdn.example.com/ashwin.jpg
contact:
  email: ashwin@example.com
  linkedin: https://linkedin.com/in/ashwin
  github: https://github.com/ashwin
skills:
  - name: Go
    level: Expert
  - name: Kubernetes
    level: Intermediate
certifications:
  - title: CKA
    issuer: CNCF
    year: 2023
education:
  - institution: NIT Calicut
    degree: B.Tech
    years: 2012 - 2016
projects:
  - title: Tracer
    description: Distributed tracing playground
    link: https://github.com/ashwin/tracer
experience:
  - role: Senior Engineer
    company: Acme
    period: 2020 - Present
    details:
      - Led the platform team
      - Cut p99 latency in half
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStaticProfileRepo_ReturnsCopies(t *testing.T) {
	repo := NewStaticProfileRepo(DefaultProfile())
	ctx := context.Background()

	first, err := repo.Get(ctx)
	require.NoError(t, err)
	first.Name = "Mutated"
	first.Skills[0].Name = "Mutated"

	second, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Your Name", second.Name)
	assert.Equal(t, "React", second.Skills[0].Name)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Empty(t, p.ImageRef)
	assert.Len(t, p.Skills, 6)
	assert.Len(t, p.Certifications, 3)
	assert.Len(t, p.Education, 1)
	assert.Len(t, p.Projects, 2)
	assert.Empty(t, p.Experience)
	for _, s := range p.Skills {
		_, err := profile.ParseSkillLevel(string(s.Level))
		assert.NoError(t, err, s.Name)
	}
}

func TestFileProfileRepo(t *testing.T) {
	repo, err := NewFileProfileRepo(writeProfile(t, ashwinProfile), logger.NewNop())
	require.NoError(t, err)

	p, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ashwin Nambiar", p.Name)
	assert.Equal(t, "Builds things for the web.", p.Bio)
	assert.Equal(t, "https://cdn.example.com/ashwin.jpg", p.ImageRef)
	assert.Equal(t, "ashwin@example.com", p.Contact.Email)
	require.Len(t, p.Skills, 2)
	assert.Equal(t, profile.LevelExpert, p.Skills[0].Level)
	assert.Equal(t, 2023, p.Certifications[0].Year)
	assert.Equal(t, "2012 - 2016", p.Education[0].Years)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, []string{"Led the platform team", "Cut p99 latency in half"}, p.Experience[0].Details)
}

func TestFileProfileRepo_RejectsUnknownSkillLevel(t *testing.T) {
	content := `
name: Someone
skills:
  - name: Go
    level: Wizard
`
	_, err := NewFileProfileRepo(writeProfile(t, content), logger.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "oneof")
}

func TestProfileFile_ToDomainChecksSkillLevel(t *testing.T) {
	var f profileFile
	f.Name = "Someone"
	f.Skills = append(f.Skills, struct {
		Name  string `mapstructure:"name" validate:"required"`
		Level string `mapstructure:"level" validate:"required,oneof=Intermediate Advanced Expert"`
	}{Name: "Go", Level: "expert"})

	_, err := f.toDomain()
	assert.ErrorIs(t, err, profile.ErrInvalidSkillLevel)

	f.Skills[0].Level = "Expert"
	p, err := f.toDomain()
	require.NoError(t, err)
	assert.Equal(t, profile.LevelExpert, p.Skills[0].Level)
}

func TestFileProfileRepo_RequiresName(t *testing.T) {
	_, err := NewFileProfileRepo(writeProfile(t, "title: Nobody\n"), logger.NewNop())
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestFileProfileRepo_MissingFile(t *testing.T) {
	_, err := NewFileProfileRepo(filepath.Join(t.TempDir(), "nope.yaml"), logger.NewNop())
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestNewProfileRepo(t *testing.T) {
	repo, err := NewProfileRepo(config.Config{}, logger.NewNop())
	require.NoError(t, err)
	p, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Your Name", p.Name)

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ashwinProfile), 0o644))

	var cfg config.Config
	cfg.Profile.Path = path
	repo, err = NewProfileRepo(cfg, logger.NewNop())
	require.NoError(t, err)
	p, err = repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ashwin Nambiar", p.Name)
}
