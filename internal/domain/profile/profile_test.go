package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillLevel(t *testing.T) {
	for _, s := range []string{"Intermediate", "Advanced", "Expert"} {
		l, err := ParseSkillLevel(s)
		require.NoError(t, err)
		assert.Equal(t, SkillLevel(s), l)
	}

	_, err := ParseSkillLevel("Guru")
	assert.ErrorIs(t, err, ErrInvalidSkillLevel)

	_, err = ParseSkillLevel("expert")
	assert.ErrorIs(t, err, ErrInvalidSkillLevel)
}

func TestSkillLevelPercent(t *testing.T) {
	assert.Equal(t, 92, LevelExpert.Percent())
	assert.Equal(t, 74, LevelAdvanced.Percent())
	assert.Equal(t, 48, LevelIntermediate.Percent())
}

func TestClone_IsDeep(t *testing.T) {
	p := &Profile{
		Name:   "Your Name",
		Skills: []Skill{{Name: "Go", Level: LevelExpert}},
		Experience: []ExperienceEntry{
			{Role: "Engineer", Details: []string{"shipped things"}},
		},
	}

	c := p.Clone()
	c.Skills[0].Name = "Rust"
	c.Experience[0].Details[0] = "changed"
	c.Name = "Other"

	assert.Equal(t, "Go", p.Skills[0].Name)
	assert.Equal(t, "shipped things", p.Experience[0].Details[0])
	assert.Equal(t, "Your Name", p.Name)
}

func TestClone_KeepsAbsentExperience(t *testing.T) {
	p := &Profile{Name: "Your Name"}
	assert.Nil(t, p.Clone().Experience)
}
