package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTeam(required, roles []string) TeamFacts {
	return TeamFacts{
		TeamID:          1,
		EventID:         10,
		LeaderID:        99,
		Status:          "recruiting",
		MaxSize:         4,
		MemberCount:     2,
		MemberIDs:       []uint{99, 98},
		RequiredSkills:  required,
		LookingForRoles: roles,
	}
}

func TestScoreBounds(t *testing.T) {
	profiles := []MatchProfile{
		{UserID: 1},
		{UserID: 1, Skills: []string{"Go"}},
		{UserID: 1, Skills: []string{"Go", "React", "Python"}, PreferredRoles: []string{"Backend Developer"}},
	}

	teams := []TeamFacts{
		openTeam(nil, nil),
		openTeam([]string{"Go"}, nil),
		openTeam([]string{"Go", "Rust", "C++"}, []string{"Backend Developer", "Designer"}),
		{TeamID: 2, Status: "recruiting", MaxSize: 2, MemberCount: 2, RequiredSkills: []string{"Haskell"}},
	}

	for _, profile := range profiles {
		for _, team := range teams {
			result := Score(profile, team)
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
			assert.GreaterOrEqual(t, result.SkillsMatch, 0)
			assert.LessOrEqual(t, result.SkillsMatch, 100)
		}
	}
}

func TestScoreSkillMonotonicity(t *testing.T) {
	team := openTeam([]string{"Go", "React", "Python", "SQL"}, nil)

	previous := -1

	skills := []string{"Go", "React", "Python", "SQL"}

	for i := 0; i <= len(skills); i++ {
		result := Score(MatchProfile{UserID: 1, Skills: skills[:i]}, team)
		assert.GreaterOrEqual(t, result.Score, previous,
			"adding a matching skill must never decrease the score")
		previous = result.Score
	}
}

func TestScoreNeutralDefaults(t *testing.T) {
	// No required skills: skills component is a flat 25 no matter the profile.
	team := openTeam(nil, []string{"Designer"})
	team.MemberCount = team.MaxSize // isolate the skills+roles components

	withSkills := Score(MatchProfile{UserID: 1, Skills: []string{"Go", "React"}}, team)
	withoutSkills := Score(MatchProfile{UserID: 1}, team)

	assert.Equal(t, withSkills.Score, withoutSkills.Score)
	assert.Equal(t, 25, withoutSkills.Score) // 25 skills + 0 roles + 0 capacity
	assert.Equal(t, 50, withoutSkills.SkillsMatch)
}

func TestScoreCapacityBonus(t *testing.T) {
	full := openTeam([]string{"Go"}, []string{"Backend Developer"})
	full.MemberCount = full.MaxSize

	open := full
	open.MemberCount = full.MaxSize - 1

	profile := MatchProfile{UserID: 1, Skills: []string{"Go"}, PreferredRoles: []string{"Backend Developer"}}

	assert.Equal(t, 20, Score(profile, open).Score-Score(profile, full).Score)
}

func TestScoreWeightedScenario(t *testing.T) {
	// 2 of 3 required skills matched, full role match, open seat.
	team := openTeam([]string{"React", "Go", "Python"}, []string{"Frontend Developer"})
	profile := MatchProfile{
		UserID:         1,
		Skills:         []string{"React", "Python"},
		PreferredRoles: []string{"Frontend Developer"},
	}

	result := Score(profile, team)

	assert.Equal(t, 83, result.Score) // round(50*2/3 + 30 + 20)
	assert.Equal(t, 67, result.SkillsMatch)
	assert.Equal(t, 100, result.RoleMatch)
}

func TestScoreCaseInsensitiveOverlap(t *testing.T) {
	team := openTeam([]string{"react", "GO"}, nil)
	profile := MatchProfile{UserID: 1, Skills: []string{"React", "go"}}

	result := Score(profile, team)

	assert.Equal(t, 100, result.SkillsMatch)
}

func TestScoreEventMatch(t *testing.T) {
	team := openTeam(nil, nil)

	registered := Score(MatchProfile{UserID: 1, RegisteredEventIDs: []uint{10}}, team)
	unregistered := Score(MatchProfile{UserID: 1, RegisteredEventIDs: []uint{11}}, team)

	assert.True(t, registered.EventMatch)
	assert.False(t, unregistered.EventMatch)
}

func TestRankFiltersAndSorts(t *testing.T) {
	profile := MatchProfile{UserID: 7, Skills: []string{"Go"}}

	teams := []TeamFacts{
		{TeamID: 1, Status: "full", MaxSize: 4, MemberCount: 4, RequiredSkills: []string{"Go"}},
		{TeamID: 2, Status: "recruiting", LeaderID: 7, MaxSize: 4, MemberCount: 1},
		{TeamID: 3, Status: "recruiting", MaxSize: 4, MemberCount: 2, MemberIDs: []uint{7, 8}},
		{TeamID: 4, Status: "recruiting", MaxSize: 4, MemberCount: 2, RequiredSkills: []string{"Rust"}},
		{TeamID: 5, Status: "recruiting", MaxSize: 4, MemberCount: 2, RequiredSkills: []string{"Go"}},
	}

	ranked := Rank(profile, teams)

	require.Len(t, ranked, 2)
	assert.Equal(t, uint(5), ranked[0].Team.TeamID)
	assert.Equal(t, uint(4), ranked[1].Team.TeamID)
	assert.Greater(t, ranked[0].Result.Score, ranked[1].Result.Score)
}

func TestRankStableOnTies(t *testing.T) {
	profile := MatchProfile{UserID: 7}

	teams := []TeamFacts{
		{TeamID: 1, Status: "recruiting", MaxSize: 4, MemberCount: 1},
		{TeamID: 2, Status: "recruiting", MaxSize: 4, MemberCount: 1},
		{TeamID: 3, Status: "recruiting", MaxSize: 4, MemberCount: 1},
	}

	ranked := Rank(profile, teams)

	require.Len(t, ranked, 3)
	assert.Equal(t, uint(1), ranked[0].Team.TeamID)
	assert.Equal(t, uint(2), ranked[1].Team.TeamID)
	assert.Equal(t, uint(3), ranked[2].Team.TeamID)
}
