// Package matching ranks recruiting teams against a user's profile.
//
// The score is a weighted sum of three components: skill overlap (up to 50
// points), role overlap (up to 30 points) and an open-seat bonus (20 points).
// Overlap ratios are also exposed directly as percentages so the client can
// render a breakdown; both the total and the percentages are derived from the
// same ratios.
package matching

import (
	"math"
	"sort"
	"strings"
)

const (
	skillsWeight  = 50.0
	rolesWeight   = 30.0
	capacityBonus = 20.0

	// A team that lists no requirements gives no signal either way, so the
	// component sits at the midpoint of its range.
	neutralRatio = 0.5
)

// MatchProfile is the slice of a user's profile the scorer looks at.
type MatchProfile struct {
	UserID             uint
	Skills             []string
	PreferredRoles     []string
	RegisteredEventIDs []uint
}

// TeamFacts is the candidate team as seen by the scorer. MemberIDs includes
// the leader.
type TeamFacts struct {
	TeamID          uint
	EventID         uint
	LeaderID        uint
	Status          string
	MaxSize         int
	MemberCount     int
	MemberIDs       []uint
	RequiredSkills  []string
	LookingForRoles []string
}

// MatchResult holds the total score and its breakdown.
type MatchResult struct {
	TeamID      uint `json:"teamId"`
	Score       int  `json:"score"`       // 0-100
	SkillsMatch int  `json:"skillsMatch"` // percent, same ratio the score uses
	RoleMatch   int  `json:"roleMatch"`   // percent, same ratio the score uses
	EventMatch  bool `json:"eventMatch"`
}

// RankedTeam pairs a candidate team with its score for sorted output.
type RankedTeam struct {
	Team   TeamFacts
	Result MatchResult
}

// Score computes the compatibility between a user and a team. It is pure and
// deterministic; the result is always in [0, 100].
func Score(profile MatchProfile, team TeamFacts) MatchResult {
	skillRatio := overlapRatio(profile.Skills, team.RequiredSkills)
	roleRatio := overlapRatio(profile.PreferredRoles, team.LookingForRoles)

	total := skillsWeight*skillRatio + rolesWeight*roleRatio

	if team.MemberCount < team.MaxSize {
		total += capacityBonus
	}

	return MatchResult{
		TeamID:      team.TeamID,
		Score:       int(math.Round(total)),
		SkillsMatch: int(math.Round(skillRatio * 100)),
		RoleMatch:   int(math.Round(roleRatio * 100)),
		EventMatch:  containsID(profile.RegisteredEventIDs, team.EventID),
	}
}

// Rank filters candidates down to recruiting teams the user is not already
// part of and sorts them by score, best first. Ties keep input order.
func Rank(profile MatchProfile, teams []TeamFacts) []RankedTeam {
	ranked := make([]RankedTeam, 0, len(teams))

	for _, team := range teams {
		if team.Status != "recruiting" {
			continue
		}

		if team.LeaderID == profile.UserID || containsID(team.MemberIDs, profile.UserID) {
			continue
		}

		ranked = append(ranked, RankedTeam{Team: team, Result: Score(profile, team)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	return ranked
}

// overlapRatio returns |have ∩ want| / |want|, comparing case-insensitively.
// An empty want set yields the neutral ratio.
func overlapRatio(have, want []string) float64 {
	if len(want) == 0 {
		return neutralRatio
	}

	haveSet := make(map[string]struct{}, len(have))

	for _, s := range have {
		haveSet[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matched := 0
	seen := make(map[string]struct{}, len(want))

	for _, w := range want {
		key := strings.ToLower(strings.TrimSpace(w))

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		if _, ok := haveSet[key]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(seen))
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
