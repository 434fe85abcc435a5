package models

import (
	"encoding/json"
	"iter"
)

// LeaderboardValue is one ranked entry of a leaderboard or section.
type LeaderboardValue struct {
	Name        string        `json:"name"`
	UserProfile string        `json:"user_profile"`
	UserIcon    string        `json:"user_icon"`
	Rank        NumericString `json:"rank"`
	Value       NumericString `json:"value"`

	// IsSelf is set by the client, never by the server, on the entry that
	// represents the requesting player.
	IsSelf bool `json:"-"`
}

// UnmarshalJSON fills rank and value with "0" when the server omits them.
func (v *LeaderboardValue) UnmarshalJSON(b []byte) error {
	type plain LeaderboardValue
	p := plain{Rank: "0", Value: "0"}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = LeaderboardValue(p)
	return nil
}

// Leaderboard is the top of a board as returned by the leaderboard endpoint.
type Leaderboard struct {
	Data []LeaderboardValue `json:"data"`
}

// RanksData wraps a list of entries the way the section endpoint nests them.
type RanksData struct {
	Data []LeaderboardValue `json:"data"`
}

// StatisticSection is the ranked neighbourhood around the current player.
type StatisticSection struct {
	BetterRanks RanksData        `json:"better_ranks"`
	UserRank    LeaderboardValue `json:"user_rank"`
	WorseRanks  RanksData        `json:"worse_ranks"`
}

// MarkSelf flags UserRank as the requesting player.
func (s *StatisticSection) MarkSelf() {
	s.UserRank.IsSelf = true
}

// All yields better ranks, the player's own rank and worse ranks, in that
// order. The sequence is finite and may be ranged over any number of times.
func (s *StatisticSection) All() iter.Seq[LeaderboardValue] {
	return func(yield func(LeaderboardValue) bool) {
		for _, v := range s.BetterRanks.Data {
			if !yield(v) {
				return
			}
		}
		self := s.UserRank
		self.IsSelf = true
		if !yield(self) {
			return
		}
		for _, v := range s.WorseRanks.Data {
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of entries All yields.
func (s *StatisticSection) Len() int {
	return len(s.BetterRanks.Data) + 1 + len(s.WorseRanks.Data)
}
