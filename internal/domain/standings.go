package domain

import "sort"

// RankPlayers orders players by score, highest first. Ties keep join order.
func RankPlayers(players []Player) []Standing {
	ordered := append([]Player(nil), players...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	standings := make([]Standing, 0, len(ordered))
	for i, p := range ordered {
		standings = append(standings, Standing{
			Rank:     i + 1,
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
		})
	}
	return standings
}
