package engine

// Rank titles shown on the status screen, by level band.
var rankBands = []struct {
	minLevel int
	title    string
}{
	{20, "Legend"},
	{15, "Master"},
	{10, "Veteran"},
	{7, "Adventurer"},
	{4, "Apprentice"},
	{1, "Novice"},
}

// RankForLevel returns the persona's rank title.
func RankForLevel(level int) string {
	for _, b := range rankBands {
		if level >= b.minLevel {
			return b.title
		}
	}
	return "Novice"
}
