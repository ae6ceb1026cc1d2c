// Package feature turns a basketball-reference player page into the fixed
// 18-value vector the Hall of Fame classifier was trained on.
package feature

// NumFeatures is the length of the classifier input.
const NumFeatures = 18

// Feature indices, in classifier column order.
const (
	CareerLength = iota
	Games
	PointsPerGame
	ReboundsPerGame
	AssistsPerGame
	PER
	FieldGoalPct
	FreeThrowPct
	WinShares
	AllStar
	AllNBA
	AllDefensive
	AllRookie
	MVP
	Championships
	RookieOfTheYear
	DefensivePOY
	ScoringTitles
)

// Vector is the ordered classifier input.
type Vector [NumFeatures]float64

// Slice returns a copy of the vector as a slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Spec describes one column of the vector.
type Spec struct {
	Name    string // machine name, matches the model's feature_names
	Label   string // display label
	Integer bool   // whole-number feature
}

var specs = [NumFeatures]Spec{
	{"career_length", "Career Length (Years)", true},
	{"games", "Games Played", true},
	{"points_per_game", "Points Per Game", false},
	{"rebounds_per_game", "Rebounds Per Game", false},
	{"assists_per_game", "Assists Per Game", false},
	{"per", "PER", false},
	{"field_goal_pct", "Field Goal %", false},
	{"free_throw_pct", "Free Throw %", false},
	{"win_shares", "Win Shares", false},
	{"all_star", "All-Star Selections", true},
	{"all_nba", "All-NBA Selections", true},
	{"all_defensive", "All-Defensive Teams", true},
	{"all_rookie", "All-Rookie Team", true},
	{"mvp", "MVP Awards", true},
	{"championships", "Championships", true},
	{"rookie_of_the_year", "Rookie of the Year", true},
	{"defensive_poy", "Defensive POY", true},
	{"scoring_titles", "Scoring Titles", true},
}

// Specs returns the column descriptions in vector order.
func Specs() [NumFeatures]Spec {
	return specs
}

// Names returns the machine names in vector order.
func Names() []string {
	names := make([]string, NumFeatures)
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}
