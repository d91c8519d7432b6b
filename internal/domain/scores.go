package domain

// PlayerScore: una fila de GET /scores_all. Los *_parameter son 0..100.
type PlayerScore struct {
	TeamID           TeamID  `json:"team_id"`
	TeamName         string  `json:"team_name,omitempty"`
	PlayerName       string  `json:"player_name"`
	GoalsParameter   float64 `json:"goals_parameter"`
	ShotsParameter   float64 `json:"shots_parameter"`
	AssistsParameter float64 `json:"assists_parameter"`
	SavesParameter   float64 `json:"saves_parameter"`
	DemosParameter   float64 `json:"demos_parameter"`
}

// Parameters en el orden de los ejes del radar: goals, shots, assists, saves, demos.
func (s PlayerScore) Parameters() []float64 {
	return []float64{
		s.GoalsParameter,
		s.ShotsParameter,
		s.AssistsParameter,
		s.SavesParameter,
		s.DemosParameter,
	}
}

// FilterScoresByTeam conserva el orden de entrada.
func FilterScoresByTeam(scores []PlayerScore, id TeamID) []PlayerScore {
	out := make([]PlayerScore, 0, len(scores))
	for _, s := range scores {
		if s.TeamID == id {
			out = append(out, s)
		}
	}
	return out
}

type TeamScores struct {
	Name   string        `json:"name"`
	Scores []PlayerScore `json:"scores"`
}

// ChartViewModel se arma en cada render y se descarta.
type ChartViewModel struct {
	Team1 TeamScores `json:"team1"`
	Team2 TeamScores `json:"team2"`
}

// PlayerStats son los acumulados crudos de un jugador (lo que guarda el backend).
type PlayerStats struct {
	TeamID     TeamID  `json:"team_id"`
	TeamName   string  `json:"team_name,omitempty"`
	PlayerName string  `json:"player_name"`
	Goals      float64 `json:"goals"`
	Shots      float64 `json:"shots"`
	Assists    float64 `json:"assists"`
	Saves      float64 `json:"saves"`
	Demos      float64 `json:"demos"`
	Score      float64 `json:"score"`
}

// ScoreParameters normaliza cada stat contra el máximo del conjunto (valor/max*100).
// Si el máximo es 0 el parámetro queda en 0.
func ScoreParameters(stats []PlayerStats) []PlayerScore {
	var maxGoals, maxShots, maxAssists, maxSaves, maxDemos float64
	for _, s := range stats {
		maxGoals = max(maxGoals, s.Goals)
		maxShots = max(maxShots, s.Shots)
		maxAssists = max(maxAssists, s.Assists)
		maxSaves = max(maxSaves, s.Saves)
		maxDemos = max(maxDemos, s.Demos)
	}

	out := make([]PlayerScore, 0, len(stats))
	for _, s := range stats {
		out = append(out, PlayerScore{
			TeamID:           s.TeamID,
			TeamName:         s.TeamName,
			PlayerName:       s.PlayerName,
			GoalsParameter:   ratio(s.Goals, maxGoals),
			ShotsParameter:   ratio(s.Shots, maxShots),
			AssistsParameter: ratio(s.Assists, maxAssists),
			SavesParameter:   ratio(s.Saves, maxSaves),
			DemosParameter:   ratio(s.Demos, maxDemos),
		})
	}
	return out
}

func ratio(v, top float64) float64 {
	if top == 0 {
		return 0
	}
	return v / top * 100
}
