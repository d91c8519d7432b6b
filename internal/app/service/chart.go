package service

import "github.com/jose-valero/match-scoreboard/internal/domain"

// Config de Chart.js (v2) para un radar; el browser hace el render.

var AxisLabels = []string{"Goals", "Shots", "Assists", "Saves", "Demos"}

// paleta por índice de dataset (jugador)
var (
	playerBackgroundColors = []string{
		"rgba(255, 255, 0, .2)",
		"rgba(0, 255, 255, .2)",
		"rgba(255, 0, 255, .2)",
		"rgba(0, 255, 0, .2)",
	}
	playerBorderColors = []string{
		"rgb(255, 255, 0)",
		"rgb(0, 255, 255)",
		"rgb(255, 0, 255)",
		"rgb(0, 255, 0)",
	}
)

type ChartPair struct {
	Team1 ChartConfig `json:"team1"`
	Team2 ChartConfig `json:"team2"`
}

type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	FontSize        int       `json:"fontSize"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
	PointRadius     int       `json:"pointRadius"`
	Data            []float64 `json:"data"`
}

type ChartOptions struct {
	Legend Legend `json:"legend"`
	Scale  Scale  `json:"scale"`
	Title  Title  `json:"title"`
}

type Legend struct {
	Labels FontColor `json:"labels"`
}

type FontColor struct {
	FontColor string `json:"fontColor"`
}

type Scale struct {
	AngleLines  Display     `json:"angleLines"`
	GridLines   GridLines   `json:"gridLines"`
	Ticks       Ticks       `json:"ticks"`
	PointLabels PointLabels `json:"pointLabels"`
}

type Display struct {
	Display bool `json:"display"`
}

type GridLines struct {
	Color string `json:"color"`
}

type Ticks struct {
	SuggestedMin float64 `json:"suggestedMin"`
	SuggestedMax float64 `json:"suggestedMax"`
	Display      bool    `json:"display"`
}

type PointLabels struct {
	FontSize  int    `json:"fontSize"`
	FontColor string `json:"fontColor"`
}

type Title struct {
	Display   bool   `json:"display"`
	FontSize  int    `json:"fontSize"`
	FontColor string `json:"fontColor"`
	Text      string `json:"text"`
}

// RadarChart: un dataset por jugador, colores por índice (la paleta cicla después del 4to).
func RadarChart(team domain.TeamScores) ChartConfig {
	datasets := make([]Dataset, 0, len(team.Scores))
	for i, s := range team.Scores {
		datasets = append(datasets, Dataset{
			Label:           s.PlayerName,
			FontSize:        24,
			BackgroundColor: playerBackgroundColors[i%len(playerBackgroundColors)],
			BorderColor:     playerBorderColors[i%len(playerBorderColors)],
			BorderWidth:     3,
			PointRadius:     0,
			Data:            s.Parameters(),
		})
	}
	return ChartConfig{
		Type: "radar",
		Data: ChartData{
			Labels:   AxisLabels,
			Datasets: datasets,
		},
		Options: radarOptions(team.Name),
	}
}

func radarOptions(teamName string) ChartOptions {
	return ChartOptions{
		Legend: Legend{Labels: FontColor{FontColor: "#fff"}},
		Scale: Scale{
			AngleLines: Display{Display: false},
			GridLines:  GridLines{Color: "rgba(71, 245, 231, .5)"},
			Ticks:      Ticks{SuggestedMin: 0, SuggestedMax: 30, Display: false},
			PointLabels: PointLabels{
				FontSize:  24,
				FontColor: "#fff",
			},
		},
		Title: Title{
			Display:   true,
			FontSize:  36,
			FontColor: "#fff",
			Text:      teamName,
		},
	}
}
