package ballchasing

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

// flexID: los ids de jugador llegan como número (steam) o string (epic, psn).
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type Group struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Link    string    `json:"link"`
	Created time.Time `json:"created"`
	Status  string    `json:"status"`
	Players []Player  `json:"players"`
}

type Player struct {
	Platform   string      `json:"platform"`
	ID         flexID      `json:"id"`
	Name       string      `json:"name"`
	Team       string      `json:"team"`
	Cumulative *Cumulative `json:"cumulative"`
}

type Cumulative struct {
	Games         float64 `json:"games"`
	Wins          float64 `json:"wins"`
	WinPercentage float64 `json:"win_percentage"`
	Core          Core    `json:"core"`
	Demo          Demo    `json:"demo"`
}

type Core struct {
	Shots              float64 `json:"shots"`
	Goals              float64 `json:"goals"`
	Saves              float64 `json:"saves"`
	Assists            float64 `json:"assists"`
	Score              float64 `json:"score"`
	MVP                float64 `json:"mvp"`
	ShootingPercentage float64 `json:"shooting_percentage"`
}

type Demo struct {
	Inflicted float64 `json:"inflicted"`
	Taken     float64 `json:"taken"`
}

// groupList: GET /groups?group=<id> sólo trae el resumen; el detalle se pide aparte.
type groupList struct {
	List []struct {
		ID string `json:"id"`
	} `json:"list"`
}

// Domain arma el grupo del dominio; los jugadores sin acumulados quedan afuera.
func (g Group) Domain(parentID string) domain.ReplayGroup {
	out := domain.ReplayGroup{
		ID:       g.ID,
		Name:     g.Name,
		ParentID: parentID,
		Created:  g.Created,
		Players:  make([]domain.ReplayPlayer, 0, len(g.Players)),
	}
	for _, p := range g.Players {
		if p.Cumulative == nil {
			continue
		}
		cu := p.Cumulative
		out.Players = append(out.Players, domain.ReplayPlayer{
			PlatformID:         p.Platform + ":" + string(p.ID),
			Name:               p.Name,
			ReplayTeam:         p.Team,
			Games:              cu.Games,
			Wins:               cu.Wins,
			WinPercentage:      cu.WinPercentage,
			Score:              cu.Core.Score,
			Goals:              cu.Core.Goals,
			Shots:              cu.Core.Shots,
			ShootingPercentage: cu.Core.ShootingPercentage,
			Assists:            cu.Core.Assists,
			Saves:              cu.Core.Saves,
			MVP:                cu.Core.MVP,
			DemosInflicted:     cu.Demo.Inflicted,
			DemosTaken:         cu.Demo.Taken,
		})
	}
	return out
}
