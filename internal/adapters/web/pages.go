package web

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/jose-valero/match-scoreboard/internal/app/service"
	"github.com/jose-valero/match-scoreboard/internal/domain"
)

const (
	noticeSaved  = "Match saved"
	noticeFailed = "Could not save the match"
)

const chartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@2.9.4/dist/Chart.min.js"

// mismos defaults globales que el overlay original
const chartDefaultsJS = `Chart.defaults.global.defaultFontSize = 16;
Chart.defaults.global.defaultFontFamily = "'Helvetica Neue', 'Helvetica', 'Arial', sans-serif";
`

const drawChartsJS = `for (const id of ['chart1', 'chart2']) {
  const cfg = JSON.parse(document.getElementById(id + '-config').textContent);
  new Chart(document.getElementById(id).getContext('2d'), cfg);
}
`

// ScoreboardPage: sin charts (nil) la página queda vacía, no es error.
func ScoreboardPage(charts *service.ChartPair) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Scoreboard</title>`,
			`<style>body { background: transparent; margin: 0; } .charts { display: flex; justify-content: space-between; } .chart { width: 48%; }</style>`,
			`<script src="`, templ.EscapeString(chartJSURL), `"></script></head><body>`,
			`<div class="charts"><div class="chart"><canvas id="chart1"></canvas></div><div class="chart"><canvas id="chart2"></canvas></div></div>`); err != nil {
			return err
		}
		if charts != nil {
			if err := templ.JSONScript("chart1-config", charts.Team1).Render(ctx, w); err != nil {
				return err
			}
			if err := templ.JSONScript("chart2-config", charts.Team2).Render(ctx, w); err != nil {
				return err
			}
			if err := write(w, "<script>", chartDefaultsJS, drawChartsJS, "</script>"); err != nil {
				return err
			}
		}
		return write(w, `</body></html>`)
	})
}

func SetupPage(form service.SetupForm, notice string, failed bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Streaming match</title></head><body>`); err != nil {
			return err
		}
		if notice != "" {
			class := "notice"
			if failed {
				class += " error"
			}
			if err := write(w, `<p class="`, templ.EscapeString(class), `" role="status">`, templ.EscapeString(notice), `</p>`); err != nil {
				return err
			}
		}
		if err := write(w, `<form method="post" action="/setup">`); err != nil {
			return err
		}
		if err := teamSelect(w, "team1", "Team 1", form.Options, form.Team1); err != nil {
			return err
		}
		if err := teamSelect(w, "team2", "Team 2", form.Options, form.Team2); err != nil {
			return err
		}
		return write(w, `<button type="submit" id="save">Save</button></form></body></html>`)
	})
}

// teamSelect: las mismas opciones en los dos selects; selected sólo si coincide el id.
func teamSelect(w io.Writer, name, label string, opts []service.Option, selected domain.TeamID) error {
	if err := write(w, `<label for="`, name, `">`, templ.EscapeString(label), `</label><select id="`, name, `" name="`, name, `">`); err != nil {
		return err
	}
	for _, o := range opts {
		sel := ""
		if selected != "" && o.Value == selected {
			sel = " selected"
		}
		if err := write(w, `<option value="`, templ.EscapeString(string(o.Value)), `"`, sel, `>`, templ.EscapeString(o.Label), `</option>`); err != nil {
			return err
		}
	}
	return write(w, `</select>`)
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
