package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jose-valero/match-scoreboard/internal/adapters/scoresapi"
	"github.com/jose-valero/match-scoreboard/internal/app/service"
	"github.com/jose-valero/match-scoreboard/internal/domain"
	"github.com/jose-valero/match-scoreboard/internal/infra/config"
)

type app struct {
	api *scoresapi.Client
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{}
	var (
		apiURL  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:          "scorectl",
		Short:        "Operar el streaming match y los scores desde la terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(apiURL) == "" {
				return errors.New("faltante env SCORES_API_URL (o --api)")
			}
			a.api = scoresapi.New(apiURL, scoresapi.WithHTTPClient(&http.Client{Timeout: timeout}))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api", cfg.ScoresAPIURL, "origen del backend de scores")
	root.PersistentFlags().DurationVar(&timeout, "timeout", cfg.HTTPTimeout, "timeout por request")

	root.AddCommand(a.teamsCmd(), a.matchCmd(), a.chartCmd(), a.scoresCmd(), a.importCmd())
	return root
}

func (a *app) teamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Listar equipos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			if !res.HasTeams() {
				fmt.Fprintln(cmd.OutOrStdout(), "el backend no devolvió equipos")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, t := range res.Teams {
				fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Name)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id> <name>",
		Short: "Crear o renombrar un equipo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.Team{ID: domain.TeamID(args[0]), Name: strings.Join(args[1:], " ")}
			res, err := a.api.UpsertTeam(cmd.Context(), t)
			if err != nil {
				return err
			}
			if !res.Succeeded() {
				return fmt.Errorf("backend: %s %s", res.Status, res.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ equipo %s = %s\n", t.ID, t.Name)
			return nil
		},
	})
	return cmd
}

func (a *app) matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Streaming match actual",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Mostrar los equipos en posición 1 y 2",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetStreamingMatch(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range []domain.Position{domain.PositionHome, domain.PositionAway} {
				slot, ok := domain.SlotAt(res.Teams, p)
				if !ok {
					fmt.Fprintf(out, "%d\t(vacío)\n", p)
					continue
				}
				fmt.Fprintf(out, "%d\t%s (%s)\n", p, slot.TeamName, slot.TeamID)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <team1> <team2>",
		Short: "Guardar el streaming match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewMatchSetupService(a.api, nil)
			res := svc.Save(cmd.Context(), domain.TeamID(args[0]), domain.TeamID(args[1]))
			if failed, ok := res.(service.SaveFailed); ok {
				return failed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ streaming match guardado")
			return nil
		},
	})
	return cmd
}

func (a *app) chartCmd() *cobra.Command {
	var chartjs bool
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Imprimir el view model del scoreboard (o la config de Chart.js)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewScoreboardService(a.api)

			var (
				v   any
				err error
			)
			if chartjs {
				v, err = svc.Charts(cmd.Context())
			} else {
				v, err = svc.Build(cmd.Context())
			}
			if err != nil {
				return err
			}
			if isNil(v) {
				fmt.Fprintln(cmd.OutOrStdout(), "sin datos: falta el streaming match o los scores")
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
	cmd.Flags().BoolVar(&chartjs, "chartjs", false, "imprimir las dos configs de Chart.js")
	return cmd
}

func isNil(v any) bool {
	switch x := v.(type) {
	case *domain.ChartViewModel:
		return x == nil
	case *service.ChartPair:
		return x == nil
	}
	return v == nil
}

func (a *app) scoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Acumulados por jugador",
	}

	var st domain.PlayerStats
	push := &cobra.Command{
		Use:   "push <team_id> <player_name>",
		Short: "Cargar/pisar los acumulados de un jugador",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st.TeamID, st.PlayerName = domain.TeamID(args[0]), args[1]
			res, err := a.api.UpsertPlayerStats(cmd.Context(), st)
			if err != nil {
				return err
			}
			if !res.Succeeded() {
				return fmt.Errorf("backend: %s %s", res.Status, res.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s (%s) actualizado\n", st.PlayerName, st.TeamID)
			return nil
		},
	}
	f := push.Flags()
	f.Float64Var(&st.Goals, "goals", 0, "")
	f.Float64Var(&st.Shots, "shots", 0, "")
	f.Float64Var(&st.Assists, "assists", 0, "")
	f.Float64Var(&st.Saves, "saves", 0, "")
	f.Float64Var(&st.Demos, "demos", 0, "")
	f.Float64Var(&st.Score, "score", 0, "")

	days := &cobra.Command{
		Use:   "days",
		Short: "Acumulados por día (grupos hijos del import de replays)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.ScoresByDays(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DAY\tPLAYER\tWINS\tSCORE\tGOALS\tSHOTS\tASSISTS\tSAVES")
			for _, d := range res.Scores {
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
					d.GroupName, d.PlayerName, d.Wins, d.Score, d.Goals, d.Shots, d.Assists, d.Saves)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(push, days)
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var (
		tournament string
		wait       bool
		poll       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "import <group_id>",
		Short: "Importar acumulados de un grupo de ballchasing (y opcionalmente el torneo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.StartImport(cmd.Context(), tournament, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "🚀 import lanzado: %s\n", res.TaskID)
			if !wait {
				return nil
			}
			return a.waitImport(cmd, res.TaskID, poll)
		},
	}
	cmd.Flags().StringVar(&tournament, "tournament", "", "id de torneo en toornament (equipos y partidos)")
	cmd.Flags().BoolVar(&wait, "wait", false, "esperar a que termine")
	cmd.Flags().DurationVar(&poll, "poll", 2*time.Second, "intervalo de consulta con --wait")

	cmd.AddCommand(&cobra.Command{
		Use:   "status <task_id>",
		Short: "Historial de estados de un import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.ImportStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStatuses(cmd, res)
			return nil
		},
	})
	return cmd
}

func (a *app) waitImport(cmd *cobra.Command, taskID string, poll time.Duration) error {
	t := time.NewTicker(poll)
	defer t.Stop()
	for {
		res, err := a.api.ImportStatus(cmd.Context(), taskID)
		if err != nil {
			return err
		}
		if res.Done() {
			printStatuses(cmd, res)
			if res.Failed() {
				return fmt.Errorf("import %s falló", taskID)
			}
			return nil
		}
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-t.C:
		}
	}
}

func printStatuses(cmd *cobra.Command, res scoresapi.ImportStatusResponse) {
	for _, s := range res.Statuses {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.CreatedAt.Local().Format(time.DateTime), s.Status)
	}
}
