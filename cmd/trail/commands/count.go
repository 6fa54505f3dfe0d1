package commands

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/trail/internal/app"
	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/trail/internal/ui/output"
	"go.trai.ch/trail/internal/ui/style"
	"go.trai.ch/zerr"
)

// adHocQueryName names the single query built from command line flags.
const adHocQueryName = "adhoc"

func (c *CLI) newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [queries...]",
		Short: "Count paths for the named queries, or for all of them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ws, opts, err := c.workspaceFor(cmd, args)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := c.app.Close(); err == nil && closeErr != nil {
					err = zerr.Wrap(closeErr, "failed to close telemetry")
				}
			}()

			out := cmd.OutOrStdout()
			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				return c.app.Watch(cmd.Context(), ws, args, opts, func(results []domain.Result) {
					printResults(out, results)
				})
			}

			results, err := c.app.Run(cmd.Context(), ws, args, opts)
			if err != nil {
				return err
			}
			printResults(out, results)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Recompute every query even when a stored result matches")
	cmd.Flags().BoolP("watch", "w", false, "Count again whenever the graph file changes")
	cmd.Flags().String("strategy", "", "Constrained counting strategy: resolver or exact")
	cmd.Flags().String("input", "", "Graph file for a single ad-hoc query; skips the workspace file")
	cmd.Flags().String("from", "", "Start node of the ad-hoc query")
	cmd.Flags().String("to", "", "Target node of the ad-hoc query")
	cmd.Flags().StringSlice("via", nil, "Waypoints of the ad-hoc query")
	cmd.MarkFlagsRequiredTogether("input", "from", "to")

	return cmd
}

// workspaceFor builds the workspace for a count invocation, either from flags or from the
// workspace file.
func (c *CLI) workspaceFor(cmd *cobra.Command, args []string) (*domain.Workspace, app.RunOptions, error) {
	force, _ := cmd.Flags().GetBool("force")
	strategyFlag, _ := cmd.Flags().GetString("strategy")
	input, _ := cmd.Flags().GetString("input")
	opts := app.RunOptions{Force: force}

	if input == "" {
		if cmd.Flags().Changed("via") {
			return nil, opts, zerr.New("--via requires --input, --from and --to")
		}
		configPath, _ := cmd.Flags().GetString("config")
		ws, err := c.app.LoadWorkspace(configPath)
		if err != nil {
			return nil, opts, err
		}
		if strategyFlag != "" {
			strategy, err := domain.ParseStrategy(strategyFlag)
			if err != nil {
				return nil, opts, err
			}
			ws.Strategy = strategy
		}
		return ws, opts, nil
	}

	if len(args) > 0 {
		return nil, opts, zerr.With(zerr.New("query names cannot be combined with --input"), "queries", args)
	}
	strategy, err := domain.ParseStrategy(strategyFlag)
	if err != nil {
		return nil, opts, err
	}
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	via, _ := cmd.Flags().GetStringSlice("via")

	opts.SkipStore = true
	return &domain.Workspace{
		Input:    input,
		Strategy: strategy,
		Queries: []domain.Query{{
			Name:      adHocQueryName,
			Start:     from,
			Target:    to,
			Waypoints: via,
		}},
	}, opts, nil
}

// printResults writes one line per result. Query names are bold and cache hits are marked when
// w is a terminal.
func printResults(w io.Writer, results []domain.Result) {
	out := output.New(w)
	for _, res := range results {
		suffix := ""
		if res.Cached {
			suffix = " " + out.String("(cached)").Foreground(termenv.RGBColor(string(style.Moss))).String()
		}
		_, _ = fmt.Fprintf(w, "%s: paths=%d constrained=%d%s\n",
			out.String(res.Query.Name).Bold(), res.AllPaths, res.Constrained, suffix)
	}
}
