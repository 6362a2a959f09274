package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/skycount/internal/model"
	"github.com/Makepad-fr/skycount/internal/signal"
	"github.com/Makepad-fr/skycount/internal/store"
)

func (a *app) newReplayCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "replay SIGNAL...",
		Short: "Apply signals to a state and print the result",
		Long: `Folds the named signals over the initial state (or --from) and prints
the final state as JSON. Unknown names are applied as no-ops.`,
		Example: `  skycount replay INCREMENT INCREMENT INCREMENT
  skycount replay --from '{"counter":3}' DECREMENT
  skycount replay SIGN_IN SIGN_IN`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := model.Initial()
			if strings.TrimSpace(from) != "" {
				if err := json.Unmarshal([]byte(from), &initial); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}

			sigs := make([]signal.Signal, 0, len(args))
			for _, arg := range args {
				s := signal.Parse(strings.ToUpper(strings.TrimSpace(arg)))
				if _, unknown := s.(signal.Unknown); unknown {
					a.log.Warn("unknown signal applied as no-op", zap.String("type", s.Type()))
				}
				sigs = append(sigs, s)
			}

			final := store.Replay(initial, sigs...)
			b, err := json.MarshalIndent(final, "", "  ")
			if err != nil {
				return fmt.Errorf("json marshal: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "starting state as JSON")
	return cmd
}
