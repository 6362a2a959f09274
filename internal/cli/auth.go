package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/skycount/internal/config"
	"github.com/Makepad-fr/skycount/internal/ui"
)

func (a *app) newAuthCmd() *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Manage the weather API key",
	}
	auth.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Store a weatherapi.com key in ~/.skycount/credentials.json",
			Args:  cobra.NoArgs,
			RunE:  a.authLogin,
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Delete the stored key",
			Args:  cobra.NoArgs,
			RunE:  a.authLogout,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the key comes from",
			Args:  cobra.NoArgs,
			RunE:  a.authStatus,
		},
	)
	return auth
}

func (a *app) authLogin(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.OutOrStdout(), "Paste your weatherapi.com key: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return fmt.Errorf("read key: %w", err)
	}
	if err := config.SetKey(line); err != nil {
		return fmt.Errorf("save key: %w", err)
	}
	a.log.Info("api key stored")
	ui.OK(cmd.OutOrStdout(), "key saved")
	return nil
}

func (a *app) authLogout(cmd *cobra.Command, args []string) error {
	ki, _ := config.GetKey()
	if ki != nil && ki.Source == "env" {
		ui.OK(cmd.OutOrStdout(), "key is provided by "+ki.EnvVar+" (nothing to delete)")
		return nil
	}
	if err := config.DeleteKey(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	ui.OK(cmd.OutOrStdout(), "key removed")
	return nil
}

func (a *app) authStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ki, err := config.GetKey()
	if err != nil {
		return err
	}
	if ki == nil {
		fmt.Fprintln(out, ui.Current().Muted.Render("no key configured"))
		fmt.Fprintln(out, "Run: skycount auth login")
		return nil
	}
	source := ki.Source
	if ki.EnvVar != "" {
		source += " (" + ki.EnvVar + ")"
	}
	lines := []string{
		"source: " + source,
		"key:    " + mask(ki.Key),
	}
	if !ki.CreatedAt.IsZero() {
		lines = append(lines, "saved:  "+ki.CreatedAt.UTC().Format(time.RFC3339))
	}
	ui.Panel(out, lines)
	fmt.Fprintln(out, "env override: SKYCOUNT_WEATHER_KEY, WEATHER_API_KEY")
	return nil
}

// mask keeps the last four characters of a key.
func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
