// Package console is a terminal front end for the chat widget.
package console

import (
	"fmt"

	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/profile"
	"github.com/set-night/endoally/internal/service"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ally command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "ally",
		Short: "Chat with Endo Ally from the terminal",
		Long: `Endo Ally answers questions about endometriosis and the work of the
Endo Violence Collective.

Quick Start:
  export GEMINI_API_KEY=...
  ally chat              # standard mode
  ally chat --thinking   # slower, for complex questions`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.AddCommand(newChatCmd())
	return root
}

func newChatCmd() *cobra.Command {
	var (
		thinking    bool
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadModel()
			if err != nil {
				return err
			}
			if profilePath == "" {
				profilePath = cfg.ProfilePath
			}

			prof, err := profile.Load(profilePath)
			if err != nil {
				return fmt.Errorf("load assistant profile: %w", err)
			}

			remote, err := service.NewGeminiRemote(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.RequestTimeout)
			if err != nil {
				return fmt.Errorf("create gemini client: %w", err)
			}

			widget := service.NewController(remote, prof)
			return NewREPL(widget, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.RequestTimeout).Run(cmd.Context(), thinking)
		},
	}

	cmd.Flags().BoolVar(&thinking, "thinking", false, "Start in thinking mode (uses the larger model)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to an assistant profile YAML (overrides PROFILE_PATH)")
	return cmd
}
