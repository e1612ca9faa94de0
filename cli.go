package treediff

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type CLIConfig struct {
	Filter       string
	NormalizeEOL bool
	Force        bool
	ChangeSetDir string
	DryRun       bool
	Verbose      bool
	CopyTo       string
	NoAnimation  bool
	Completion   string
}

var cfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "treediff",
	Short: "Compare two directory trees and replay the differences.",
	Long: `Compare two directory trees into a re-playable change-set, or replay a
previously generated change-set onto a target tree.

Example: treediff diff old/ new/ && treediff apply old/ --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return handleCompletion(cmd)
		}
		return cmd.Help()
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <tree-a> <tree-b>",
	Short: "Classify the differences between two trees into a change-set.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := NewApp(&Config{
			Mode:         ModeDiff,
			TreeA:        args[0],
			TreeB:        args[1],
			Filter:       cfg.Filter,
			NormalizeEOL: cfg.NormalizeEOL,
			Overwrite:    cfg.Force,
			ChangeSetDir: cfg.ChangeSetDir,
			Verbose:      cfg.Verbose,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		return NewTUI(app, cfg.NoAnimation).Run()
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <target>",
	Short: "Replay a change-set onto a target tree.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := NewApp(&Config{
			Mode:         ModeApply,
			Target:       args[0],
			Filter:       cfg.Filter,
			DryRun:       cfg.DryRun,
			Verbose:      cfg.Verbose,
			CopyTo:       cfg.CopyTo,
			Overwrite:    cfg.Force,
			ChangeSetDir: cfg.ChangeSetDir,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		out, err := app.Execute()
		if err != nil {
			return err
		}
		fmt.Print(FormatOutcome(out))
		return nil
	},
}

func handleCompletion(cmd *cobra.Command) error {
	switch cfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cfg.Completion)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Completion, "completion", "", "Generate completion script")
	rootCmd.PersistentFlags().StringVarP(&cfg.Filter, "filter", "f", "", "Comma-separated glob patterns selecting files")
	rootCmd.PersistentFlags().StringVarP(&cfg.ChangeSetDir, "changeset", "c", ".", "Change-set directory")
	rootCmd.PersistentFlags().BoolVar(&cfg.Force, "force", false, "Overwrite an existing change-set or copy destination")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Report every action taken")

	diffCmd.Flags().BoolVarP(&cfg.NormalizeEOL, "normalize-eol", "n", false, "Normalize line endings before comparing")
	diffCmd.Flags().BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable spinner")

	applyCmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Validate and report without changing anything")
	applyCmd.Flags().StringVar(&cfg.CopyTo, "copy-to", "", "Clone the target tree here and apply to the clone")

	rootCmd.AddCommand(diffCmd, applyCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
