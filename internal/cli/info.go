package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dropdf/internal/app"
	"dropdf/internal/config"
)

func newArgsCommand(v *viper.Viper) *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "args INPUT OUTPUT",
		Short: "Print the Ghostscript arguments for a job without running it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			gsArgs, err := a.Args(args[0], args[1], tier)
			if err != nil {
				return err
			}
			for _, arg := range gsArgs {
				fmt.Fprintln(cmd.OutOrStdout(), arg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tier, "tier", "t", "", "Tier to use (default: current tier)")
	return cmd
}

func newWhereCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Print the configuration file used for this run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), a.ConfigPath())
			return nil
		},
	}
}

func newInitCommand(v *viper.Viper) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default profile document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString(config.KeyConfig)
			if err := app.WriteDefaultConfig(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("Wrote"), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newStatusCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, session and Ghostscript status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			status, err := a.Status()
			if err != nil {
				return err
			}

			gs := green("available")
			if !status.GhostscriptAvailable {
				gs = red("not found")
			}
			outputDir := status.OutputDir
			if outputDir == "" {
				outputDir = gray("next to input")
			}
			database := status.DatabasePath
			if database == "" {
				database = gray("in memory")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", bold(status.AppName))
			fmt.Fprintf(w, "  %-12s %s\n", "config", status.ConfigPath)
			fmt.Fprintf(w, "  %-12s %s\n", "session", database)
			fmt.Fprintf(w, "  %-12s %s (%s)\n", "ghostscript", status.GhostscriptPath, gs)
			fmt.Fprintf(w, "  %-12s %s %s\n", "tier", cyan(status.Tier), gray(status.Picture))
			fmt.Fprintf(w, "  %-12s %s\n", "output", outputDir)
			return nil
		},
	}
}
