package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTiersCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List quality tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			tiers, err := a.Tiers()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, t := range tiers {
				marker := " "
				name := t.Name
				if t.Current {
					marker = green("*")
					name = bold(t.Name)
				}
				fmt.Fprintf(w, "%s %s %s\n", marker, name, gray(strings.Join(t.Flags, " ")))
			}
			return nil
		},
	}
}

func newSelectCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "select TIER",
		Short: "Set the quality tier used for drops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.SelectTier(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s tier %s\n", green("Selected"), bold(sess.Tier))
			return nil
		},
	}
}

func newOutputCommand(v *viper.Viper) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "output [DIR]",
		Short: "Set the directory compressed files are written to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !reset && len(args) == 0 {
				return fmt.Errorf("give a directory or --reset")
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			dir := ""
			if !reset {
				dir = args[0]
			}
			sess, err := a.SetOutputDir(dir)
			if err != nil {
				return err
			}

			if sess.OutputDir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Compressed files will be written next to their inputs")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("Output directory"), sess.OutputDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Write next to each input file again")
	return cmd
}
