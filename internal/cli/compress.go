package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dropdf/internal/app"
)

func newCompressCommand(v *viper.Viper) *cobra.Command {
	var tier, output string

	cmd := &cobra.Command{
		Use:   "compress FILE...",
		Short: "Compress dropped PDF files",
		Long: `Compress one or more PDF files with the current tier, as if they were
dropped on the widget. Files without a .pdf extension are ignored.

With --output a single file is compressed to the given path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) != 1 {
				return fmt.Errorf("--output takes exactly one input file, got %d", len(args))
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()

			if tier != "" {
				if _, err := a.SelectTier(tier); err != nil {
					return err
				}
			}

			ctx := context.Background()
			stop := startSpinner(cmd.ErrOrStderr(), "Compressing")

			var result *app.DropResult
			if output != "" {
				var outcome *app.Outcome
				outcome, err = a.Compress(ctx, args[0], output, "")
				if outcome != nil {
					result = &app.DropResult{Files: []app.Outcome{*outcome}}
				}
			} else {
				result, err = a.Drop(ctx, args)
			}
			stop()

			if result != nil {
				printDropResult(cmd.OutOrStdout(), result, a.Stats())
			}
			if err != nil {
				return err
			}
			if failed := result.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(result.Files))
			}
			if len(result.Files) == 0 {
				return fmt.Errorf("no PDF files given")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tier, "tier", "t", "", "Select this tier and keep it as the current tier for later drops")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the compressed file to this path")
	return cmd
}

func printDropResult(w io.Writer, result *app.DropResult, stats app.AppStats) {
	for _, skipped := range result.Skipped {
		fmt.Fprintf(w, "%s %s\n", yellow("skipped"), gray(skipped))
	}
	for _, f := range result.Files {
		if f.Status != app.StatusCompleted {
			fmt.Fprintf(w, "%s %s\n  %s\n", red("failed "), f.Input, gray(f.Error))
			continue
		}
		fmt.Fprintf(w, "%s %s -> %s\n", green("done   "), f.Input, f.Output)
		if f.OriginalSize > 0 {
			fmt.Fprintf(w, "  %s -> %s (%.1f%% smaller) in %s\n",
				humanize.Bytes(uint64(f.OriginalSize)),
				humanize.Bytes(uint64(f.CompressedSize)),
				f.CompressionRatio,
				f.Duration.Round(time.Millisecond))
		}
	}
	if stats.FilesCompressed > 1 && stats.DataSaved() > 0 {
		fmt.Fprintf(w, "%s %s saved across %d files\n",
			bold("total"), humanize.Bytes(uint64(stats.DataSaved())), stats.FilesCompressed)
	}
}

// startSpinner shows a spinner on w while a job runs, only when w is a terminal.
// The returned func stops and clears it.
func startSpinner(w io.Writer, description string) func() {
	f, ok := w.(*os.File)
	if !ok || !isTTY(f) {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(f),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		_ = bar.Finish()
	}
}
