package cmd

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Use-Tusk/tusk-sheet/internal/cliconfig"
	"github.com/Use-Tusk/tusk-sheet/internal/config"
	"github.com/Use-Tusk/tusk-sheet/internal/replay"
	"github.com/Use-Tusk/tusk-sheet/internal/sheet"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

const resizeTimeout = 10 * time.Second

// outputFormat is a pflag.Value restricted to the formats resize can print.
type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatText outputFormat = "text"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch outputFormat(strings.ToLower(v)) {
	case formatJSON, formatText:
		*f = outputFormat(strings.ToLower(v))
		return nil
	default:
		return fmt.Errorf("must be %q or %q", formatJSON, formatText)
	}
}

func (f *outputFormat) Type() string { return "format" }

var (
	resizeBoundary  int
	resizeDeltas    []float64
	resizeRTL       bool
	resizeTotal     int
	resizeFormat    = formatJSON
	resizeUseSaved  bool
	resizeSaveAfter bool
)

//go:embed short_docs/resize.md
var resizeContent string

var resizeCmd = &cobra.Command{
	Use:   "resize <file>",
	Short: "Replay a column drag without a terminal",
	Long:  utils.RenderMarkdown(resizeContent),
	Args:  cobra.ExactArgs(1),
	RunE:  resizeSheet,
}

func init() {
	rootCmd.AddCommand(resizeCmd)

	resizeCmd.Flags().IntVar(&resizeBoundary, "boundary", 0, "index of the column whose trailing resizer is dragged")
	resizeCmd.Flags().Float64SliceVar(&resizeDeltas, "delta", nil, "pointer offset from the press point, repeat for several moves")
	resizeCmd.Flags().BoolVar(&resizeRTL, "rtl", false, "lay columns out right to left")
	resizeCmd.Flags().IntVar(&resizeTotal, "width-total", 0, "width split across columns without a configured width (default: terminal width)")
	resizeCmd.Flags().Var(&resizeFormat, "format", `output format: "json" or "text"`)
	resizeCmd.Flags().BoolVar(&resizeUseSaved, "use-saved", false, "start from the widths remembered by 'view'")
	resizeCmd.Flags().BoolVar(&resizeSaveAfter, "save", false, "remember the final widths for 'view'")
}

func resizeSheet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	s, err := sheet.Load(path)
	if err != nil {
		return err
	}

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	req := replay.Request{
		Boundary:   resizeBoundary,
		Deltas:     resizeDeltas,
		RTL:        resizeRTL || cfg.IsRTL(),
		TotalWidth: resizeTotal,
	}
	if req.TotalWidth <= 0 {
		req.TotalWidth = utils.TerminalWidth(80)
	}

	var user *cliconfig.Config
	if resizeUseSaved || resizeSaveAfter {
		if user, err = cliconfig.Load(); err != nil {
			return fmt.Errorf("failed to load user config: %w", err)
		}
	}
	if resizeUseSaved {
		req.Widths = user.SavedWidths(path)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, resizeTimeout)
	defer cancel()

	steps, err := replay.Run(ctx, s, req)
	if err != nil {
		return err
	}

	if err := printSteps(cmd.OutOrStdout(), resizeFormat, replay.StartWidths(s, req), steps); err != nil {
		return err
	}

	if resizeSaveAfter && len(steps) > 0 {
		user.SetSavedWidths(path, steps[len(steps)-1].Widths)
		if err := user.Save(); err != nil {
			return fmt.Errorf("failed to save widths: %w", err)
		}
	}
	return nil
}

func printSteps(w io.Writer, format outputFormat, start []float64, steps []replay.Step) error {
	if format == formatText {
		fmt.Fprintf(w, "start     %s\n", utils.FormatWidths(start))
		for _, st := range steps {
			fmt.Fprintf(w, "%+8g  %s\n", st.DeltaX, utils.FormatWidths(st.Widths))
		}
		return nil
	}

	encoder := json.NewEncoder(w)
	for _, st := range steps {
		if err := encoder.Encode(st); err != nil {
			return fmt.Errorf("failed to encode step: %w", err)
		}
	}
	return nil
}
