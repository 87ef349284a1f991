package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Use-Tusk/tusk-sheet/internal/cliconfig"
	"github.com/Use-Tusk/tusk-sheet/internal/config"
	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/sheet"
	"github.com/Use-Tusk/tusk-sheet/internal/tui"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/components"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

var (
	viewRTL         bool
	viewActivity    bool
	viewResetWidths bool
	viewWatch       bool
)

//go:embed short_docs/view.md
var viewContent string

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a sheet and resize its columns with the mouse",
	Long:  utils.RenderMarkdown(viewContent),
	Args:  cobra.MaximumNArgs(1),
	RunE:  viewSheet,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVar(&viewRTL, "rtl", false, "lay columns out right to left")
	viewCmd.Flags().BoolVar(&viewActivity, "activity", false, "start with the activity panel open")
	viewCmd.Flags().BoolVar(&viewResetWidths, "reset-widths", false, "ignore remembered column widths")
	viewCmd.Flags().BoolVar(&viewWatch, "watch", true, "reload the sheet when the file changes")
}

func viewSheet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if !utils.IsTerminal() {
		return fmt.Errorf("view needs an interactive terminal; use 'tusk-sheet resize' for scripted drags")
	}

	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	user, err := cliconfig.Load()
	if err != nil {
		log.Warn("Ignoring unreadable user config", "error", err)
		user = &cliconfig.Config{}
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = components.SelectSheet("Which sheet do you want to open?", sheetCandidates(user))
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("no sheet given and no *.yaml files found; run 'tusk-sheet init' to create one")
		}
	}

	s, err := sheet.Load(path)
	if err != nil {
		return err
	}

	opts := tui.Options{
		RTL:          viewRTL || cfg.IsRTL(),
		Banner:       cfg.Layout.Banner,
		AllMotion:    *cfg.Mouse.AllMotion,
		MinWidth:     cfg.UI.MinWidth,
		MinHeight:    cfg.UI.MinHeight,
		InitialWidth: utils.TerminalWidth(80),
		ShowActivity: viewActivity,
		Watch:        viewWatch,
	}
	if !viewResetWidths {
		opts.Widths = user.SavedWidths(path)
	}

	// Logs would tear the alt screen, so they go to the debug file while
	// the viewer runs.
	if err := setupLogger(log.ModeTUI, cfg.UI.DebugLog); err != nil {
		return err
	}
	widths, runErr := tui.ShowSheet(s, opts)
	if err := setupLogger(log.ModeHeadless, ""); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("viewer failed: %w", runErr)
	}

	user.RememberSheet(path)
	if len(widths) > 0 {
		user.SetSavedWidths(path, widths)
	} else {
		user.ForgetWidths(path)
	}
	if err := user.Save(); err != nil {
		log.Warn("Could not save column widths", "error", err)
	}

	log.Debug("Viewer closed", "sheet", path, "widths", utils.FormatWidths(widths))
	return nil
}

// sheetCandidates lists recent sheets that still exist followed by YAML
// files in the working directory.
func sheetCandidates(user *cliconfig.Config) []components.SheetOption {
	var paths []string
	for _, p := range user.RecentSheets {
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}

	local, _ := filepath.Glob("*.yaml")
	for _, p := range local {
		abs, err := filepath.Abs(p)
		if err != nil || slices.Contains(paths, abs) {
			continue
		}
		paths = append(paths, p)
	}

	var options []components.SheetOption
	for _, p := range paths {
		s, err := sheet.Load(p)
		if err != nil {
			log.Debug("Skipping unreadable sheet", "path", p, "error", err)
			continue
		}
		options = append(options, components.SheetOption{Path: p, Banner: s.Banner})
	}
	return options
}
