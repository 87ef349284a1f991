package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Use-Tusk/tusk-sheet/internal/config"
	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/sheet"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

var (
	initColumns       string
	initBanner        string
	initOutput        string
	initRTL           bool
	initProjectConfig bool
	initForce         bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new sheet",
	Long: `Create a sheet file with the given columns. Without --columns an
interactive form asks for them. Optionally writes .tusk-sheet/config.yaml
alongside it.`,
	RunE: initSheet,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initColumns, "columns", "", "comma separated column labels, the first is the main column")
	initCmd.Flags().StringVar(&initBanner, "banner", "", "text shown above the header")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "sheet.yaml", "file to write")
	initCmd.Flags().BoolVar(&initRTL, "rtl", false, "write a project config with right-to-left columns")
	initCmd.Flags().BoolVar(&initProjectConfig, "project-config", false, "also write .tusk-sheet/config.yaml")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
}

func initSheet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if initColumns == "" {
		if !utils.IsTerminal() {
			return errors.New("--columns is required when not running in a terminal")
		}
		if err := runInitForm(); err != nil {
			return err
		}
	}

	s, err := buildSheet(initBanner, initColumns)
	if err != nil {
		return err
	}

	if err := writeNew(initOutput, initForce, s.Save); err != nil {
		return err
	}
	log.UserSuccess(fmt.Sprintf("✓ Created %s with %d columns", initOutput, len(s.Columns)))

	if initProjectConfig || initRTL {
		path := filepath.Join(filepath.Dir(initOutput), defaultProjectConfig)
		if err := writeNew(path, initForce, func(p string) error { return writeProjectConfig(p, initRTL) }); err != nil {
			return err
		}
		log.UserSuccess("✓ Created " + path)
	}

	log.UserProgress("Open it with: tusk-sheet view " + initOutput)
	return nil
}

func runInitForm() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Column labels").
				Description("Comma separated. The first column is the main one.").
				Placeholder("Room, Capacity, Notes").
				Value(&initColumns).
				Validate(func(v string) error {
					_, err := buildSheet("", v)
					return err
				}),
			huh.NewInput().
				Title("Banner").
				Description("Optional text shown above the header.").
				Value(&initBanner),
			huh.NewInput().
				Title("File").
				Value(&initOutput).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("a file name is required")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Lay columns out right to left?").
				Value(&initRTL),
		),
	).WithTheme(styles.HuhTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("init cancelled")
		}
		return err
	}
	return nil
}

// buildSheet turns a comma separated label list into a sheet. Empty labels
// are dropped. The first column is marked as the main column.
func buildSheet(banner, columns string) (*sheet.Sheet, error) {
	s := &sheet.Sheet{Banner: strings.TrimSpace(banner)}
	for _, label := range strings.Split(columns, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		s.Columns = append(s.Columns, sheet.Column{Label: label, Main: len(s.Columns) == 0})
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func writeProjectConfig(path string, rtl bool) error {
	direction := config.DirectionLTR
	if rtl {
		direction = config.DirectionRTL
	}
	data, err := yaml.Marshal(map[string]any{
		"layout": map[string]any{"direction": direction},
	})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// writeNew calls write unless path exists and force is false.
func writeNew(path string, force bool, write func(string) error) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return write(path)
}
