package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Use-Tusk/tusk-sheet/internal/cliconfig"
	"github.com/Use-Tusk/tusk-sheet/internal/config"
	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
	"github.com/Use-Tusk/tusk-sheet/internal/version"
)

var (
	cfgFile     string
	debug       bool
	showVersion bool

	signalSetup sync.Once
)

//go:embed short_docs/overview.md
var overviewContent string

var rootCmd = &cobra.Command{
	Use:   "tusk-sheet",
	Short: "Terminal sheet viewer with draggable column widths",
	Long:  utils.RenderMarkdown(overviewContent),
	Run: func(cmd *cobra.Command, args []string) {
		showIntro()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			version.PrintVersion()
			os.Exit(0)
		}
		if err := setupLogger(log.ModeHeadless, ""); err != nil {
			return err
		}
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		applyTheme()
		setupSignalHandling()
		log.Debug("Running command", "command", cmd.CommandPath(), "flags", usedFlags(cmd))
		return nil
	},
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func Execute() error {
	defer log.Shutdown()

	err := rootCmd.Execute()
	if err != nil {
		log.UserError(err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tusk-sheet/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "show version and exit")
}

func showIntro() {
	fmt.Println(styles.TitleStyle.Render("tusk-sheet " + version.Version))
	fmt.Println("Drag the ┃ between header cells to resize columns.")
	fmt.Println()
	fmt.Println(styles.DimStyle.Render(`Use "tusk-sheet --help" for more information about available commands.`))
}

func setupLogger(mode log.OutputMode, logPath string) error {
	return log.Setup(debug, mode, logPath)
}

// applyTheme resolves dark mode: project config wins over the user setting,
// which wins over terminal detection.
func applyTheme() {
	if cfg, err := config.Get(); err == nil && cfg.UI.DarkMode != nil {
		styles.SetDarkMode(cfg.UI.DarkMode)
		return
	}
	if user, err := cliconfig.Load(); err == nil && user.DarkMode != nil {
		styles.SetDarkMode(user.DarkMode)
	}
}

// usedFlags returns the names of flags that were set (not values)
func usedFlags(cmd *cobra.Command) []string {
	var flags []string
	cmd.Flags().Visit(func(f *pflag.Flag) {
		flags = append(flags, "--"+f.Name)
	})
	return flags
}

// setupSignalHandling sets up signal handlers for graceful shutdown
func setupSignalHandling() {
	signalSetup.Do(func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-c
			fmt.Fprintf(os.Stderr, "Received %s signal, exiting\n", sig)
			log.Shutdown()
			os.Exit(1)
		}()

		log.Debug("Signal handling setup complete")
	})
}
