package components

import (
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/Use-Tusk/tusk-sheet/internal/tui/styles"
)

// SheetOption is one candidate sheet file in the picker.
type SheetOption struct {
	Path   string
	Banner string
}

func (o SheetOption) label() string {
	name := filepath.Base(o.Path)
	if o.Banner == "" {
		return name
	}
	return o.Banner + " (" + name + ")"
}

// SelectSheet asks the user to pick one of options and returns its path. It
// returns "" without prompting when there is nothing to choose from.
func SelectSheet(prompt string, options []SheetOption) (string, error) {
	switch len(options) {
	case 0:
		return "", nil
	case 1:
		return options[0].Path, nil
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.label(), opt.Path)
	}

	selected := options[0].Path
	err := huh.NewSelect[string]().
		Title(prompt).
		Options(huhOptions...).
		Value(&selected).
		WithTheme(styles.HuhTheme()).
		Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}
