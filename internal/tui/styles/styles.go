//nolint:unused
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	HasDarkBackground = lipgloss.HasDarkBackground()

	PrimaryColor   string
	SecondaryColor = "55"
	WarningColor   = "214"

	// BorderColor is used for borders and dividers
	BorderColor = "240"

	// AccentColor is used for highlights and the resizer being dragged
	AccentColor = "205"

	// SubtleBgColor is used for the header row background
	SubtleBgColor string

	// ErrorColor is used for error states
	ErrorColor = "196"

	// SuccessColor is used for success states
	SuccessColor string
)

var (
	TitleStyle        lipgloss.Style
	HeadingStyle      lipgloss.Style
	SuccessStyle      lipgloss.Style
	ErrorStyle        lipgloss.Style
	WarningStyle      lipgloss.Style
	DimStyle          lipgloss.Style
	HelpStyle         lipgloss.Style
	BorderDimStyle    lipgloss.Style
	BoxStyle          lipgloss.Style
	WarningBoxStyle   lipgloss.Style
	TextCenterStyle   lipgloss.Style
	BannerStyle       lipgloss.Style
	HeaderCellStyle   lipgloss.Style
	ExpanderStyle     lipgloss.Style
	ResizerStyle      lipgloss.Style
	ResizerDragStyle  lipgloss.Style
	BodyCellStyle     lipgloss.Style
	StatusLineStyle   lipgloss.Style
	ScrollbarThumb    lipgloss.Style
	ScrollbarTrack    lipgloss.Style
	HeaderUnderline   lipgloss.Style
	SelectedCellStyle lipgloss.Style
)

func init() {
	build()
}

// SetDarkMode overrides background detection. Nil restores detection.
func SetDarkMode(dark *bool) {
	if dark == nil {
		HasDarkBackground = lipgloss.HasDarkBackground()
	} else {
		HasDarkBackground = *dark
	}
	build()
}

func build() {
	PrimaryColor = "53"
	SubtleBgColor = "254"
	SuccessColor = "34"
	if HasDarkBackground {
		PrimaryColor = "213"
		SubtleBgColor = "236"
		SuccessColor = "42"
	}

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(PrimaryColor)).
		MarginBottom(1)

	HeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(PrimaryColor))

	SuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(SuccessColor))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ErrorColor))

	WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(WarningColor))

	DimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	HelpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	BorderDimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(BorderColor))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	WarningBoxStyle = BoxStyle.
		BorderForeground(lipgloss.Color(WarningColor))

	TextCenterStyle = lipgloss.NewStyle().Align(lipgloss.Center)

	BannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color(SecondaryColor)).
		Align(lipgloss.Center)

	HeaderCellStyle = lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(SubtleBgColor))

	ExpanderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(PrimaryColor)).
		Background(lipgloss.Color(SubtleBgColor))

	ResizerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(BorderColor)).
		Background(lipgloss.Color(SubtleBgColor))

	ResizerDragStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(AccentColor)).
		Background(lipgloss.Color(SubtleBgColor)).
		Bold(true)

	HeaderUnderline = lipgloss.NewStyle().
		Foreground(lipgloss.Color(BorderColor))

	BodyCellStyle = lipgloss.NewStyle()

	SelectedCellStyle = func() lipgloss.Style {
		foreground := "231"
		if HasDarkBackground {
			foreground = "229"
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(foreground)).
			Background(lipgloss.Color(SecondaryColor))
	}()

	StatusLineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(PrimaryColor))

	ScrollbarThumb = lipgloss.NewStyle().
		Foreground(lipgloss.Color(PrimaryColor))

	ScrollbarTrack = DimStyle
}

func NoColor() bool {
	return termenv.EnvNoColor()
}

// HuhTheme returns a huh theme using our style system
func HuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.Color(PrimaryColor)

	t.Focused.Title = lipgloss.NewStyle().Bold(true).Underline(true)

	// Remove the vertical line on the left (base border)
	t.Focused.Base = lipgloss.NewStyle().PaddingLeft(0)
	t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(0)

	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(primary).SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(primary)

	return t
}
