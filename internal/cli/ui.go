package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/backdrop"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// swatch renders a color name on a block of that color.
func swatch(c backdrop.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.String())).
		Foreground(lipgloss.Color(c.Inverse().String())).
		Render(c.String())
}

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printStats prints parts on a single dim line separated by dots.
func printStats(w io.Writer, parts ...string) {
	sep := styleDim.Render(" · ")
	fmt.Fprintln(w, "  "+strings.Join(parts, sep))
}

// printSeedSummary reports a composed image.
func printSeedSummary(w io.Writer, path string, res *backdrop.Result, bg backdrop.Color) {
	b := res.Image.Bounds()
	printSuccess(w, "seeded %s", styleNumber.Render(fmt.Sprintf("%dx%d", b.Dx(), b.Dy())))
	printFile(w, path)

	font := "no text"
	if res.Size > 0 {
		font = fmt.Sprintf("%s %.1fpx", res.Font, res.Size)
	}
	printStats(w,
		styleDim.Render(font),
		swatch(res.Foreground)+styleDim.Render(" on ")+swatch(bg),
	)
}
