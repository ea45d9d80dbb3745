// Package presenter provides consistent CLI output for user-facing messages,
// including per-item result lines, warnings and prompts, with color support
// and quiet mode.
package presenter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorEnvVar overrides color detection: always, never or auto
const ColorEnvVar = "TXNLAB_SKILLS_COLOR"

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Failure(message string)
	Detail(field, message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Prompt(question string, options ...string) string
	Confirm(question string, defaultYes bool) bool
	Separator()
	SetQuiet(quiet bool)
	IsQuiet() bool
	Output() io.Writer
}

// TerminalPresenter implements Presenter for terminal output
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	input       io.Reader
	colorMode   ColorMode
	quiet       bool
}

// ColorMode represents different color output modes
type ColorMode int

const (
	// ColorAuto lets the color package decide from the terminal
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// ParseColorMode maps a config or env value to a ColorMode. Unknown values
// mean auto.
func ParseColorMode(value string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "always", "force", "on":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// New creates a new TerminalPresenter with default settings
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	presenter := &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		input:       os.Stdin,
	}
	presenter.SetColorMode(colorMode)
	return presenter
}

// SetInput replaces the reader used by Prompt and Confirm
func (p *TerminalPresenter) SetInput(r io.Reader) {
	p.input = r
}

// SetColorMode configures the color package for the given mode
func (p *TerminalPresenter) SetColorMode(mode ColorMode) {
	p.colorMode = mode
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
}

func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	return ParseColorMode(os.Getenv(ColorEnvVar))
}

// Output returns the writer used for regular output
func (p *TerminalPresenter) Output() io.Writer {
	return p.output
}

// Error displays an error message to stderr. Errors are shown in quiet mode.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Success displays a success line
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}

	color.New(color.FgGreen).Fprint(p.output, "  ✔ ")
	fmt.Fprintf(p.output, "%s\n", message)
}

// Failure displays a failed result line. Like Error it ignores quiet mode.
func (p *TerminalPresenter) Failure(message string) {
	color.New(color.FgRed).Fprint(p.errorOutput, "  ✘ ")
	fmt.Fprintf(p.errorOutput, "%s\n", message)
}

// Detail displays an indented field/message line under a failed result
func (p *TerminalPresenter) Detail(field, message string) {
	fmt.Fprintf(p.errorOutput, "    %s %s\n", color.New(color.Faint).Sprint(field+":"), message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}

	color.New(color.FgYellow, color.Bold).Fprintf(p.errorOutput, "⚠ %s\n", message)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a bold header line
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	color.New(color.Bold).Fprintf(p.output, "%s\n", title)
}

// Prompt displays a prompt and reads one line of input
func (p *TerminalPresenter) Prompt(question string, options ...string) string {
	promptColor := color.New(color.FgCyan)

	if len(options) > 0 {
		promptColor.Fprintf(p.output, "%s [%s]: ", question, strings.Join(options, "/"))
	} else {
		promptColor.Fprintf(p.output, "%s: ", question)
	}

	reader := bufio.NewReader(p.input)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return ""
	}

	return strings.TrimSpace(response)
}

// Confirm asks a yes/no question. An empty answer picks the default.
func (p *TerminalPresenter) Confirm(question string, defaultYes bool) bool {
	options := []string{"y", "N"}
	if defaultYes {
		options = []string{"Y", "n"}
	}

	switch strings.ToLower(p.Prompt(question, options...)) {
	case "y", "yes":
		return true
	case "":
		return defaultYes
	default:
		return false
	}
}

// Separator displays a visual separator
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}

	color.New(color.Faint).Fprintf(p.output, "%s\n", strings.Repeat("-", 60))
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// Default returns the process-wide presenter
func Default() *TerminalPresenter {
	return defaultPresenter
}

// Error displays an error message using the default presenter
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success displays a success line using the default presenter
func Success(message string) {
	defaultPresenter.Success(message)
}

// Failure displays a failed result line using the default presenter
func Failure(message string) {
	defaultPresenter.Failure(message)
}

// Warning displays a warning using the default presenter
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a header using the default presenter
func Section(title string) {
	defaultPresenter.Section(title)
}

// Confirm asks a yes/no question using the default presenter
func Confirm(question string, defaultYes bool) bool {
	return defaultPresenter.Confirm(question, defaultYes)
}

// SetQuiet toggles quiet mode on the default presenter
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}
