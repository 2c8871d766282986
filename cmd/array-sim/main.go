// Command array-sim simulates microphone array impulse responses, renders
// dry signals through them and estimates directions of arrival.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-array/internal/logging"
)

var version = "0.1.0"

var (
	primaryColor = lipgloss.Color("#2F6FDE")
	mutedColor   = lipgloss.Color("#888888")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))
	keyStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	valueStyle = lipgloss.NewStyle().Bold(true)
)

// CLI defines the command-line interface
type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version information"`
	LogLevel string           `default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Simulate SimulateCmd `cmd:"" help:"Simulate impulse responses and write one WAV per source"`
	Render   RenderCmd   `cmd:"" help:"Convolve a dry signal with the response of one source"`
	FitDOA   FitDOACmd   `cmd:"" name:"fit-doa" help:"Estimate the direction of an observed array response"`
	Info     InfoCmd     `cmd:"" help:"Print the resolved array geometry"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("array-sim"),
		kong.Description("Microphone array response simulator"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	logging.SetLevel(logging.ParseLevel(cli.LogLevel))

	if err := ctx.Run(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}

func printKV(key string, format string, args ...any) {
	fmt.Printf("%s %s\n", keyStyle.Render(key+":"), valueStyle.Render(fmt.Sprintf(format, args...)))
}
