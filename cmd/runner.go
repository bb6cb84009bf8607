package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/groove-cli/groove/internal/auth"
	"github.com/groove-cli/groove/internal/shared"
	"github.com/groove-cli/groove/internal/spotify"
	"github.com/groove-cli/groove/internal/tasks"
	"github.com/urfave/cli/v3"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	auth   *auth.Authenticator
	client *spotify.Client
	engine *tasks.SyncEngine
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Auth   *auth.Authenticator
	Client *spotify.Client
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var engine *tasks.SyncEngine
	if opts.Client != nil {
		engine = tasks.NewSyncEngine(opts.Client)
	}

	return &Runner{
		config: opts.Config,
		auth:   opts.Auth,
		client: opts.Client,
		engine: engine,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, searchCommand, playlistCommand, syncCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireClient guards command actions that need an authenticated API client.
func (r *Runner) requireClient() error {
	if r.client == nil {
		return fmt.Errorf("%w: add spotify credentials to %s (run `groove setup`)",
			shared.ErrMissingConfig, shared.DefaultConfigPath())
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeHeader(title string) {
	r.writePlain("%s\n", headerStyle.Render(title))
	r.writePlain("%s\n", dimStyle.Render("═══════════════════════════════════════"))
}
