package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"golang.org/x/term"

	"greetbox/pkg/config"
	"greetbox/pkg/form"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the greeting form in a terminal UI",
	Long:  "Start a minimal Bubble Tea front-end for the greeting form.",
	RunE:  runTUI,
}

// greetingMsg carries a display change from the form into the program.
type greetingMsg form.DisplayState

type tuiModel struct {
	form     *form.Form
	input    textinput.Model
	greeting form.DisplayState
	backend  string
}

func newTUIModel(f *form.Form, backend string) tuiModel {
	input := textinput.New()
	input.Placeholder = "Enter your name"
	input.Focus()
	input.Prompt = "Enter your name: "

	return tuiModel{
		form:     f,
		input:    input,
		greeting: f.State(),
		backend:  backend,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.form.OnSubmit(form.NameEvent(m.input.Value()))
			return m, nil
		}
	case greetingMsg:
		m.greeting = form.DisplayState(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	stats := m.form.Stats()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("greetbox | backend: %s | ordering: %s\n", m.backend, m.form.Ordering()))
	b.WriteString(strings.Repeat("-", 60))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("  [Enter] Click Me!\n\n")
	b.WriteString(m.greeting.GreetingText)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("submitted %d | resolved %d | failed %d | discarded %d\n",
		stats.Submitted, stats.Resolved, stats.Failed, stats.Discarded))
	b.WriteString("Esc or Ctrl+C to exit\n")
	return b.String()
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires a terminal; use 'greetbox greet' instead")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		forms *form.Factory
		cfg   *config.Config
	)
	app := fx.New(
		coreModules(),
		quietLogging(),
		fx.Populate(&forms, &cfg),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("starting TUI: %w", err)
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	f := forms.New(ctx)
	defer f.Close()

	backend := "local"
	if cfg.Greeting.Endpoint != "" {
		backend = cfg.Greeting.Endpoint
	}
	p := tea.NewProgram(newTUIModel(f, backend), tea.WithContext(ctx))
	cancel := f.Subscribe(func(ds form.DisplayState) {
		p.Send(greetingMsg(ds))
	})
	defer cancel()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI terminated: %w", err)
	}
	return nil
}
