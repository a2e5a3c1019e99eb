package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	bt "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"adminui/internal/ai"
	"adminui/internal/config"
	"adminui/internal/table"
)

func initialModel(ctx context.Context, cfg *config.Config) *Model {
	m := &Model{
		ctx:      ctx,
		cfg:      cfg,
		state:    table.New(cfg.PageSize),
		loading:  true,
		styles:   NewStyles(cfg.Theme == config.ThemeDark),
		keymap:   DefaultKeyMap(),
		search:   textinput.New(),
		input:    textinput.New(),
		spin:     spinner.New(),
		debounce: debouncer{delay: time.Duration(cfg.DebounceMS) * time.Millisecond},
	}
	m.spin.Spinner = spinner.Dot
	m.search.Placeholder = "Press Enter to Search..."
	m.search.CharLimit = 256
	m.search.Prompt = "/"
	m.input.CharLimit = 256
	for i := range m.editInputs {
		ti := textinput.New()
		ti.CharLimit = 128
		m.editInputs[i] = ti
	}
	m.editInputs[editName].Prompt = "name: "
	m.editInputs[editRole].Prompt = "role: "
	m.modalVP = viewport.New(80, 20)

	m.tbl = bt.New(bt.WithFocused(true))
	ts := bt.DefaultStyles()
	ts.Header = m.styles.TableStyles.Header
	ts.Cell = m.styles.TableStyles.Cell
	ts.Selected = m.styles.TableStyles.Selected
	m.tbl.SetStyles(ts)
	m.refreshRows()
	// one header line plus a full page
	m.tbl.SetHeight(m.state.PageSize() + 1)

	if !cfg.Offline && cfg.OpenAIKey() != "" {
		m.ai = ai.NewOpenAIClient(cfg.OpenAIKey(), cfg.OpenAIBase, cfg.OpenAIModel, time.Duration(cfg.OpenAITimeoutSec)*time.Second).
			WithCache(ai.NewCache())
	}
	return m
}

func Run(ctx context.Context, cfg *config.Config) error {
	m := initialModel(ctx, cfg)
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	// stdin carries the member document; keys come from the terminal
	if cfg.Source() == "stdin" {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("open terminal for input: %w", err)
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadMembers(m), m.spin.Tick)
}
