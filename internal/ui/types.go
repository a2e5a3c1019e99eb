package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	bt "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"adminui/internal/ai"
	"adminui/internal/config"
	"adminui/internal/ingest"
	"adminui/internal/table"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalStats
	modalInspector
	modalLogs
	modalSummary
)

type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineSearch
	inlineFilter
	inlineJump
	inlineEdit
)

// edit form fields
const (
	editName = iota
	editRole
)

type Model struct {
	ctx context.Context
	cfg *config.Config

	// Data
	state   table.State
	loading bool
	loadErr error
	source  string

	// UI
	tbl        bt.Model
	styles     Styles
	keymap     KeyMap
	search     textinput.Model
	input      textinput.Model
	editInputs [2]textinput.Model
	editFocus  int
	spin       spinner.Model
	termWidth  int
	termHeight int

	// Search commit
	debounce debouncer

	// status
	lastMsg string
	netBusy bool
	ai      *ai.OpenAIClient

	// Modal popup
	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string

	// Help menu state
	helpItems []helpItem
	helpSel   int

	inlineMode inlineMode
}

type helpItem struct {
	group string
	text  string
	key   tea.Key
}

type membersLoadedMsg struct {
	res ingest.Result
	err error
}

type exportDoneMsg struct {
	path string
	n    int
	err  error
}

type summaryDoneMsg struct {
	text string
	err  error
}

func keyCmd(k tea.Key) tea.Cmd {
	return func() tea.Msg {
		if k.Type == tea.KeyRunes {
			return tea.KeyMsg{Type: k.Type, Runes: k.Runes}
		}
		return tea.KeyMsg{Type: k.Type}
	}
}

func keyLabel(k tea.Key) string {
	switch k.Type {
	case tea.KeyRunes:
		return string(k.Runes)
	case tea.KeySpace:
		return "space"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	default:
		return strings.ToLower(k.String())
	}
}
