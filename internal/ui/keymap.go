package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Up           tea.Key
	Down         tea.Key
	PrevPage     tea.Key
	NextPage     tea.Key
	FirstPage    tea.Key
	LastPage     tea.Key
	JumpPage     tea.Key
	Search       tea.Key
	Toggle       tea.Key
	SelectPage   tea.Key
	DeleteRow    tea.Key
	DeleteMarked tea.Key
	Edit         tea.Key
	Inspect      tea.Key
	Filter       tea.Key
	ClearFilter  tea.Key
	CopyEmail    tea.Key
	Export       tea.Key
	Stats        tea.Key
	Summarize    tea.Key
	AppLogs      tea.Key
	Help         tea.Key
	Quit         tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           tea.Key{Type: tea.KeyUp},
		Down:         tea.Key{Type: tea.KeyDown},
		PrevPage:     tea.Key{Type: tea.KeyLeft},
		NextPage:     tea.Key{Type: tea.KeyRight},
		FirstPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		LastPage:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		JumpPage:     tea.Key{Type: tea.KeyRunes, Runes: []rune{':'}},
		Search:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		Toggle:       tea.Key{Type: tea.KeySpace},
		SelectPage:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'a'}},
		DeleteRow:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}},
		DeleteMarked: tea.Key{Type: tea.KeyRunes, Runes: []rune{'D'}},
		Edit:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		Inspect:      tea.Key{Type: tea.KeyEnter},
		Filter:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		ClearFilter:  tea.Key{Type: tea.KeyRunes, Runes: []rune{'F'}},
		CopyEmail:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}},
		Export:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'x'}},
		Stats:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'s'}},
		Summarize:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'i'}},
		AppLogs:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Help:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.Type == tea.KeyRunes && msg.String() == string(k.Runes)
	}
	return false
}
