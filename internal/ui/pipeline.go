package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"adminui/internal/export"
	"adminui/internal/ingest"
	"adminui/internal/model"
	"adminui/internal/util/logx"
)

func fetchOptions(m *Model) ingest.Options {
	opt := ingest.Options{
		URL:     m.cfg.URL,
		Path:    m.cfg.FilePath,
		Timeout: time.Duration(m.cfg.FetchTimeoutSec) * time.Second,
	}
	switch m.cfg.Source() {
	case "demo":
		opt.Source = ingest.SourceDemo
	case "file":
		opt.Source = ingest.SourceFile
	case "stdin":
		opt.Source = ingest.SourceStdin
	default:
		opt.Source = ingest.SourceURL
	}
	return opt
}

// loadMembers fetches the member list exactly once.
func loadMembers(m *Model) tea.Cmd {
	opt := fetchOptions(m)
	m.source = string(opt.Source)
	ctx := m.ctx
	return func() tea.Msg {
		res, err := ingest.Fetch(ctx, opt)
		return membersLoadedMsg{res: res, err: err}
	}
}

func exportCmd(format, path string, members []model.Member) tea.Cmd {
	return func() tea.Msg {
		err := export.Write(format, path, members)
		if err == nil {
			logx.Infof("export: wrote %d members to %s (%s)", len(members), path, format)
		}
		return exportDoneMsg{path: path, n: len(members), err: err}
	}
}

func (m *Model) summarizeCmd() tea.Cmd {
	if m.cfg.Offline || m.ai == nil {
		m.lastMsg = "AI summary disabled (offline or OPENAI_API_KEY not set)"
		return nil
	}
	members := m.state.Filtered()
	if len(members) == 0 {
		m.lastMsg = "nothing to summarize"
		return nil
	}
	m.netBusy = true
	m.lastMsg = fmt.Sprintf("summarizing %d members...", len(members))
	client := m.ai
	ctx := m.ctx
	timeout := time.Duration(m.cfg.OpenAITimeoutSec+5) * time.Second
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx2, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		text, err := client.Summarize(ctx2, members)
		return summaryDoneMsg{text: text, err: err}
	})
}
