package cli

import (
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	undocumentedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FBBF24")).
				Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string

	// index into ScanResult.Signatures; unused for failure items.
	index int
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type panelMode int

const (
	panelSignatures panelMode = iota
	panelFailures
)

type model struct {
	signatureList list.Model
	failureList   list.Model
	mode          panelMode

	result     ports.ScanResult
	lastUpdate time.Time
	scanErr    string

	showDetails bool
	rescan      func()
}

type updateMsg struct {
	result ports.ScanResult
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.activeList().FilterState() != list.Filtering {
			return handleKeyActions(msg, m)
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 10
		if height < 5 {
			height = 5
		}
		m.signatureList.SetSize(width, height)
		m.failureList.SetSize(width, height)
	case updateMsg:
		m.lastUpdate = time.Now()
		if msg.err != nil {
			m.scanErr = msg.err.Error()
			return m, nil
		}
		m.scanErr = ""
		m.result = msg.result
		m.signatureList.SetItems(signatureItems(msg.result.Signatures))
		m.failureList.SetItems(failureItems(msg.result.Failures))
	}

	var cmd tea.Cmd
	if m.mode == panelSignatures {
		m.signatureList, cmd = m.signatureList.Update(msg)
	} else {
		m.failureList, cmd = m.failureList.Update(msg)
	}
	return m, cmd
}

func (m model) activeList() list.Model {
	if m.mode == panelFailures {
		return m.failureList
	}
	return m.signatureList
}

func signatureItems(sigs []ports.Signature) []list.Item {
	items := make([]list.Item, 0, len(sigs))
	for i, sig := range sigs {
		returns := types.Compound(sig.ReturnTypes)
		if returns == "" {
			returns = "(undocumented)"
		}
		items = append(items, item{
			title: sig.Qualified,
			desc:  fmt.Sprintf("%s  %s:%d", returns, sig.File, sig.Line),
			index: i,
		})
	}
	return items
}

func failureItems(failures []ports.FileFailure) []list.Item {
	items := make([]list.Item, 0, len(failures))
	for _, f := range failures {
		items = append(items, item{title: f.Path, desc: f.Error, index: -1})
	}
	return items
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d functions",
		m.lastUpdate.Format("15:04:05"), m.result.FilesScanned, len(m.result.Signatures)))

	undocumented := 0
	for _, sig := range m.result.Signatures {
		if len(sig.ReturnTypes) == 0 {
			undocumented++
		}
	}

	var summary string
	switch {
	case m.scanErr != "":
		summary = failureStyle.Render("Scan failed: " + m.scanErr)
	case len(m.result.Failures) == 0 && undocumented == 0:
		summary = successStyle.Render("All returns documented")
	default:
		summary = fmt.Sprintf("%s | %s",
			failureStyle.Render(fmt.Sprintf("%d failures", len(m.result.Failures))),
			undocumentedStyle.Render(fmt.Sprintf("%d undocumented", undocumented)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Doc Return Types"), status, summary)

	body := m.activeList().View()
	if m.showDetails && m.mode == panelSignatures {
		body += "\n\n" + renderSignatureDetails(m)
	}

	return docStyle.Render(header + "\n" + renderHelp(m) + "\n\n" + body)
}

func renderHelp(m model) string {
	keys := "Keys: tab panel | / filter | enter details | r rescan | q quit"
	if m.mode == panelFailures {
		keys = "Keys: tab panel | / filter | r rescan | q quit"
	}
	return statusStyle.Render(keys)
}

func renderSignatureDetails(m model) string {
	sig, ok := m.selectedSignature()
	if !ok {
		return statusStyle.Render("No function selected.")
	}
	lines := []string{
		fmt.Sprintf("Function: %s", sig.Qualified),
		fmt.Sprintf("  Location: %s:%d", sig.File, sig.Line),
		fmt.Sprintf("  Namespace: %s", nonEmptyLabel(sig.Namespace, "(global)")),
		fmt.Sprintf("  @return: %s", nonEmptyLabel(sig.DocTag, "(none)")),
	}
	for _, t := range sig.ReturnTypes {
		lines = append(lines, fmt.Sprintf("    %-6s %s", types.Variant(t), t))
	}
	return strings.Join(lines, "\n")
}

func (m model) selectedSignature() (ports.Signature, bool) {
	selected, ok := m.signatureList.SelectedItem().(item)
	if !ok {
		return ports.Signature{}, false
	}
	if selected.index < 0 || selected.index >= len(m.result.Signatures) {
		return ports.Signature{}, false
	}
	return m.result.Signatures[selected.index], true
}

func nonEmptyLabel(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func initialModel(result ports.ScanResult, rescan func()) model {
	signatureList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	signatureList.Title = "Functions"
	signatureList.SetShowStatusBar(false)
	signatureList.SetFilteringEnabled(true)

	failureList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	failureList.Title = "Failures"
	failureList.SetShowStatusBar(false)
	failureList.SetFilteringEnabled(true)

	m := model{
		signatureList: signatureList,
		failureList:   failureList,
		mode:          panelSignatures,
		lastUpdate:    time.Now(),
		rescan:        rescan,
	}
	m.result = result
	m.signatureList.SetItems(signatureItems(result.Signatures))
	m.failureList.SetItems(failureItems(result.Failures))
	return m
}
