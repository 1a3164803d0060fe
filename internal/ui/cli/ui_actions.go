package cli

import (
	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.mode == panelSignatures {
			m.mode = panelFailures
		} else {
			m.mode = panelSignatures
		}
		m.showDetails = false
		return m, nil
	case "r":
		if m.rescan != nil {
			go m.rescan()
		}
		return m, nil
	case "enter":
		if m.mode == panelSignatures {
			m.showDetails = !m.showDetails
			return m, nil
		}
	case "esc":
		if m.showDetails {
			m.showDetails = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.mode == panelSignatures {
		m.signatureList, cmd = m.signatureList.Update(msg)
	} else {
		m.failureList, cmd = m.failureList.Update(msg)
	}
	return m, cmd
}
