package tui

import tea "github.com/charmbracelet/bubbletea"

// overlayEntry is one level of the overlay precedence chain. The first entry whose
// guard holds receives keys, picks the footer scope and is drawn on top.
type overlayEntry struct {
	name    string
	guard   func(m Model) bool
	scope   string
	handler func(m Model, msg tea.KeyMsg) (Model, tea.Cmd)
	render  func(m Model) string
}

// overlayPrecedence returns the overlay priority table, highest first. The exotic
// picker sits above the upgrade picker when both dialogs are open.
func overlayPrecedence() []overlayEntry {
	return []overlayEntry{
		{
			name:    "itemPicker",
			guard:   func(m Model) bool { return m.itemPicker != nil },
			scope:   scopeItemPicker,
			handler: func(m Model, msg tea.KeyMsg) (Model, tea.Cmd) { return m.updateItemPicker(msg) },
			render:  func(m Model) string { return renderPicker(m.itemPicker, m.modalWidth(), m.keys, scopeItemPicker) },
		},
		{
			name:    "modPicker",
			guard:   func(m Model) bool { return m.modPicker != nil },
			scope:   scopeModPicker,
			handler: func(m Model, msg tea.KeyMsg) (Model, tea.Cmd) { return m.updateModPicker(msg) },
			render:  func(m Model) string { return renderPicker(m.modPicker, m.modalWidth(), m.keys, scopeModPicker) },
		},
		{
			name:    "exoticPicker",
			guard:   func(m Model) bool { return m.panel.ExoticPickerOpen() && m.exoticPicker != nil },
			scope:   scopeExoticPicker,
			handler: func(m Model, msg tea.KeyMsg) (Model, tea.Cmd) { return m.updateExoticPicker(msg) },
			render:  func(m Model) string { return renderPicker(m.exoticPicker, m.modalWidth(), m.keys, scopeExoticPicker) },
		},
		{
			name:    "upgradePicker",
			guard:   func(m Model) bool { return m.panel.UpgradePickerOpen() && m.upgradePicker != nil },
			scope:   scopeUpgradePicker,
			handler: func(m Model, msg tea.KeyMsg) (Model, tea.Cmd) { return m.updateUpgradePicker(msg) },
			render:  func(m Model) string { return m.renderUpgradePicker() },
		},
	}
}

func (m Model) activeOverlay() (overlayEntry, bool) {
	for _, e := range overlayPrecedence() {
		if e.guard(m) {
			return e, true
		}
	}
	return overlayEntry{}, false
}

func (m Model) activeScope() string {
	if e, ok := m.activeOverlay(); ok {
		return e.scope
	}
	return scopePanel
}
