package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/panel"
)

func (m Model) View() string {
	if !m.ready {
		return statusStyle.Render("Loading…")
	}
	main := m.renderHeader() + "\n\n" + m.renderBody()
	statusLine := m.renderStatus()
	footer := m.renderFooter(m.keys.HelpBindings(m.activeScope()))
	if e, ok := m.activeOverlay(); ok {
		return m.composeOverlay(main, statusLine, footer, e.render(m))
	}
	return m.placeWithFooter(main, statusLine, footer)
}

func (m Model) renderHeader() string {
	name := headerAppStyle.Render(appName)
	current := m.session.State().StoreID
	var tabs []string
	for _, s := range m.session.Inventory().Characters() {
		label := s.Name + " (" + s.Class.String() + ")"
		if s.ID == current {
			tabs = append(tabs, activeStoreStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveStoreStyle.Render(label))
		}
	}
	content := name + "  " + strings.Join(tabs, " ")
	if m.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(m.width).Render(content)
}

func (m Model) renderBody() string {
	leftWidth := max(m.width*2/5, 30)
	rightWidth := max(m.width-leftWidth, 30)
	props := m.panel.Props()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSettings(props, leftWidth),
		m.renderPane(paneMods, modLines(props.LockedMods), leftWidth, 0),
		m.renderPane(panePinned, m.itemLines(m.panel.PinnedItems(), false), leftWidth, 0),
		m.renderPane(paneExcluded, m.itemLines(m.panel.ExcludedItems(), false), leftWidth, 0),
	)
	right := m.renderPane(paneInventory, m.itemLines(m.inventoryItems(), true), rightWidth, m.inventoryRows())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) inventoryRows() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-10, 3)
}

func (m Model) renderSettings(props panel.Props, width int) string {
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-15s", label)) + value
	}
	maxMods := ""
	for _, opt := range panel.MaxStatModsOptions() {
		if opt.Value == fmt.Sprint(props.MaxStatMods) {
			maxMods = opt.Label
		}
	}
	energy := dimStyle.Render("off")
	if props.LockItemEnergyType {
		energy = valueStyle.Render("on")
	}
	lines := []string{
		row("Max stat mods", valueStyle.Render(maxMods)),
		row("Upgrades", tierStyle.Render(props.UpgradeSpendTier.String())),
		row("Energy lock", energy),
		row("Exotic", exoticStyle.Render(panel.ExoticLabel(m.session.Inventory(), props.LockedExotic))),
	}
	content := titleStyle.Render("Settings") + "\n" + strings.Join(lines, "\n")
	return boxed(paneStyle, width, content)
}

// boxed renders content in style so the whole box is outer cells wide.
func boxed(style lipgloss.Style, outer int, content string) string {
	return style.Width(max(outer-style.GetHorizontalBorderSize(), 1)).Render(content)
}

func modLines(mods []inventory.ModDef) []string {
	keys := panel.ModRenderKeys(mods)
	lines := make([]string, 0, len(mods))
	for i, mod := range mods {
		// Repeats of a mod show their occurrence number.
		suffix := ""
		if n := strings.TrimPrefix(keys[i], fmt.Sprintf("%d-", mod.Hash)); n != "0" {
			suffix = dimStyle.Render(" #" + n)
		}
		lines = append(lines, modStyle.Render(mod.Name)+suffix)
	}
	return lines
}

func (m Model) itemLines(items []*inventory.Item, marks bool) []string {
	state := m.session.State()
	lines := make([]string, 0, len(items))
	for _, it := range items {
		mark := ""
		if marks {
			switch {
			case state.PinnedItems[it.Bucket] != nil && state.PinnedItems[it.Bucket].ID == it.ID:
				mark = pinnedMarkStyle.Render("P ")
			case state.IsExcluded(it):
				mark = excludeStyle.Render("X ")
			default:
				mark = "  "
			}
		}
		label := valueStyle.Render(it.Label())
		if it.IsExotic() {
			label = exoticStyle.Render(it.Label())
		}
		meta := dimStyle.Render(" " + it.Bucket.String())
		if it.Equipped {
			meta += warnStyle.Render(" *")
		}
		lines = append(lines, mark+label+meta)
	}
	return lines
}

// renderPane draws a titled list. rows limits the visible lines and scrolls with
// the cursor; zero shows everything.
func (m Model) renderPane(p pane, lines []string, width, rows int) string {
	focused := m.focus == p
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	inner := width - style.GetHorizontalFrameSize()
	title := titleStyle.Render(paneTitles[p]) + dimStyle.Render(fmt.Sprintf(" (%d)", len(lines)))

	cursor := clampCursor(m.cursors[p], len(lines))
	start, end := 0, len(lines)
	if rows > 0 && len(lines) > rows {
		start = min(max(cursor-rows/2, 0), len(lines)-rows)
		end = start + rows
	}
	out := []string{title}
	if len(lines) == 0 {
		out = append(out, dimStyle.Render("empty"))
	}
	for i := start; i < end; i++ {
		line := padRight(truncate(lines[i], inner), inner)
		if focused && i == cursor {
			line = cursorRowStyle.Render(line)
		}
		out = append(out, line)
	}
	return boxed(style, width, strings.Join(out, "\n"))
}

func (m Model) renderUpgradePicker() string {
	content := renderPicker(m.upgradePicker, m.modalWidth(), m.keys, scopeUpgradePicker)
	energy := "[ ]"
	if m.panel.Props().LockItemEnergyType {
		energy = "[x]"
	}
	return content + "\n\n" + labelStyle.Render(energy+" Lock item energy type")
}

func (m Model) modalWidth() int {
	if m.width == 0 {
		return 0
	}
	return min(60, m.width-10)
}

func (m Model) renderStatus() string {
	style := statusBarStyle
	if m.statusErr {
		style = statusErrStyle
	}
	flat := strings.ReplaceAll(m.status, "\n", " ")
	if m.width == 0 {
		return style.Render(flat)
	}
	return style.Width(m.width).Render(flat)
}

func (m Model) renderFooter(bindings []key.Binding) string {
	// Every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)
	if m.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(m.width).Render(truncate(content, m.width-footerStyle.GetHorizontalFrameSize()))
}

func (m Model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := max(m.height-2, 1)
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Full-width lines keep the previous frame from showing through.
	lines := splitRows(main)
	for i, line := range lines {
		lines[i] = padRight(line, m.width)
	}
	return strings.Join(lines, "\n") + "\n" + statusLine + "\n" + footer
}

func (m Model) composeOverlay(base, statusLine, footer, content string) string {
	baseView := m.placeWithFooter(base, statusLine, footer)
	if m.height == 0 || m.width == 0 {
		return baseView + "\n\n" + content
	}
	modal := modalStyle.Render(lipgloss.NewStyle().Width(m.modalWidth()).Render(content))
	return centerOver(baseView, modal, m.width, max(m.height-2, 1))
}
