package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
)

type pickerItem struct {
	ID      int
	Label   string
	Color   lipgloss.Color
	Section string
	Meta    string
}

type pickerState struct {
	items       []pickerItem
	filtered    []pickerItem
	query       string
	cursor      int
	selected    map[int]bool
	multiSelect bool
	title       string
}

type pickerAction int

const (
	pickerActionNone pickerAction = iota
	pickerActionMoved
	pickerActionToggled
	pickerActionSelected
	pickerActionSubmitted
	pickerActionCancelled
)

type pickerResult struct {
	Action      pickerAction
	ItemID      int
	SelectedIDs []int
}

type scoredPickerItem struct {
	item  pickerItem
	score int
}

func newPicker(title string, items []pickerItem, multiSelect bool) *pickerState {
	p := &pickerState{
		selected:    make(map[int]bool),
		multiSelect: multiSelect,
		title:       title,
	}
	p.SetItems(items)
	return p
}

func (p *pickerState) SetItems(items []pickerItem) {
	p.items = append([]pickerItem(nil), items...)
	p.rebuildFiltered()
}

func (p *pickerState) SetQuery(q string) {
	p.query = q
	p.rebuildFiltered()
}

func (p *pickerState) Select(ids ...int) {
	for _, id := range ids {
		p.selected[id] = true
	}
}

func (p *pickerState) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *pickerState) CursorDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

func (p *pickerState) Current() (pickerItem, bool) {
	if len(p.filtered) == 0 {
		return pickerItem{}, false
	}
	idx := min(max(p.cursor, 0), len(p.filtered)-1)
	return p.filtered[idx], true
}

func (p *pickerState) Toggle() {
	it, ok := p.Current()
	if !ok || !p.multiSelect {
		return
	}
	if p.selected[it.ID] {
		delete(p.selected, it.ID)
	} else {
		p.selected[it.ID] = true
	}
}

func (p *pickerState) Selected() []int {
	out := make([]int, 0, len(p.selected))
	for id, on := range p.selected {
		if on {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

func (p *pickerState) HandleKey(keyName string) pickerResult {
	if p == nil {
		return pickerResult{Action: pickerActionNone}
	}
	switch keyName {
	case "k", "up":
		before := p.cursor
		p.CursorUp()
		if p.cursor != before {
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "j", "down":
		before := p.cursor
		p.CursorDown()
		if p.cursor != before {
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "space", " ":
		it, ok := p.Current()
		if !p.multiSelect || !ok {
			return pickerResult{Action: pickerActionNone}
		}
		p.Toggle()
		return pickerResult{Action: pickerActionToggled, ItemID: it.ID, SelectedIDs: p.Selected()}
	case "enter":
		if p.multiSelect {
			return pickerResult{Action: pickerActionSubmitted, SelectedIDs: p.Selected()}
		}
		if it, ok := p.Current(); ok {
			return pickerResult{Action: pickerActionSelected, ItemID: it.ID}
		}
		return pickerResult{Action: pickerActionNone}
	case "esc":
		return pickerResult{Action: pickerActionCancelled}
	case "backspace":
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
		return pickerResult{Action: pickerActionNone}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return pickerResult{Action: pickerActionNone}
	}
}

func renderPicker(p *pickerState, width int, keys *KeyRegistry, scope string) string {
	var lines []string
	query := strings.TrimSpace(p.query)
	searchValue := dimStyle.Render("(type to filter)")
	if query != "" {
		searchValue = searchStyle.Render(query)
	}
	lines = append(lines, padRight(labelStyle.Render("Filter: ")+searchValue, width))

	bySection := make(map[string][]pickerItem)
	for _, it := range p.filtered {
		bySection[it.Section] = append(bySection[it.Section], it)
	}
	idx := 0
	for _, section := range p.sectionOrder() {
		items := bySection[section]
		if len(items) == 0 {
			continue
		}
		if section != "" {
			lines = append(lines, padRight(sectionStyle.Render(section+":"), width))
		}
		for _, it := range items {
			isCursor := p.cursor == idx
			idx++

			mark := "   "
			if p.multiSelect {
				mark = "[ ]"
				if p.selected[it.ID] {
					mark = "[x]"
				}
			}
			style := lipgloss.NewStyle().Foreground(colorSubtext1)
			if it.Color != "" {
				style = lipgloss.NewStyle().Foreground(it.Color)
			}
			row := "  " + mark + " " + style.Render(it.Label)
			if meta := strings.TrimSpace(it.Meta); meta != "" {
				row += dimStyle.Render(" - " + meta)
			}
			if width > 0 {
				row = padRight(truncate(row, width), width)
			}
			if isCursor {
				row = cursorRowStyle.Render(row)
			}
			lines = append(lines, row)
		}
	}
	if len(p.filtered) == 0 {
		lines = append(lines, dimStyle.Render("  no matches"))
	}

	return renderModalContent(p.title, lines, renderScopeHints(keys, scope))
}

func renderModalContent(title string, lines []string, footer string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(footer)
	}
	return b.String()
}

func renderScopeHints(keys *KeyRegistry, scope string) string {
	var parts []string
	for _, b := range keys.BindingsForScope(scope) {
		parts = append(parts, helpKeyStyle.Render(b.Keys[0])+" "+helpDescStyle.Render(b.Help))
	}
	return strings.Join(parts, "  ")
}

func (p *pickerState) rebuildFiltered() {
	q := strings.TrimSpace(p.query)
	bySection := make(map[string][]scoredPickerItem)
	for _, it := range p.items {
		matched, score := fuzzyMatchScore(it.Label, q)
		if !matched {
			continue
		}
		bySection[it.Section] = append(bySection[it.Section], scoredPickerItem{item: it, score: score})
	}

	out := make([]pickerItem, 0, len(p.items))
	for _, section := range p.sectionOrder() {
		scored := bySection[section]
		// Without a query the caller's order is kept.
		if q != "" {
			sort.SliceStable(scored, func(i, j int) bool {
				return scored[i].score > scored[j].score
			})
		}
		for _, s := range scored {
			out = append(out, s.item)
		}
	}
	p.filtered = out

	if p.cursor > len(p.filtered)-1 {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *pickerState) sectionOrder() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(p.items))
	for _, it := range p.items {
		if seen[it.Section] {
			continue
		}
		seen[it.Section] = true
		out = append(out, it.Section)
	}
	return out
}

// fuzzyMatchScore matches query as a subsequence of label. When that fails, a word of
// label within a small edit distance of the query still matches with a low score.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return typoMatch(labelLower, queryLower)
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func typoMatch(labelLower, queryLower string) (bool, int) {
	if len(queryLower) < 4 {
		return false, 0
	}
	limit := len(queryLower) / 4
	for _, word := range strings.Fields(labelLower) {
		if levenshtein.ComputeDistance(word, queryLower) <= limit {
			return true, 1
		}
	}
	return false, 0
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
