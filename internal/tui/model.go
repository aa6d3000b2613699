// Package tui is the terminal front end of the lock panel.
package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
	"github.com/jask/loadout/internal/panel"
)

const appName = "loadout"

// Session is the state the model renders and the sink for its actions.
type Session interface {
	Inventory() *inventory.Inventory
	State() loadout.State
	Store() *inventory.Store
	Apply(actions ...loadout.Action) error
	SaveState(ctx context.Context, st loadout.State) error
}

type pane int

const (
	paneInventory pane = iota
	panePinned
	paneExcluded
	paneMods
	paneCount
)

var paneTitles = [paneCount]string{"Inventory", "Pinned", "Excluded", "Locked mods"}

type savedMsg struct{ err error }

// Model is the Bubble Tea model. Gestures dispatch into queue; Update drains it into
// the session after every key and persists the result.
type Model struct {
	session Session
	queue   *loadout.Recorder
	panel   *panel.Panel
	keys    *KeyRegistry

	width     int
	height    int
	ready     bool
	status    string
	statusErr bool

	focus   pane
	cursors [paneCount]int

	itemPicker *pickerState
	itemReq    panel.PickRequest
	itemCands  []*inventory.Item

	modPicker *pickerState

	exoticPicker *pickerState
	exoticOpts   []loadout.ExoticHash

	upgradePicker *pickerState
}

func New(s Session) Model {
	q := &loadout.Recorder{}
	m := Model{
		session: s,
		queue:   q,
		panel:   panel.New(q),
		keys:    NewKeyRegistry(),
		status:  "Ready",
	}
	m.sync()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("save: %w", msg.err))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if e, ok := m.activeOverlay(); ok {
			next, cmd := e.handler(m, msg)
			return next.flush(cmd)
		}
		next, cmd := m.updatePanel(msg)
		return next.flush(cmd)
	}
	return m, nil
}

// flush applies queued actions and schedules a save.
func (m Model) flush(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	actions := m.queue.Drain()
	if len(actions) == 0 {
		return m, cmd
	}
	if err := m.session.Apply(actions...); err != nil {
		m.setError(err)
		return m, cmd
	}
	for _, a := range actions {
		log.Printf("applied %s", a.Type())
	}
	m.sync()
	return m, tea.Batch(cmd, m.saveCmd())
}

// saveCmd persists the state as of now. The command runs off the event loop, so it
// must not read the session after this returns.
func (m Model) saveCmd() tea.Cmd {
	s, st := m.session, m.session.State()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return savedMsg{err: s.SaveState(ctx, st)}
	}
}

// sync refreshes the panel snapshot and follows the reducer's mod picker flag.
func (m *Model) sync() {
	state := m.session.State()
	m.panel.SetProps(panel.PropsFrom(state, m.session.Store()))
	switch {
	case state.ModPickerOpen && m.modPicker == nil:
		m.modPicker = m.newModPicker()
	case !state.ModPickerOpen:
		m.modPicker = nil
	}
	for p := pane(0); p < paneCount; p++ {
		m.cursors[p] = clampCursor(m.cursors[p], m.paneLen(p))
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	log.Printf("error: %v", err)
	m.status = err.Error()
	m.statusErr = true
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (m Model) inventoryItems() []*inventory.Item {
	return panel.Candidates(m.panel.ExcludeItemRequest(), m.session.Inventory().AllItems())
}

func (m Model) paneLen(p pane) int {
	switch p {
	case paneInventory:
		return len(m.inventoryItems())
	case panePinned:
		return len(m.panel.PinnedItems())
	case paneExcluded:
		return len(m.panel.ExcludedItems())
	case paneMods:
		return len(m.panel.Props().LockedMods)
	}
	return 0
}

func (m Model) highlighted(items []*inventory.Item, p pane) *inventory.Item {
	if len(items) == 0 || m.focus != p {
		return nil
	}
	return items[clampCursor(m.cursors[p], len(items))]
}

func (m Model) updatePanel(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyName := msg.String()
	b := m.keys.Lookup(keyName, scopePanel)
	if b == nil {
		return m, nil
	}
	switch b.Action {
	case actionQuit:
		return m, tea.Quit
	case actionNextPane:
		m.focus = (m.focus + 1) % paneCount
	case actionPrevPane:
		m.focus = (m.focus + paneCount - 1) % paneCount
	case actionNavigate:
		switch keyName {
		case "j", "down":
			m.cursors[m.focus] = clampCursor(m.cursors[m.focus]+1, m.paneLen(m.focus))
		case "k", "up":
			m.cursors[m.focus] = clampCursor(m.cursors[m.focus]-1, m.paneLen(m.focus))
		}
	case actionLockEquipped:
		m.panel.LockEquipped()
		m.setStatus("Locked equipped items")
	case actionLockItem:
		m.openItemPicker(m.panel.LockItemRequest())
	case actionExcludeItem:
		m.openItemPicker(m.panel.ExcludeItemRequest())
	case actionPinHighlight:
		if it := m.highlighted(m.inventoryItems(), paneInventory); it != nil {
			m.panel.DropPinned(it)
			m.setStatus("Pinned " + it.Name)
		}
	case actionExclHighlight:
		if it := m.highlighted(m.inventoryItems(), paneInventory); it != nil {
			m.panel.DropExcluded(it)
			m.setStatus("Excluded " + it.Name)
		}
	case actionRemove:
		m.removeHighlighted()
	case actionModPicker:
		m.panel.OpenModPicker()
	case actionExoticPicker:
		m.exoticPicker, m.exoticOpts = m.newExoticPicker()
		m.panel.OpenExoticPicker()
	case actionRemoveExotic:
		m.panel.RemoveLockedExotic()
	case actionUpgradePicker:
		m.upgradePicker = m.newUpgradePicker()
		m.panel.OpenUpgradePicker()
	case actionMaxStatMods:
		if err := m.panel.MaxStatModsChanged(keyName); err != nil {
			m.setError(err)
		}
	case actionNextCharacter:
		m.nextCharacter()
	}
	return m, nil
}

func (m *Model) removeHighlighted() {
	switch m.focus {
	case panePinned:
		if it := m.highlighted(m.panel.PinnedItems(), panePinned); it != nil {
			m.panel.UnpinItem(it)
		}
	case paneExcluded:
		if it := m.highlighted(m.panel.ExcludedItems(), paneExcluded); it != nil {
			m.panel.UnexcludeItem(it)
		}
	case paneMods:
		mods := m.panel.Props().LockedMods
		if len(mods) > 0 {
			m.panel.RemoveLockedMod(mods[clampCursor(m.cursors[paneMods], len(mods))])
		}
	}
}

func (m *Model) nextCharacter() {
	chars := m.session.Inventory().Characters()
	if len(chars) < 2 {
		return
	}
	current := m.session.State().StoreID
	next := chars[0]
	for i, s := range chars {
		if s.ID == current {
			next = chars[(i+1)%len(chars)]
			break
		}
	}
	m.queue.Dispatch(loadout.ChangeCharacter{StoreID: next.ID})
	m.setStatus("Switched to " + next.Name)
}

func (m *Model) openItemPicker(req panel.PickRequest) {
	cands := panel.Candidates(req, m.session.Inventory().AllItems())
	if len(cands) == 0 {
		m.setStatus("No items to pick from")
		return
	}
	inv := m.session.Inventory()
	items := make([]pickerItem, 0, len(cands))
	for i, it := range cands {
		pi := pickerItem{ID: i, Label: it.Label(), Section: it.Bucket.String(), Meta: itemMeta(inv, it)}
		if it.IsExotic() {
			pi.Color = colorExotic
		}
		items = append(items, pi)
	}
	m.itemReq = req
	m.itemCands = cands
	m.itemPicker = newPicker(req.Title, items, false)
}

func itemMeta(inv *inventory.Inventory, it *inventory.Item) string {
	owner := it.OwnerID
	if s := inv.Store(it.OwnerID); s != nil {
		owner = s.Name
	}
	if it.Equipped {
		return owner + ", equipped"
	}
	return owner
}

func (m Model) updateItemPicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	res := m.itemPicker.HandleKey(msg.String())
	switch res.Action {
	case pickerActionSelected:
		panel.Resolve(m.itemReq, panel.Selected(m.itemCands[res.ItemID]))
		m.closeItemPicker()
	case pickerActionCancelled:
		panel.Resolve(m.itemReq, panel.Cancelled())
		m.closeItemPicker()
	}
	return m, nil
}

func (m *Model) closeItemPicker() {
	m.itemPicker = nil
	m.itemCands = nil
	m.itemReq = panel.PickRequest{}
}

func (m Model) newModPicker() *pickerState {
	inv := m.session.Inventory()
	items := make([]pickerItem, 0, len(inv.Mods))
	for i, mod := range inv.Mods {
		items = append(items, pickerItem{
			ID:      i,
			Label:   mod.Name,
			Section: mod.Category,
			Meta:    fmt.Sprintf("%d energy", mod.Energy),
		})
	}
	p := newPicker("Choose mods", items, true)
	locked := make(map[uint32]bool)
	for _, mod := range m.panel.Props().LockedMods {
		locked[mod.Hash] = true
	}
	for i, mod := range inv.Mods {
		if locked[mod.Hash] {
			p.Select(i)
		}
	}
	return p
}

func (m Model) updateModPicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	res := m.modPicker.HandleKey(msg.String())
	switch res.Action {
	case pickerActionSubmitted:
		m.queue.Dispatch(loadout.LockedModsChanged{Mods: m.pickedMods(res.SelectedIDs)})
	case pickerActionCancelled:
		m.queue.Dispatch(loadout.CloseModPicker{})
	}
	return m, nil
}

// pickedMods keeps already locked mods that stay selected, repeats included, then
// appends newly selected ones in catalog order.
func (m Model) pickedMods(ids []int) []inventory.ModDef {
	catalog := m.session.Inventory().Mods
	selected := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		selected[catalog[id].Hash] = true
	}
	var out []inventory.ModDef
	had := make(map[uint32]bool)
	for _, mod := range m.panel.Props().LockedMods {
		had[mod.Hash] = true
		if selected[mod.Hash] {
			out = append(out, mod)
		}
	}
	for _, id := range ids {
		if mod := catalog[id]; !had[mod.Hash] {
			out = append(out, mod)
		}
	}
	return out
}

func (m Model) newExoticPicker() (*pickerState, []loadout.ExoticHash) {
	opts := []loadout.ExoticHash{loadout.NoExotic, loadout.AnyExotic}
	items := []pickerItem{
		{ID: 0, Label: panel.ExoticLabel(nil, loadout.NoExotic), Meta: "build without an exotic"},
		{ID: 1, Label: panel.ExoticLabel(nil, loadout.AnyExotic), Meta: "any one exotic"},
	}
	if store := m.session.Store(); store != nil {
		for _, it := range m.session.Inventory().Exotics(store.Class) {
			items = append(items, pickerItem{
				ID:      len(opts),
				Label:   it.Name,
				Color:   colorExotic,
				Section: it.Bucket.String(),
			})
			opts = append(opts, loadout.ExoticOf(it))
		}
	}
	return newPicker("Choose exotic", items, false), opts
}

func (m Model) updateExoticPicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	res := m.exoticPicker.HandleKey(msg.String())
	switch res.Action {
	case pickerActionSelected:
		m.panel.SelectExotic(m.exoticOpts[res.ItemID])
		m.exoticPicker, m.exoticOpts = nil, nil
	case pickerActionCancelled:
		m.panel.CloseExoticPicker()
		m.exoticPicker, m.exoticOpts = nil, nil
	}
	return m, nil
}

func (m Model) newUpgradePicker() *pickerState {
	items := make([]pickerItem, 0, len(loadout.UpgradeSpendTiers))
	current := m.panel.Props().UpgradeSpendTier
	cursor := 0
	for i, t := range loadout.UpgradeSpendTiers {
		items = append(items, pickerItem{ID: i, Label: t.String()})
		if t == current {
			cursor = i
		}
	}
	p := newPicker("Upgrade materials", items, false)
	p.cursor = cursor
	return p
}

func (m Model) updateUpgradePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	if b := m.keys.Lookup(msg.String(), scopeUpgradePicker); b != nil && b.Action == actionToggleEnergy {
		m.panel.SetLockItemEnergyType(!m.panel.Props().LockItemEnergyType)
		return m, nil
	}
	res := m.upgradePicker.HandleKey(msg.String())
	switch res.Action {
	case pickerActionSelected:
		m.panel.SelectUpgradeSpendTier(loadout.UpgradeSpendTiers[res.ItemID])
		m.upgradePicker = nil
	case pickerActionCancelled:
		m.panel.CloseUpgradePicker()
		m.upgradePicker = nil
	}
	return m, nil
}
