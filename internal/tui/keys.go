package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

// KeyRegistry maps keys to actions per scope. Lookups fall back to the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal        = "global"
	scopePanel         = "panel"
	scopeItemPicker    = "item_picker"
	scopeModPicker     = "mod_picker"
	scopeExoticPicker  = "exotic_picker"
	scopeUpgradePicker = "upgrade_picker"
)

const (
	actionQuit          Action = "quit"
	actionNextPane      Action = "next_pane"
	actionPrevPane      Action = "prev_pane"
	actionNavigate      Action = "navigate"
	actionSelect        Action = "select"
	actionClose         Action = "close"
	actionToggleSelect  Action = "toggle_select"
	actionLockEquipped  Action = "lock_equipped"
	actionLockItem      Action = "lock_item"
	actionExcludeItem   Action = "exclude_item"
	actionPinHighlight  Action = "pin_highlighted"
	actionExclHighlight Action = "exclude_highlighted"
	actionRemove        Action = "remove"
	actionModPicker     Action = "mod_picker"
	actionExoticPicker  Action = "exotic_picker"
	actionRemoveExotic  Action = "remove_exotic"
	actionUpgradePicker Action = "upgrade_picker"
	actionMaxStatMods   Action = "max_stat_mods"
	actionNextCharacter Action = "next_character"
	actionToggleEnergy  Action = "toggle_energy"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}
	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(scope, Binding{Action: action, Keys: keys, Help: help})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePanel, actionNextPane, []string{"tab"}, "next pane")
	reg(scopePanel, actionPrevPane, []string{"shift+tab"}, "prev pane")
	reg(scopePanel, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopePanel, actionLockEquipped, []string{"e"}, "lock equipped")
	reg(scopePanel, actionLockItem, []string{"l"}, "lock item")
	reg(scopePanel, actionExcludeItem, []string{"x"}, "exclude item")
	reg(scopePanel, actionPinHighlight, []string{"p"}, "pin")
	reg(scopePanel, actionExclHighlight, []string{"d"}, "exclude")
	reg(scopePanel, actionRemove, []string{"backspace", "delete"}, "remove")
	reg(scopePanel, actionModPicker, []string{"m"}, "mods")
	reg(scopePanel, actionExoticPicker, []string{"o"}, "exotic")
	reg(scopePanel, actionRemoveExotic, []string{"r"}, "clear exotic")
	reg(scopePanel, actionUpgradePicker, []string{"u"}, "upgrades")
	reg(scopePanel, actionMaxStatMods, []string{"0-5", "0", "1", "2", "3", "4", "5"}, "max stat mods")
	reg(scopePanel, actionNextCharacter, []string{"c"}, "character")

	for _, scope := range []string{scopeItemPicker, scopeExoticPicker} {
		reg(scope, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
		reg(scope, actionSelect, []string{"enter"}, "select")
		reg(scope, actionClose, []string{"esc"}, "cancel")
	}
	reg(scopeModPicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeModPicker, actionToggleSelect, []string{"space"}, "toggle")
	reg(scopeModPicker, actionSelect, []string{"enter"}, "apply")
	reg(scopeModPicker, actionClose, []string{"esc"}, "close")
	reg(scopeUpgradePicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeUpgradePicker, actionToggleEnergy, []string{"space"}, "lock energy")
	reg(scopeUpgradePicker, actionSelect, []string{"enter"}, "select")
	reg(scopeUpgradePicker, actionClose, []string{"esc"}, "close")
	return r
}

// Register adds b to scope. Keys already bound in the scope are skipped.
func (r *KeyRegistry) Register(scope string, b Binding) {
	if r.indexByScope[scope] == nil {
		r.indexByScope[scope] = make(map[string]*Binding)
	}
	keys := normalizeKeyList(b.Keys)
	kept := keys[:0]
	for _, k := range keys {
		if _, exists := r.indexByScope[scope][k]; !exists {
			kept = append(kept, k)
		}
	}
	if len(kept) == 0 {
		return
	}
	copyBinding := b
	copyBinding.Keys = kept
	r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
	for _, k := range kept {
		r.indexByScope[scope][k] = &copyBinding
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings returns footer hints for scope followed by the global ones.
// The first key of a binding is its help label.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	if scope != scopeGlobal {
		items = append(items, r.BindingsForScope(scopeGlobal)...)
	}
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Uppercase and lowercase bindings stay distinct.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
