package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jask/loadout/internal/database/repository"
	"github.com/jask/loadout/internal/inventory"
	"github.com/jask/loadout/internal/loadout"
	"github.com/jask/loadout/internal/panel"
)

// ErrNoCharacters is returned when the stored inventory has no character to build for.
var ErrNoCharacters = errors.New("inventory has no characters; run import or seed first")

// Session owns the loaded inventory and the current lock state. It is safe for use
// from the event loop and from background save commands at once.
type Session struct {
	Stores *repository.StoreRepo
	Items  *repository.ItemRepo
	Mods   *repository.ModRepo
	States *repository.StateRepo

	mu      sync.RWMutex
	inv     *inventory.Inventory
	state   loadout.State
	missing []string
}

func NewSession(db *sql.DB) *Session {
	return &Session{
		Stores: repository.NewStoreRepo(db),
		Items:  repository.NewItemRepo(db),
		Mods:   repository.NewModRepo(db),
		States: repository.NewStateRepo(db),
	}
}

// Load reads the inventory and the saved state. preferredStore (an id or a name) picks the
// character when there is no saved state or the saved character is gone.
func (s *Session) Load(ctx context.Context, preferredStore string) error {
	var (
		stores []*inventory.Store
		items  []*inventory.Item
		mods   []inventory.ModDef
		rec    repository.StateRecord
		saved  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = s.Stores.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.Items.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		mods, err = s.Mods.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rec, err = s.States.Load(gctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		saved = err == nil
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	inv := repository.Assemble(stores, items, mods)
	if len(inv.Characters()) == 0 {
		return ErrNoCharacters
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inv = inv
	if saved && isCharacter(inv.Store(rec.StoreID)) {
		s.state, s.missing = rec.Resolve(inv)
		return nil
	}
	s.state = loadout.NewState(pickStore(inv, preferredStore).ID)
	s.missing = nil
	return nil
}

func isCharacter(st *inventory.Store) bool { return st != nil && !st.Vault }

func pickStore(inv *inventory.Inventory, preferred string) *inventory.Store {
	chars := inv.Characters()
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		for _, st := range chars {
			if st.ID == preferred || strings.EqualFold(st.Name, preferred) {
				return st
			}
		}
		if class, err := inventory.ParseClassType(preferred); err == nil {
			for _, st := range chars {
				if st.Class == class {
					return st
				}
			}
		}
	}
	return chars[0]
}

func (s *Session) Inventory() *inventory.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv
}

// State returns the current lock state. Reduce never mutates a state it was given, so
// the value stays consistent after later Apply calls.
func (s *Session) State() loadout.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Missing lists saved references that no longer resolve against the inventory.
func (s *Session) Missing() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.missing
}

// Store is the selected character.
func (s *Session) Store() *inventory.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv.Store(s.state.StoreID)
}

func (s *Session) Props() panel.Props {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return panel.PropsFrom(s.state, s.inv.Store(s.state.StoreID))
}

// Apply reduces actions in order. A failing action leaves the state untouched.
func (s *Session) Apply(actions ...loadout.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := loadout.ApplyAll(s.state, actions)
	if err != nil {
		return err
	}
	if !isCharacter(s.inv.Store(next.StoreID)) {
		return fmt.Errorf("store %q: %w", next.StoreID, repository.ErrNotFound)
	}
	s.state = next
	return nil
}

// Save persists the current lock state.
func (s *Session) Save(ctx context.Context) error {
	return s.SaveState(ctx, s.State())
}

// SaveState persists st. Callers that save in the background pass a state taken
// before the save was scheduled.
func (s *Session) SaveState(ctx context.Context, st loadout.State) error {
	if err := s.States.Save(ctx, repository.RecordOf(st)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ExportPreset captures the current lock state under name.
func (s *Session) ExportPreset(name string) loadout.Preset {
	return loadout.NewPreset(name, s.State())
}

// ApplyPreset switches to the preset's character when it still exists and applies it.
// References the inventory no longer has are returned.
func (s *Session) ApplyPreset(p loadout.Preset) ([]string, error) {
	inv, state := s.Inventory(), s.State()
	var actions []loadout.Action
	if p.Store != "" && p.Store != state.StoreID && isCharacter(inv.Store(p.Store)) {
		actions = append(actions, loadout.ChangeCharacter{StoreID: p.Store})
	}
	current, err := loadout.ApplyAll(state, actions)
	if err != nil {
		return nil, err
	}
	rest, skipped := p.Actions(inv, current)
	if err := s.Apply(append(actions, rest...)...); err != nil {
		return nil, fmt.Errorf("apply preset %q: %w", p.Name, err)
	}
	return skipped, nil
}
