// Package panel is the lock panel of the loadout builder: it derives the pinned and
// excluded display lists from a state snapshot, runs the item picker flows and turns
// every gesture into exactly one dispatched loadout action.
//
// The panel never changes state itself. It owns two dialog visibility flags; everything
// else arrives through Props and leaves through the Dispatcher.
package panel
