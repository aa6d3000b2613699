package loadout

// Dispatcher accepts actions for the reducer. Implementations decide when they are applied.
type Dispatcher interface {
	Dispatch(Action)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(Action)

func (f DispatchFunc) Dispatch(a Action) { f(a) }

// Recorder keeps every dispatched action in order.
type Recorder struct {
	Actions []Action
}

func (r *Recorder) Dispatch(a Action) { r.Actions = append(r.Actions, a) }

// Drain returns the recorded actions and clears the recorder.
func (r *Recorder) Drain() []Action {
	out := r.Actions
	r.Actions = nil
	return out
}
