package input

// Action is a logical input, decoupled from the physical key that triggers it
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown

	LookUp
	LookDown
	LookLeft
	LookRight

	Jump

	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:  "MOVE_FORWARD",
	MoveBackward: "MOVE_BACKWARD",
	MoveLeft:     "MOVE_LEFT",
	MoveRight:    "MOVE_RIGHT",
	MoveUp:       "MOVE_UP",
	MoveDown:     "MOVE_DOWN",
	LookUp:       "LOOK_UP",
	LookDown:     "LOOK_DOWN",
	LookLeft:     "LOOK_LEFT",
	LookRight:    "LOOK_RIGHT",
	Jump:         "JUMP",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "UNKNOWN"
	}
	return actionNames[a]
}

// Actions returns every action, in declaration order
func Actions() []Action {
	actions := make([]Action, actionCount)
	for i := range actions {
		actions[i] = Action(i)
	}
	return actions
}

// ParseAction returns the action named name, as printed by Action.String
func ParseAction(name string) (Action, bool) {
	for i, actionName := range actionNames {
		if actionName == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Source is queried once per tick by the controllers
type Source interface {
	// IsDown reports the level state of the action
	IsDown(action Action) bool
	// IsPressed is true only on the tick the action goes from up to down
	IsPressed(action Action) bool
}

// State is a double-buffered Source.
// Set records the pending level of an action; Swap latches the pending levels as the state
// of the new tick, keeping the previous one to detect edges.
type State struct {
	pending  [actionCount]bool
	current  [actionCount]bool
	previous [actionCount]bool
}

var _ Source = (*State)(nil)

// Set records whether the action is held, effective on the next Swap
func (s *State) Set(action Action, down bool) {
	if action < 0 || action >= actionCount {
		return
	}
	s.pending[action] = down
}

// Swap starts a new tick
func (s *State) Swap() {
	s.previous = s.current
	s.current = s.pending
}

func (s *State) IsDown(action Action) bool {
	if action < 0 || action >= actionCount {
		return false
	}
	return s.current[action]
}

func (s *State) IsPressed(action Action) bool {
	if action < 0 || action >= actionCount {
		return false
	}
	return s.current[action] && !s.previous[action]
}

// IsReleased is true only on the tick the action goes from down to up
func (s *State) IsReleased(action Action) bool {
	if action < 0 || action >= actionCount {
		return false
	}
	return !s.current[action] && s.previous[action]
}

// None is a Source with no action ever held
type None struct{}

func (None) IsDown(Action) bool    { return false }
func (None) IsPressed(Action) bool { return false }
