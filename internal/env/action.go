package env

// Action is the agent's long-term-store command for one step.
//
// The reference describes a two-action interface in its prose but
// implements three actions; this port keeps the implemented
// three-action space, with Hold as the explicit neutral choice.
type Action int

const (
	// ActionDischarge drains the long-term store at maximum power.
	ActionDischarge Action = iota
	// ActionHold leaves the long-term store untouched.
	ActionHold
	// ActionCharge fills the long-term store at maximum power.
	ActionCharge
)

// NumActions is the size of the discrete action space.
const NumActions = 3

func (a Action) Valid() bool {
	return a >= ActionDischarge && a <= ActionCharge
}

func (a Action) String() string {
	switch a {
	case ActionDischarge:
		return "DISCHARGE"
	case ActionHold:
		return "HOLD"
	case ActionCharge:
		return "CHARGE"
	default:
		return "INVALID"
	}
}
