package camera

import (
	"fmt"
	"strings"
)

// Action is one discrete camera intent. Key bindings are resolved into Actions by
// the input layer so the camera math never sees raw keys.
type Action uint8

const (
	YawLeft Action = 1 << iota
	YawRight
	PitchUp
	PitchDown
	DollyForward
	DollyBackward
	Boost
)

// AllActions lists every action in a stable order.
var AllActions = []Action{YawLeft, YawRight, PitchUp, PitchDown, DollyForward, DollyBackward, Boost}

// actionNames are the names used in config files ("keys:" section).
var actionNames = map[Action]string{
	YawLeft:       "left",
	YawRight:      "right",
	PitchUp:       "up",
	PitchDown:     "down",
	DollyForward:  "forward",
	DollyBackward: "backward",
	Boost:         "boost",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction maps a config name (case-insensitive) back to its Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown camera action %q", name)
}

// Actions is the set of actions active during one frame.
type Actions uint8

// Has reports whether a is in the set.
func (s Actions) Has(a Action) bool {
	return s&Actions(a) != 0
}

// With returns the set with a added.
func (s Actions) With(a Action) Actions {
	return s | Actions(a)
}

func (s Actions) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, a := range AllActions {
		if s.Has(a) {
			parts = append(parts, a.String())
		}
	}
	return strings.Join(parts, "+")
}

// axis folds a pair of opposing actions into -1, 0 or +1.
func (s Actions) axis(pos, neg Action) float32 {
	var v float32
	if s.Has(pos) {
		v++
	}
	if s.Has(neg) {
		v--
	}
	return v
}
