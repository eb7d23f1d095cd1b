package input

import (
	"fmt"
	"sort"
	"strings"

	"nbodies/internal/camera"
)

// Bindings maps each camera action to the keys that trigger it. Any bound key
// being down activates the action.
type Bindings map[camera.Action][]Key

// DefaultBindings: W/S dolly, A/D orbit sideways, Q/E orbit up/down, arrows as
// alternates, either shift boosts.
func DefaultBindings() Bindings {
	return Bindings{
		camera.DollyForward:  {Key('W'), KeyPageUp},
		camera.DollyBackward: {Key('S'), KeyPageDown},
		camera.YawLeft:       {Key('A'), KeyLeft},
		camera.YawRight:      {Key('D'), KeyRight},
		camera.PitchUp:       {Key('Q'), KeyUp},
		camera.PitchDown:     {Key('E'), KeyDown},
		camera.Boost:         {KeyLeftShift, KeyRightShift},
	}
}

// BindingsFromNames builds bindings from a config "keys" section. Each value is a
// comma-separated key list and replaces the default keys for that action;
// actions not named keep their defaults.
func BindingsFromNames(names map[string]string) (Bindings, error) {
	b := DefaultBindings()
	for actionName, keyList := range names {
		action, err := camera.ParseAction(actionName)
		if err != nil {
			return nil, err
		}
		var keys []Key
		for _, part := range strings.Split(keyList, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			k, err := ParseKey(part)
			if err != nil {
				return nil, fmt.Errorf("binding for %s: %w", action, err)
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("binding for %s: no keys", action)
		}
		b[action] = keys
	}
	return b, nil
}

// Resolve turns the raw key state into the frame's action set.
func (b Bindings) Resolve(isDown func(Key) bool) camera.Actions {
	var actions camera.Actions
	for action, keys := range b {
		for _, k := range keys {
			if isDown(k) {
				actions = actions.With(action)
				break
			}
		}
	}
	return actions
}

// Describe lists the bindings one per line, in action order, for the help overlay.
func (b Bindings) Describe() []string {
	lines := make([]string, 0, len(b))
	for _, action := range camera.AllActions {
		keys, ok := b[action]
		if !ok {
			continue
		}
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		sort.Strings(names)
		lines = append(lines, fmt.Sprintf("%-8s %s", action, strings.Join(names, ", ")))
	}
	return lines
}
