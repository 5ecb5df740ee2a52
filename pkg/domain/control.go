package domain

import "fmt"

// Control is an abstract input the scenes react to. Physical keys and buttons
// are mapped onto controls by the input source.
type Control int

const (
	ControlNone Control = iota
	ControlUp
	ControlDown
	ControlLeft
	ControlRight
	ControlConfirm
	ControlBack
	ControlPause
	ControlQuit
)

var controlNames = map[Control]string{
	ControlNone:    "none",
	ControlUp:      "up",
	ControlDown:    "down",
	ControlLeft:    "left",
	ControlRight:   "right",
	ControlConfirm: "confirm",
	ControlBack:    "back",
	ControlPause:   "pause",
	ControlQuit:    "quit",
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return fmt.Sprintf("control(%d)", int(c))
}

// ParseControl maps a control name to its value.
func ParseControl(name string) (Control, error) {
	for c, n := range controlNames {
		if n == name && c != ControlNone {
			return c, nil
		}
	}
	return ControlNone, fmt.Errorf("unknown control %q", name)
}

// DeviceChange is a gamepad connect or disconnect observed by the input source.
type DeviceChange struct {
	Index     int
	Connected bool
}

// Event converts the change into a GamepadConnected/GamepadDisconnected event.
func (d DeviceChange) Event() Event {
	if d.Connected {
		return NewGamepadConnectedEvent(d.Index)
	}
	return NewGamepadDisconnectedEvent(d.Index)
}
