package types

import (
	"fmt"
	"sort"
	"strings"
)

// Action is one edit the user can request
type Action string

const (
	ActionOrientation Action = "orientation"
	ActionMode        Action = "mode"
)

// Actions returns every action in application order
func Actions() []Action {
	return []Action{ActionOrientation, ActionMode}
}

// Label is the human readable menu entry
func (a Action) Label() string {
	switch a {
	case ActionOrientation:
		return "Change orientation"
	case ActionMode:
		return "Change light/dark mode"
	default:
		return string(a)
	}
}

// ParseAction maps loose user input onto an Action
func ParseAction(s string) (Action, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return "", fmt.Errorf("empty action")
	case strings.Contains(v, "orient") || v == "rotate" || v == "o":
		return ActionOrientation, nil
	case strings.Contains(v, "mode") || strings.Contains(v, "light") ||
		strings.Contains(v, "dark") || v == "invert" || v == "m":
		return ActionMode, nil
	}
	return "", fmt.Errorf("unknown action: %q", s)
}

// SortActions deduplicates and orders actions the way the pipeline applies them
func SortActions(actions []Action) []Action {
	rank := map[Action]int{}
	for i, a := range Actions() {
		rank[a] = i
	}
	seen := map[Action]bool{}
	var out []Action
	for _, a := range actions {
		if _, ok := rank[a]; !ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return rank[out[i]] < rank[out[j]] })
	return out
}

// Direction of a 90 degree turn
type Direction string

const (
	Clockwise        Direction = "clockwise"
	CounterClockwise Direction = "counterclockwise"
)

// Label is the human readable menu entry
func (d Direction) Label() string {
	switch d {
	case Clockwise:
		return "↻ Clockwise"
	case CounterClockwise:
		return "↺ Counter-clockwise"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of the two known directions
func (d Direction) Valid() bool {
	return d == Clockwise || d == CounterClockwise
}

// ParseDirection maps loose user input onto a Direction
func ParseDirection(s string) (Direction, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "cw" || v == "right" || v == "↻" || strings.HasPrefix(v, "clock") || strings.HasPrefix(v, "↻"):
		return Clockwise, nil
	case v == "ccw" || v == "left" || v == "↺" || strings.HasPrefix(v, "counter") ||
		strings.HasPrefix(v, "anti") || strings.HasPrefix(v, "↺"):
		return CounterClockwise, nil
	}
	return "", fmt.Errorf("unknown direction: %q (use clockwise or counterclockwise)", s)
}

// Mode is the light/dark look of a frame
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Token is the filename suffix word for a frame that ends up in this mode
func (m Mode) Token() string {
	return string(m) + "mode"
}

// OrientationToken is the filename suffix word for a rotation
const OrientationToken = "orientation"
