// Package task implements monitoring of FortiManager background tasks:
// canonical task-state decoding and a bounded completion poller.
package task

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// State is the canonical task state. The external API reports the state
// field inconsistently as a string label or an integer code; both forms
// are normalized here and the raw representation never travels further.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateDone      State = "done"
	StateError     State = "error"
	StateCancelled State = "cancelled"
	StateUnknown   State = "unknown"
)

// Numeric task-state codes. This table belongs to the /task/task state
// field only; device-status fields (conn_status, dev_status, ...) use
// their own unrelated enumerations.
var numericStates = map[int64]State{
	0: StatePending,
	1: StateRunning,
	3: StateCancelled,
	4: StateDone,
	5: StateError,
}

// Terminal reports whether no further transition can occur from s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateError || s == StateCancelled
}

// DecodeState normalizes a raw state value. String labels are matched
// case-insensitively; "cancelling" is still in flight and is reported
// as running.
func DecodeState(raw gjson.Result) State {
	switch raw.Type {
	case gjson.String:
		switch strings.ToLower(raw.String()) {
		case "pending":
			return StatePending
		case "running", "cancelling":
			return StateRunning
		case "done":
			return StateDone
		case "error":
			return StateError
		case "cancelled", "canceled":
			return StateCancelled
		default:
			return StateUnknown
		}
	case gjson.Number:
		if s, ok := numericStates[raw.Int()]; ok {
			return s
		}
		return StateUnknown
	default:
		return StateUnknown
	}
}

// TaskState extracts and decodes the state field of a raw task payload.
func TaskState(payload json.RawMessage) State {
	return DecodeState(gjson.GetBytes(payload, "state"))
}

// TaskPercent extracts the percent-complete field of a raw task
// payload, clamped to [0, 100].
func TaskPercent(payload json.RawMessage) int {
	percent := gjson.GetBytes(payload, "percent").Int()
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return int(percent)
}
