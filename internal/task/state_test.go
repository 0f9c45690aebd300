package task

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestDecodeStateLabels(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{`"pending"`, StatePending},
		{`"running"`, StateRunning},
		{`"done"`, StateDone},
		{`"error"`, StateError},
		{`"cancelled"`, StateCancelled},
		{`"canceled"`, StateCancelled},
		{`"Done"`, StateDone},
		{`"RUNNING"`, StateRunning},
		{`"cancelling"`, StateRunning},
		{`"Cancelling"`, StateRunning},
		{`"something-new"`, StateUnknown},
		{`""`, StateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeState(gjson.Parse(tt.raw)))
		})
	}
}

func TestDecodeStateNumericCodes(t *testing.T) {
	tests := []struct {
		code int
		want State
	}{
		{0, StatePending},
		{1, StateRunning},
		{3, StateCancelled},
		{4, StateDone},
		{5, StateError},
		{2, StateUnknown},
		{99, StateUnknown},
		{-1, StateUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeState(gjson.Parse(fmt.Sprint(tt.code))))
		})
	}
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateError.Terminal())
	assert.True(t, StateCancelled.Terminal())

	assert.False(t, StatePending.Terminal())
	assert.False(t, StateRunning.Terminal())
	assert.False(t, StateUnknown.Terminal())
}

func TestTaskStateFromPayload(t *testing.T) {
	tests := []struct {
		payload string
		want    State
	}{
		{`{"id":1,"state":"running","percent":50}`, StateRunning},
		{`{"id":1,"state":4}`, StateDone},
		{`{"id":1}`, StateUnknown},
		{`{}`, StateUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TaskState(json.RawMessage(tt.payload)), tt.payload)
	}
}

func TestTaskPercentClamped(t *testing.T) {
	tests := []struct {
		payload string
		want    int
	}{
		{`{"percent":42}`, 42},
		{`{"percent":0}`, 0},
		{`{"percent":100}`, 100},
		{`{"percent":120}`, 100},
		{`{"percent":-5}`, 0},
		{`{}`, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TaskPercent(json.RawMessage(tt.payload)), tt.payload)
	}
}
