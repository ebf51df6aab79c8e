package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/novix/internal/types"
)

func TestStatusCmds(t *testing.T) {
	tests := []struct {
		name    string
		msg     any
		want    string
		msgType types.MessageType
	}{
		{"error", ErrorCmd("Pin failed: %v", "boom")(), "Pin failed: boom", types.MessageTypeError},
		{"success", SuccessCmd("Created %s", "character:Alice")(), "Created character:Alice", types.MessageTypeSuccess},
		{"info", InfoCmd("Palette data refreshed")(), "Palette data refreshed", types.MessageTypeInfo},
		{"warning", WarningCmd("ignored --lock %s", "x")(), "ignored --lock x", types.MessageTypeWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := tt.msg.(types.StatusMsg)
			assert.True(t, ok)
			assert.Equal(t, tt.want, status.Message)
			assert.Equal(t, tt.msgType, status.Type)
		})
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("disk full")
	err := WrapError(base, "failed to save %s", "recent list")

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "failed to save recent list: disk full", err.Error())
}
