package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/novix/internal/types"
	"github.com/renato0307/novix/internal/ui"
)

func TestHeader_View(t *testing.T) {
	h := NewHeader("novix", ui.ThemeCharm())
	h.SetWidth(80)
	assert.Contains(t, h.View(), "novix")

	h.SetViewTitle("Characters")
	h.SetProject("demo")
	h.SetChapter("ch_001")
	h.SetLastRefresh(time.Now().Add(-90 * time.Second))

	view := h.View()
	assert.Contains(t, view, "Characters • project: demo • chapter: ch_001")
	assert.Contains(t, view, "Loaded 1m ago")
}

func TestSince(t *testing.T) {
	assert.Equal(t, "5s ago", since(5*time.Second))
	assert.Equal(t, "2m ago", since(2*time.Minute))
	assert.Equal(t, "3h ago", since(3*time.Hour))
}

func TestUserMessage_ClearOnlyCurrent(t *testing.T) {
	um := NewUserMessage(ui.ThemeCharm())
	um.SetWidth(80)

	assert.NotNil(t, um.SetMessage("first", types.MessageTypeSuccess))
	um.SetMessage("second", types.MessageTypeError)

	um.Clear(1)
	text, kind := um.Message()
	assert.Equal(t, "second", text)
	assert.Equal(t, types.MessageTypeError, kind)
	assert.Contains(t, um.View(), "second")

	um.Clear(2)
	text, _ = um.Message()
	assert.Empty(t, text)
}

func TestUserMessage_Loading(t *testing.T) {
	um := NewUserMessage(ui.ThemeCharm())
	assert.NotNil(t, um.SetMessage("Refreshing", types.MessageTypeLoading))
	assert.True(t, um.IsLoadingMessage())
	assert.Contains(t, um.View(), "Refreshing")
}
