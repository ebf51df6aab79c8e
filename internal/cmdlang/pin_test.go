package cmdlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePin_NotPin(t *testing.T) {
	for _, q := range []string{"", "pin", "pin something", "pinned tech x", "+ character A", "list pinned stuff"} {
		assert.Nil(t, ParsePin(q), "query %q", q)
	}
}

func TestParsePin_List(t *testing.T) {
	cmd := ParsePin("list pinned techniques")
	require.NotNil(t, cmd)
	assert.Equal(t, PinModeList, cmd.Mode)
	assert.Equal(t, PinTechnique, cmd.Target)

	cmd = ParsePin("  List Pinned Categories ")
	require.NotNil(t, cmd)
	assert.Equal(t, PinModeList, cmd.Mode)
	assert.Equal(t, PinCategory, cmd.Target)
}

func TestParsePin(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		mode      PinMode
		target    PinTarget
		pinName   string
		intensity string
		note      string
		err       string
	}{
		{
			name:      "technique default intensity",
			query:     "pin tech iceberg theory",
			mode:      PinModePin,
			target:    PinTechnique,
			pinName:   "iceberg theory",
			intensity: "med",
		},
		{
			name:      "explicit intensity",
			query:     "pin technique foreshadowing HIGH",
			mode:      PinModePin,
			target:    PinTechnique,
			pinName:   "foreshadowing",
			intensity: "high",
		},
		{
			name:      "quoted name with note",
			query:     `pin cat "structure" low --note "keep it subtle"`,
			mode:      PinModePin,
			target:    PinCategory,
			pinName:   "structure",
			intensity: "low",
			note:      "keep it subtle",
		},
		{
			name:      "unpin keeps intensity words in the name",
			query:     "unpin tech slow burn low",
			mode:      PinModeUnpin,
			target:    PinTechnique,
			pinName:   "slow burn low",
			intensity: "med",
		},
		{
			name:      "missing technique name",
			query:     "pin tech",
			mode:      PinModePin,
			target:    PinTechnique,
			intensity: "med",
			err:       "missing technique name",
		},
		{
			name:      "missing category name before options",
			query:     "unpin category --weight 2",
			mode:      PinModeUnpin,
			target:    PinCategory,
			intensity: "med",
			err:       "missing category name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ParsePin(tt.query)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.mode, cmd.Mode)
			assert.Equal(t, tt.target, cmd.Target)
			assert.Equal(t, tt.pinName, cmd.Name)
			assert.Equal(t, tt.intensity, cmd.Intensity)
			assert.Equal(t, tt.note, cmd.Note)
			assert.Equal(t, tt.err, cmd.Err)
		})
	}
}

func TestParsePin_Weight(t *testing.T) {
	cmd := ParsePin("pin tech iceberg --weight 0.8")
	require.NotNil(t, cmd)
	require.NotNil(t, cmd.Weight)
	assert.Equal(t, 0.8, *cmd.Weight)
	assert.Equal(t, "iceberg", cmd.Name)

	cmd = ParsePin("pin tech iceberg --weight heavy")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd.Weight)
}

func TestPinCommand_Noun(t *testing.T) {
	assert.Equal(t, "technique", (&PinCommand{Target: PinTechnique}).Noun())
	assert.Equal(t, "category", (&PinCommand{Target: PinCategory}).Noun())
}
