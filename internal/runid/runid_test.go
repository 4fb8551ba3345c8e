package runid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalnine/cohstats/internal/config"
	"github.com/signalnine/cohstats/internal/runid"
)

func TestDecode(t *testing.T) {
	d := runid.NewDecoder(config.DefaultModes)

	tests := []struct {
		name string
		in   string
		want runid.ID
	}{
		{"all fields", "MESI_8c_hot_rpw4", runid.ID{Protocol: "MESI", Cores: "8", Mode: "Max Sharing", RPW: "4"}},
		{"reordered tokens", "MOESI_rpw16_padded_32c", runid.ID{Protocol: "MOESI", Cores: "32", Mode: "No Sharing", RPW: "16"}},
		{"extra tokens", "CHI_run2_4c_false_x_rpw1", runid.ID{Protocol: "CHI", Cores: "4", Mode: "False Sharing", RPW: "1"}},
		{"no core token", "protoX_hot", runid.ID{Protocol: "protoX", Mode: "Max Sharing"}},
		{"first match wins", "MI_2c_4c_hot_padded_rpw2_rpw8", runid.ID{Protocol: "MI", Cores: "2", Mode: "Max Sharing", RPW: "2"}},
		{"empty name", "", runid.ID{}},
		{"protocol only", "MESI", runid.ID{Protocol: "MESI"}},
		{"bare c is not cores", "MESI_c_rpw_hotter", runid.ID{Protocol: "MESI"}},
		{"leading underscore", "_8c", runid.ID{Cores: "8"}},
		{"protocol token can also match", "8c_hot", runid.ID{Protocol: "8c", Cores: "8", Mode: "Max Sharing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Decode(tt.in))
		})
	}
}

func TestDecodeIdempotent(t *testing.T) {
	d := runid.NewDecoder(config.DefaultModes)
	for _, name := range []string{"MESI_8c_hot_rpw4", "", "___", "x_y_z", "MOESI_false_16c"} {
		assert.Equal(t, d.Decode(name), d.Decode(name), name)
	}
}

func TestDecodeCustomModes(t *testing.T) {
	modes := map[string]string{"priv": "Private"}
	d := runid.NewDecoder(modes)
	modes["hot"] = "Max Sharing"

	assert.Equal(t, "Private", d.Decode("MESI_priv").Mode)
	assert.Empty(t, d.Decode("MESI_hot").Mode, "decoder must not see later edits to the mode table")
}
