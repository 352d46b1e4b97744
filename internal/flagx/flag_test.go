package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-b", "embedded", "-x", "other"},
			allowedFlags: []string{"-b", "-d"},
			want:         []string{"-b", "embedded"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-d=users.db", "-x", "other"},
			allowedFlags: []string{"-b", "-d"},
			want:         []string{"-d=users.db"},
		},
		{
			name:         "order preserved across forms",
			args:         []string{"-d=first.db", "-b", "relational", "-x", "1"},
			allowedFlags: []string{"-b", "-d"},
			want:         []string{"-d=first.db", "-b", "relational"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "migrate"},
			allowedFlags: []string{"-b"},
			want:         []string{},
		},
		{
			name:         "flag without value at end kept as-is",
			args:         []string{"-v"},
			allowedFlags: []string{"-v"},
			want:         []string{"-v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cmd", "register", "-c", "conf.json", "-b", "embedded"}
	assert.Equal(t, "conf.json", JSONConfigFlags())

	os.Args = []string{"cmd", "register", "-b", "embedded"}
	assert.Equal(t, "", JSONConfigFlags())

	os.Args = []string{"cmd", "-config=alt.json"}
	assert.Equal(t, "alt.json", JSONConfigFlags())
}
