package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptions(t *testing.T) {
	options, err := DecodeOptions(`{"includeChildProjects":"true"}`, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"includeChildProjects": "true"}, options)
}

func TestDecodeOptions_POSIXQuoting(t *testing.T) {
	// the Linux launcher passes the JSON wrapped in quotes with every inner quote doubled
	raw := `"{""includeChildProjects"":""False""}"`

	options, err := DecodeOptions(raw, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"includeChildProjects": "False"}, options)
}

func TestDecodeOptions_Errors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		posix bool
	}{
		{name: "empty", raw: ""},
		{name: "blank", raw: "   "},
		{name: "malformed", raw: `{"includeChildProjects":`},
		{name: "non string value", raw: `{"includeChildProjects":true}`},
		{name: "posix too short", raw: `"`, posix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOptions(tt.raw, tt.posix)
			assert.Error(t, err)
		})
	}
}
