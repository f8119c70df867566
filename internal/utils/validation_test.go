package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStationName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{name: "latin name", input: "Sakae"},
		{name: "name with spaces and dots", input: "St. Paul's Cathedral"},
		{name: "japanese name", input: "名古屋大学駅"},
		{name: "empty name", input: "", wantErr: true, errMsg: "station name cannot be empty"},
		{name: "name too long", input: strings.Repeat("a", 101), wantErr: true, errMsg: "station name too long (max 100 characters)"},
		{name: "long multibyte name within limit", input: strings.Repeat("駅", 100)},
		{name: "control character", input: "Sakae\n", wantErr: true, errMsg: "station name contains control characters"},
		{name: "html tag", input: "Sakae<script>", wantErr: true, errMsg: "station name contains invalid characters"},
		{name: "sql comment", input: "Sakae'; DROP TABLE stations; --", wantErr: true, errMsg: "station name contains invalid characters"},
		{name: "invalid utf8", input: "\xff\xfe", wantErr: true, errMsg: "station name is not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStationName(tt.input)
			if tt.wantErr {
				assert.EqualError(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateZone(t *testing.T) {
	assert.NoError(t, ValidateZone(0))
	assert.NoError(t, ValidateZone(11))
	assert.Error(t, ValidateZone(-1))
}
