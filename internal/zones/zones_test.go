package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneBoundaries(t *testing.T) {
	testCases := []struct {
		distance int
		want     int
	}{
		{0, 1},
		{30, 1},
		{31, 2},
		{70, 2},
		{71, 3},
		{351, 10},
		{390, 10},
		{391, 11},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Zone(tc.distance), "distance %d", tc.distance)
	}
}

func TestZoneIsNotPlainCeiling(t *testing.T) {
	// Plain ceiling of d/40 would give zone 1 here.
	assert.Equal(t, 2, Zone(35))
}

func TestClassify(t *testing.T) {
	got := Classify(map[string]int{"a": 0, "b": 391, "c": 120})
	assert.Equal(t, Map{"a": 1, "b": 11, "c": 4}, got)
	assert.Empty(t, Classify(nil))
}
