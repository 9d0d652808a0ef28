package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		p        float64
		percent  string
		survived bool
	}{
		{0.82, "82.0", true},
		{0.5, "50.0", true},
		{0.4999, "50.0", false},
		{0.0, "0.0", false},
		{1.0, "100.0", true},
		{0.123, "12.3", false},
	}

	for _, tt := range tests {
		v := Classify(tt.p)
		assert.Equal(t, tt.percent, v.Percent, "p=%v", tt.p)
		assert.Equal(t, tt.survived, v.Survived, "p=%v", tt.p)
		if tt.survived {
			assert.Equal(t, LabelSurvived, v.Label)
			assert.Equal(t, ColorSurvived, v.Color)
		} else {
			assert.Equal(t, LabelPerished, v.Label)
			assert.Equal(t, ColorPerished, v.Color)
		}
	}
}

func TestCompare(t *testing.T) {
	c := Compare(0.82, 0.15)
	assert.Equal(t, "67.0", c.Difference)
	assert.Equal(t, "Person 1", c.BetterChance)
	assert.True(t, c.Person1.Survived)
	assert.False(t, c.Person2.Survived)

	c = Compare(0.2, 0.6)
	assert.Equal(t, "40.0", c.Difference)
	assert.Equal(t, "Person 2", c.BetterChance)
}

func TestCompare_TieReportsPersonTwo(t *testing.T) {
	c := Compare(0.5, 0.5)
	assert.Equal(t, "0.0", c.Difference)
	assert.Equal(t, "Person 2", c.BetterChance)
}

func TestPercentRoundsHalvesUp(t *testing.T) {
	assert.Equal(t, "81.3", Percent(0.8125))
	assert.Equal(t, 81.3, PercentValue(0.8125))
	assert.Equal(t, "31.3", Compare(0.8125, 0.5).Difference)
	assert.Equal(t, "81.3", Classify(0.8125).Percent)
}
