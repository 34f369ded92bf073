package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEclipseInput(t *testing.T) {

	cases := []struct {
		payload string
		known   bool
		value   int
	}{
		{"Non-Eclipse", true, 0},
		{"Eclipse", true, 1},
		{"0", true, 0},
		{"1", true, 1},
		{"1.0", true, 1},
		{"0.9", true, 0},
		{"1.7", true, 1},
		{"-0.5", true, 0},
		{" 1 ", true, 1},
		{"2", false, 0},
		{"-1", false, 0},
		{"eclipse", false, 0},
		{"ECLIPSE", false, 0},
		{"on", false, 0},
		{"", false, 0},
	}

	for _, c := range cases {
		in := NormalizeEclipseInput(c.payload)
		assert.Equal(t, c.known, in.Known, "payload %q known", c.payload)
		if c.known {
			assert.Equal(t, c.value, in.Value, "payload %q value", c.payload)
		}
	}
}

func TestEclipseStateString(t *testing.T) {

	assert.Equal(t, "Non-Eclipse", EclipseStateString(0))
	assert.Equal(t, "Eclipse", EclipseStateString(1))
}
