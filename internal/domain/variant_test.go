package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSelection_IgnoresAvailability(t *testing.T) {
	sel := DefaultSelection()

	assert.Equal(t, Selection{ColorID: "black", Size: "XS"}, sel)
	assert.False(t, IsInStock(sel))
}

func TestIsInStock(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want bool
	}{
		{"available pair", Selection{ColorID: "white", Size: "XL"}, true},
		{"marked unavailable", Selection{ColorID: "blue", Size: "L"}, false},
		{"missing from matrix", Selection{ColorID: "white", Size: "XXL"}, false},
		{"no size", Selection{ColorID: "white"}, false},
		{"no color", Selection{Size: "M"}, false},
		{"unknown color", Selection{ColorID: "purple", Size: "M"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInStock(tt.sel))
		})
	}
}

func TestFirstAvailableSize(t *testing.T) {
	assert.Equal(t, "S", FirstAvailableSize("black"))
	assert.Equal(t, "M", FirstAvailableSize("red"))
	assert.Equal(t, "", FirstAvailableSize("purple"))
}

func TestKnownVariants(t *testing.T) {
	assert.True(t, KnownColor("green"))
	assert.False(t, KnownColor("Green"))
	assert.True(t, KnownSize("XXL"))
	assert.False(t, KnownSize("XXXL"))
}
