package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopCountFor(t *testing.T) {
	tests := []struct {
		players int
		want    int
	}{
		{players: 2, want: 1},
		{players: 3, want: 1},
		{players: 5, want: 1},
		{players: 6, want: 2},
		{players: 20, want: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CopCountFor(tt.players), "players=%d", tt.players)
	}
}
