package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIntent(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    Intent
		wantErr error
	}{
		{
			name:  "move",
			frame: `{"type":"move","dx":10,"dy":-2.5}`,
			want:  MoveIntent{DX: 10, DY: -2.5},
		},
		{
			name:  "move with zero deltas",
			frame: `{"type":"move","dx":0,"dy":0}`,
			want:  MoveIntent{},
		},
		{
			name:    "move missing dy",
			frame:   `{"type":"move","dx":10}`,
			wantErr: ErrMalformedFrame,
		},
		{
			name:  "stageCompleted true",
			frame: `{"type":"stageCompleted","stageCompleted":true}`,
			want:  StageCompletedIntent{Completed: true},
		},
		{
			name:  "stageCompleted false is distinct from absent",
			frame: `{"type":"stageCompleted","stageCompleted":false}`,
			want:  StageCompletedIntent{Completed: false},
		},
		{
			name:    "stageCompleted missing flag",
			frame:   `{"type":"stageCompleted"}`,
			wantErr: ErrMalformedFrame,
		},
		{
			name:  "startGame",
			frame: `{"type":"startGame"}`,
			want:  StartGameIntent{},
		},
		{
			name:  "startGame ignores extra fields",
			frame: `{"type":"startGame","dx":1}`,
			want:  StartGameIntent{},
		},
		{
			name:  "setUsername",
			frame: `{"type":"setUsername","username":"alice"}`,
			want:  SetUsernameIntent{Username: "alice"},
		},
		{
			name:    "setUsername missing name",
			frame:   `{"type":"setUsername"}`,
			wantErr: ErrMalformedFrame,
		},
		{
			name:    "unknown type",
			frame:   `{"type":"teleport","x":1}`,
			wantErr: ErrUnknownType,
		},
		{
			name:    "missing type",
			frame:   `{"dx":1,"dy":1}`,
			wantErr: ErrUnknownType,
		},
		{
			name:    "not json",
			frame:   `move 10 20`,
			wantErr: ErrMalformedFrame,
		},
		{
			name:    "json array",
			frame:   `["move",10,20]`,
			wantErr: ErrMalformedFrame,
		},
		{
			name:    "empty frame",
			frame:   ``,
			wantErr: ErrMalformedFrame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeIntent([]byte(tt.frame))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
