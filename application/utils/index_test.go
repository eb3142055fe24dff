package utils

import (
	"encoding/base64"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateULIDString(t *testing.T) {
	id := GenerateULIDString()
	_, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GenerateULIDString())
}

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		want    []byte
		wantErr bool
	}{
		{name: "plain base64", payload: encoded, want: raw},
		{name: "data uri", payload: "data:image/jpeg;base64," + encoded, want: raw},
		{name: "unpadded", payload: base64.RawStdEncoding.EncodeToString(raw), want: raw},
		{name: "empty", payload: "   ", wantErr: true},
		{name: "garbage", payload: "not*base64", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64Image(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
