package common

import (
	"io"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/stretchr/testify/assert"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

func TestVersionBytes_roundTrip(t *testing.T) {
	tests := []struct {
		name        string
		seqNum      uint64
		primaryTerm uint64
	}{
		{"zeros", 0, 0},
		{"small values", 42, 1},
		{"max values", ^uint64(0), ^uint64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqNum, primaryTerm, ok := SeqAndPrimaryTerm(VersionBytes(tt.seqNum, tt.primaryTerm))
			assert.True(t, ok)
			assert.EqualValues(t, tt.seqNum, seqNum)
			assert.EqualValues(t, tt.primaryTerm, primaryTerm)
		})
	}
}

func TestSeqAndPrimaryTerm_wrongLength(t *testing.T) {
	tests := []struct {
		name    string
		version metadata.Version
	}{
		{"empty", metadata.Version{}},
		{"too short", metadata.Version{0x01}},
		{"8 bytes from another store", make(metadata.Version, 8)},
		{"too long", make(metadata.Version, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := SeqAndPrimaryTerm(tt.version)
			assert.False(t, ok)
		})
	}
}

func TestUnexpectedEsStatusError_carriesBody(t *testing.T) {
	resp := esapi.Response{
		StatusCode: 503,
		Body:       io.NopCloser(strings.NewReader(`{"error":"shards unavailable"}`)),
	}
	err := UnexpectedEsStatusError(&resp)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "shards unavailable")
}

func TestVersionBytes_distinctInputsDistinctBytes(t *testing.T) {
	a := VersionBytes(1, 1)
	b := VersionBytes(1, 2)
	c := VersionBytes(2, 1)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, b.Equal(c))
}
