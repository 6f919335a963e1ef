package storage

import (
	"testing"
	"time"

	"github.com/poiesic/docindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalDocumentRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.DocumentRecord
	}{
		{
			"uploaded but not ingested",
			&core.DocumentRecord{
				Key:        "uploads/report.pdf",
				Name:       "report.pdf",
				Size:       204800,
				UploadedAt: now,
			},
		},
		{
			"fully ingested",
			&core.DocumentRecord{
				Key:        "uploads/report.pdf",
				Name:       "report.pdf",
				Size:       204800,
				PageCount:  12,
				ChunkCount: 37,
				UploadedAt: now.Add(-time.Hour),
				IngestedAt: now,
			},
		},
		{
			"non-ascii key and name",
			&core.DocumentRecord{
				Key:        "uploads/日本語レポート.pdf",
				Name:       "日本語レポート.pdf",
				Size:       1,
				UploadedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocumentRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocumentRecord(data)
			require.NoError(t, err)

			assert.Equal(t, tt.record.Key, decoded.Key)
			assert.Equal(t, tt.record.Name, decoded.Name)
			assert.Equal(t, tt.record.Size, decoded.Size)
			assert.Equal(t, tt.record.PageCount, decoded.PageCount)
			assert.Equal(t, tt.record.ChunkCount, decoded.ChunkCount)
			assert.True(t, tt.record.UploadedAt.Equal(decoded.UploadedAt))
			assert.Equal(t, tt.record.IngestedAt.IsZero(), decoded.IngestedAt.IsZero())
			if !tt.record.IngestedAt.IsZero() {
				assert.True(t, tt.record.IngestedAt.Equal(decoded.IngestedAt))
			}
		})
	}
}

func TestUnmarshalDocumentRecord_Invalid(t *testing.T) {
	_, err := UnmarshalDocumentRecord([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
