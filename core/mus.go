package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// DocumentRecordMUS is the MUS format serializer for DocumentRecord.
var DocumentRecordMUS = documentRecordMUS{}

type documentRecordMUS struct{}

func (documentRecordMUS) Marshal(r DocumentRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.Key, bs)
	n += ord.String.Marshal(r.Name, bs[n:])
	n += varint.Int64.Marshal(r.Size, bs[n:])
	n += varint.Int.Marshal(r.PageCount, bs[n:])
	n += varint.Int.Marshal(r.ChunkCount, bs[n:])
	n += varint.Int64.Marshal(timeToMicro(r.UploadedAt), bs[n:])
	n += varint.Int64.Marshal(timeToMicro(r.IngestedAt), bs[n:])
	return
}

func (documentRecordMUS) Unmarshal(bs []byte) (r DocumentRecord, n int, err error) {
	var n1 int
	r.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Size, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.PageCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.ChunkCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.UploadedAt = microToTime(micros)
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.IngestedAt = microToTime(micros)
	return
}

func (documentRecordMUS) Size(r DocumentRecord) (size int) {
	size = ord.String.Size(r.Key)
	size += ord.String.Size(r.Name)
	size += varint.Int64.Size(r.Size)
	size += varint.Int.Size(r.PageCount)
	size += varint.Int.Size(r.ChunkCount)
	size += varint.Int64.Size(timeToMicro(r.UploadedAt))
	size += varint.Int64.Size(timeToMicro(r.IngestedAt))
	return
}

// Timestamps are stored as Unix microseconds. The zero time is stored as 0
// so that IsZero survives a round trip; real upload and ingest timestamps
// never land exactly on the epoch.
func timeToMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microToTime(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}
