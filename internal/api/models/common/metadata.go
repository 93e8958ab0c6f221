package common

import (
	"time"

	"github.com/tasklink/tasklink/internal/domain/etag"
	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// Metadata is the API rendering of a record's metadata. The version bytes go
// out as an ETag-style token, which is also what callers hand back in
// If-Match on updates.
type Metadata struct {
	CreatedAt  time.Time `json:"created_at" swaggertype:"string" format:"date-time"`
	ModifiedAt time.Time `json:"modified_at" swaggertype:"string" format:"date-time"`
	ETag       string    `json:"etag" example:"W/\"AAAAAAAAAAE=\""`
}

func FromDomainMetadata(meta metadata.Metadata) Metadata {
	return Metadata{
		CreatedAt:  time.Time(meta.CreatedAt),
		ModifiedAt: time.Time(meta.ModifiedAt),
		ETag:       etag.Encode(meta.Version),
	}
}
