// metadata contains models that hold data about data. Every persisted record
// carries one, and the Version inside it is what the optimistic concurrency
// story hangs off of.
package metadata

import (
	"bytes"
	"time"
)

type CreatedAt time.Time
type ModifiedAt time.Time

// Version is the opaque, storage-assigned concurrency marker for a record.
//
// The bytes are meaningful only to the store that produced them; everyone else
// treats them as a black box and compares them with Equal. A record's Version
// changes on every successful write and is never reused for a given id.
type Version []byte

// Equal compares two Versions byte for byte. Versions are never compared as
// strings because different encodings of the same bytes would not be equal.
func (v Version) Equal(other Version) bool {
	return bytes.Equal(v, other)
}

type Metadata struct {
	CreatedAt  CreatedAt  `json:"created_at"`
	ModifiedAt ModifiedAt `json:"modified_at"`
	Version    Version    `json:"-"`
}

func (c CreatedAt) MarshalJSON() ([]byte, error) {
	return time.Time(c).MarshalJSON()
}

func (c *CreatedAt) UnmarshalJSON(data []byte) error {
	return (*time.Time)(c).UnmarshalJSON(data)
}

func (m ModifiedAt) MarshalJSON() ([]byte, error) {
	return time.Time(m).MarshalJSON()
}

func (m *ModifiedAt) UnmarshalJSON(data []byte) error {
	return (*time.Time)(m).UnmarshalJSON(data)
}
