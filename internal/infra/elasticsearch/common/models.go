// common contains models that are common to ES operations
package common

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

type IndexName string
type DocumentID string

type ElasticsearchErr struct {
	Underlying error
}

func (e ElasticsearchErr) Error() string {
	return fmt.Sprintf("Error from Elasticsearch: %v", e.Underlying)
}

func (e ElasticsearchErr) Unwrap() error {
	return e.Underlying
}

type JsonSerdesErr struct {
	Underlying []error
}

func (e JsonSerdesErr) Error() string {
	return fmt.Sprintf("Error working with JSON: %v", e.Underlying)
}

func (e JsonSerdesErr) Unwrap() error {
	if len(e.Underlying) == 1 {
		return e.Underlying[0]
	} else {
		return fmt.Errorf("Multiple JSON serdes errors: [%v]", e.Underlying)
	}
}

func UnexpectedEsStatusError(rawResp *esapi.Response) ElasticsearchErr {
	var buf bytes.Buffer
	var body string
	if _, err := buf.ReadFrom(rawResp.Body); err == nil {
		body = buf.String()
	}
	return ElasticsearchErr{Underlying: fmt.Errorf("Unexpected status from ES: [%d], body: [%s]", rawResp.StatusCode, body)}
}

// versionLength is 2 x uint64: the document's seq_no followed by its
// primary_term, both big endian.
const versionLength = 16

// VersionBytes packs a document's seq_no and primary_term into the opaque
// version bytes the domain hands around.
func VersionBytes(seqNum uint64, primaryTerm uint64) metadata.Version {
	version := make(metadata.Version, versionLength)
	binary.BigEndian.PutUint64(version[:8], seqNum)
	binary.BigEndian.PutUint64(version[8:], primaryTerm)
	return version
}

// SeqAndPrimaryTerm unpacks version bytes produced by VersionBytes. The bool
// is false when the bytes did not come from this store, in which case they
// cannot possibly match any persisted document.
func SeqAndPrimaryTerm(version metadata.Version) (uint64, uint64, bool) {
	if len(version) != versionLength {
		return 0, 0, false
	}
	return binary.BigEndian.Uint64(version[:8]), binary.BigEndian.Uint64(version[8:]), true
}

type EsCreateResponse struct {
	ID          string `json:"_id"`
	SeqNum      uint64 `json:"_seq_no"`
	PrimaryTerm uint64 `json:"_primary_term"`
}

func (r *EsCreateResponse) Version() metadata.Version {
	return VersionBytes(r.SeqNum, r.PrimaryTerm)
}

type EsUpdateResponse struct {
	Index       string `json:"_index"`
	ID          string `json:"_id"`
	SeqNum      uint64 `json:"_seq_no"`
	PrimaryTerm uint64 `json:"_primary_term"`
	Result      string `json:"result"`
}

func (r *EsUpdateResponse) Version() metadata.Version {
	return VersionBytes(r.SeqNum, r.PrimaryTerm)
}
