// store implements the storage contract on top of Elasticsearch, using the
// documents' seq_no and primary_term as the version bytes so that Swap maps
// directly onto ES's own optimistic concurrency control.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
	"github.com/tasklink/tasklink/internal/domain/storage"
	"github.com/tasklink/tasklink/internal/infra/elasticsearch/common"
)

type jsonObjMap map[string]interface{}

// Mapping adapts the generic store to one record type: which index it lives
// in, which fields substring search runs over, its parent relation, and the
// ES sort clauses behind each wire sort key.
type Mapping[T storage.Record[T]] struct {
	Index common.IndexName

	// SearchFields are keyword fields that search wildcards run against.
	// Empty means the type is not searchable.
	SearchFields []string

	// ParentField is the document field holding the parent id for scoped
	// listings. Empty means the type is top-level.
	ParentField string

	// Sorts maps wire sort keys to ES sort clauses. Keys not present fall
	// back to DefaultSort rather than erroring.
	Sorts map[string][]interface{}

	// DefaultSort must be a key of Sorts.
	DefaultSort string
}

type EsStore[T storage.Record[T]] struct {
	client  *elasticsearch.Client
	mapping Mapping[T]
	getUTC  func() time.Time // for mocking
}

// For testing
func (e *EsStore[T]) SetUTCGetter(getter func() time.Time) {
	e.getUTC = getter
}

func NewStore[T storage.Record[T]](client *elasticsearch.Client, mapping Mapping[T]) *EsStore[T] {
	return &EsStore[T]{client: client, mapping: mapping, getUTC: func() time.Time {
		return time.Now().UTC()
	}}
}

func (e *EsStore[T]) Insert(ctx context.Context, record T) (T, error) {
	var zero T
	now := e.getUTC()
	id := uuid.New()
	toPersist := record.WithID(id).WithMeta(metadata.Metadata{
		CreatedAt:  metadata.CreatedAt(now),
		ModifiedAt: metadata.ModifiedAt(now),
	})

	toPersistBytes, err := json.Marshal(toPersist)
	if err != nil {
		return zero, common.JsonSerdesErr{Underlying: []error{err}}
	}

	createReq := esapi.CreateRequest{
		DocumentID: id.String(),
		Index:      string(e.mapping.Index),
		Body:       bytes.NewReader(toPersistBytes),
		Refresh:    "true",
	}
	rawResp, err := createReq.Do(ctx, e.client)
	if err != nil {
		return zero, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	statusCode := rawResp.StatusCode
	switch {
	case 200 <= statusCode && statusCode <= 299:
		var response common.EsCreateResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&response); err != nil {
			return zero, common.JsonSerdesErr{Underlying: []error{err}}
		}
		meta := toPersist.RecordMeta()
		meta.Version = response.Version()
		return toPersist.WithMeta(meta), nil
	default:
		return zero, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsStore[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	getReq := esapi.GetRequest{
		Index:      string(e.mapping.Index),
		DocumentID: id.String(),
	}
	rawResp, err := getReq.Do(ctx, e.client)
	if err != nil {
		return zero, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var hit esHit[T]
		if err := json.NewDecoder(rawResp.Body).Decode(&hit); err != nil {
			return zero, common.JsonSerdesErr{Underlying: []error{err}}
		}
		return hit.toDomainRecord()
	case 404:
		return zero, storage.NotFound{ID: id}
	default:
		return zero, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsStore[T]) List(ctx context.Context, query paging.Query, parent *uuid.UUID) (*paging.Result[T], error) {
	query = query.Normalized()
	searchBody := e.buildSearchBody(query, parent)
	searchBodyBytes, err := json.Marshal(searchBody)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}

	searchReq := esapi.SearchRequest{
		Index: []string{string(e.mapping.Index)},
		Body:  bytes.NewReader(searchBodyBytes),
	}
	rawResp, err := searchReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var response esSearchResponse[T]
		if err := json.NewDecoder(rawResp.Body).Decode(&response); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		items := make([]T, 0, len(response.Hits.Hits))
		for _, hit := range response.Hits.Hits {
			item, err := hit.toDomainRecord()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &paging.Result[T]{
			Items:    items,
			Page:     query.Page,
			PageSize: query.PageSize,
			Total:    int(response.Hits.Total.Value),
		}, nil
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsStore[T]) Swap(ctx context.Context, id uuid.UUID, expected metadata.Version, record T) (T, error) {
	var zero T
	seqNum, primaryTerm, ok := common.SeqAndPrimaryTerm(expected)
	if !ok {
		// Bytes from some other store implementation can never match
		return zero, storage.VersionConflict{ID: id}
	}

	meta := record.RecordMeta()
	meta.ModifiedAt = metadata.ModifiedAt(e.getUTC())
	toPersist := record.WithID(id).WithMeta(meta)
	toPersistBytes, err := json.Marshal(toPersist)
	if err != nil {
		return zero, common.JsonSerdesErr{Underlying: []error{err}}
	}

	// Purposely using the Index API (rather than the update API) so as to
	// not get bit by old stale data due to partial updates. We send optimistic
	// locking data to ensure we are _updating_
	updateReq := esapi.IndexRequest{
		Index:         string(e.mapping.Index),
		DocumentID:    id.String(),
		Body:          bytes.NewReader(toPersistBytes),
		IfSeqNo:       esapi.IntPtr(int(seqNum)),
		IfPrimaryTerm: esapi.IntPtr(int(primaryTerm)),
		Refresh:       "true",
	}
	rawResp, err := updateReq.Do(ctx, e.client)
	if err != nil {
		return zero, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	respStatus := rawResp.StatusCode
	switch {
	case 200 <= respStatus && respStatus <= 299:
		var response common.EsUpdateResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&response); err != nil {
			return zero, common.JsonSerdesErr{Underlying: []error{err}}
		}
		meta.Version = response.Version()
		return toPersist.WithMeta(meta), nil
	case respStatus == 409:
		return zero, storage.VersionConflict{ID: id}
	case respStatus == 404:
		return zero, storage.NotFound{ID: id}
	default:
		return zero, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	deleteReq := esapi.DeleteRequest{
		Index:      string(e.mapping.Index),
		DocumentID: id.String(),
		Refresh:    "true",
	}
	rawResp, err := deleteReq.Do(ctx, e.client)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		return nil
	case 404:
		return storage.NotFound{ID: id}
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsStore[T]) buildSearchBody(query paging.Query, parent *uuid.UUID) jsonObjMap {
	var filters []jsonObjMap
	if parent != nil && e.mapping.ParentField != "" {
		filters = append(filters, jsonObjMap{
			"term": jsonObjMap{
				e.mapping.ParentField: parent.String(),
			},
		})
	}
	if query.Search != "" && len(e.mapping.SearchFields) != 0 {
		wildcards := make([]jsonObjMap, 0, len(e.mapping.SearchFields))
		for _, field := range e.mapping.SearchFields {
			wildcards = append(wildcards, jsonObjMap{
				"wildcard": jsonObjMap{
					field: jsonObjMap{
						"value":            "*" + query.Search + "*",
						"case_insensitive": true,
					},
				},
			})
		}
		filters = append(filters, jsonObjMap{
			"bool": jsonObjMap{
				"should":               wildcards,
				"minimum_should_match": 1,
			},
		})
	}

	var esQuery jsonObjMap
	if len(filters) == 0 {
		esQuery = jsonObjMap{"match_all": jsonObjMap{}}
	} else {
		esQuery = jsonObjMap{"bool": jsonObjMap{"filter": filters}}
	}

	sorts, ok := e.mapping.Sorts[query.Sort]
	if !ok {
		sorts = e.mapping.Sorts[e.mapping.DefaultSort]
	}
	// Ties broken by the id keyword so pagination over an unchanged index is
	// stable
	sorts = append(append([]interface{}{}, sorts...), jsonObjMap{"id": "asc"})

	return jsonObjMap{
		"query":               esQuery,
		"sort":                sorts,
		"from":                query.Offset(),
		"size":                query.PageSize,
		"seq_no_primary_term": true,
		"track_total_hits":    true,
	}
}

type esHit[T storage.Record[T]] struct {
	ID          string          `json:"_id"`
	SeqNum      uint64          `json:"_seq_no"`
	PrimaryTerm uint64          `json:"_primary_term"`
	Source      json.RawMessage `json:"_source"`
}

// toDomainRecord rebuilds a domain record from a hit: the document carries
// everything but the version, which comes from the hit's concurrency fields.
func (h esHit[T]) toDomainRecord() (T, error) {
	var record T
	if err := json.Unmarshal(h.Source, &record); err != nil {
		return record, storage.InvalidPersistedData{PersistedData: string(h.Source)}
	}
	meta := record.RecordMeta()
	meta.Version = common.VersionBytes(h.SeqNum, h.PrimaryTerm)
	return record.WithMeta(meta), nil
}

type esSearchResponse[T storage.Record[T]] struct {
	Hits struct {
		Total struct {
			Value uint `json:"value"`
		} `json:"total"`
		Hits []esHit[T] `json:"hits"`
	} `json:"hits"`
}
