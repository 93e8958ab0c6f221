package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"

	"github.com/tasklink/tasklink/internal/infra/elasticsearch/common"
	"github.com/tasklink/tasklink/internal/infra/elasticsearch/store"
)

type Json = map[string]interface{}
type Mappings = map[string]interface{}

// Index defines an index to be created when setup is run
type Index struct {
	name     common.IndexName // ignored when serialising because the name doesn't start with a capital
	Mappings Mappings         `json:"mappings,omitempty"`
}

func (i *Index) Name() common.IndexName {
	return i.name
}

func NewIndex(name common.IndexName, mappings Mappings) Index {
	return Index{name: name, Mappings: mappings}
}

// IndicesSetup holds a list of Indices and has the ability to actually
// create them on the server
type IndicesSetup struct {
	esClient *elasticsearch.Client
	Indices  []Index
}

// Returns the default Indices setter upper
func DefaultIndicesSetup(esClient *elasticsearch.Client) IndicesSetup {
	return IndicesSetup{
		esClient: esClient,
		Indices: []Index{
			ProjectsIndex,
			TasksIndex,
			CommentsIndex,
			ActivityIndex,
		},
	}
}

// Runs the setup. Indices that already exist are left untouched.
func (s *IndicesSetup) Run(ctx context.Context) error {
	var errors []error
	for _, idx := range s.Indices {
		if err := s.createIndex(ctx, &idx); err != nil {
			errors = append(errors, err)
		}
	}
	if len(errors) != 0 {
		return CreateIndexErrors{Errors: errors}
	} else {
		return nil
	}
}

// Checks if the current IndicesSetup was run.
//
// This is currently a shallow check for index presence only.
func (s *IndicesSetup) Check(ctx context.Context) error {
	indexNames := make([]string, 0, len(s.Indices))
	for _, idx := range s.Indices {
		indexNames = append(indexNames, string(idx.Name()))
	}

	indicesExistsReq := esapi.IndicesExistsRequest{Index: indexNames}

	rawResp, err := indicesExistsReq.Do(ctx, s.esClient)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	switch rawResp.StatusCode {
	case 200:
		return nil
	case 404:
		return IndicesNotInstalled{NotInstalled: indexNames}
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

func (s *IndicesSetup) createIndex(ctx context.Context, idx *Index) error {
	existsReq := esapi.IndicesExistsRequest{Index: []string{string(idx.name)}}
	existsResp, err := existsReq.Do(ctx, s.esClient)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer existsResp.Body.Close()
	if existsResp.StatusCode == 200 {
		log.Info().Str("index_name", string(idx.name)).Msg("Index already exists, skipping")
		return nil
	}

	asBytes, err := json.Marshal(idx)
	if err != nil {
		return common.JsonSerdesErr{Underlying: []error{err}}
	}
	log.Info().RawJSON("body", asBytes).Str("index_name", string(idx.name)).Msg("Creating index")
	createReq := esapi.IndicesCreateRequest{
		Index: string(idx.name),
		Body:  bytes.NewReader(asBytes),
	}
	rawResp, err := createReq.Do(ctx, s.esClient)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	switch rawResp.StatusCode {
	case 200:
		return nil
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

type CreateIndexErrors struct {
	Errors []error
}

func (e CreateIndexErrors) Error() string {
	return fmt.Sprintf("Errors encountered [%v]", e.Errors)
}

type IndicesNotInstalled struct {
	NotInstalled []string
}

func (i IndicesNotInstalled) Error() string {
	return fmt.Sprintf("One or more app indices were not installed. Please run the setup command to install them [%v]", i.NotInstalled)
}

// Indices

var metadataMapping = Json{
	"properties": Json{
		"created_at": Json{
			"type": "date",
		},
		"modified_at": Json{
			"type": "date",
		},
	},
}

var searchableText = Json{
	"type": "text",
	"fields": Json{
		"keyword": Json{
			"type":         "keyword",
			"ignore_above": 256,
		},
	},
}

var ProjectsIndex = NewIndex(
	store.ProjectsIndex,
	Mappings{
		"_source": Json{
			"enabled": true,
		},
		"dynamic": true,
		"properties": Json{
			"id": Json{
				"type": "keyword",
			},
			"name":        searchableText,
			"description": searchableText,
			"owner_id": Json{
				"type": "keyword",
			},
			"metadata": metadataMapping,
		},
	},
)

var TasksIndex = NewIndex(
	store.TasksIndex,
	Mappings{
		"_source": Json{
			"enabled": true,
		},
		"dynamic": true,
		"properties": Json{
			"id": Json{
				"type": "keyword",
			},
			"project_id": Json{
				"type": "keyword",
			},
			"title":       searchableText,
			"description": searchableText,
			"assignee_id": Json{
				"type": "keyword",
			},
			"status": Json{
				"type": "keyword",
			},
			"priority": Json{
				"type": "keyword",
			},
			"due_date": Json{
				"type": "date",
			},
			"metadata": metadataMapping,
		},
	},
)

var CommentsIndex = NewIndex(
	store.CommentsIndex,
	Mappings{
		"_source": Json{
			"enabled": true,
		},
		"dynamic": true,
		"properties": Json{
			"id": Json{
				"type": "keyword",
			},
			"task_id": Json{
				"type": "keyword",
			},
			"author_id": Json{
				"type": "keyword",
			},
			"body":     searchableText,
			"metadata": metadataMapping,
		},
	},
)

var ActivityIndex = NewIndex(
	store.ActivityIndex,
	Mappings{
		"_source": Json{
			"enabled": true,
		},
		"dynamic": true,
		"properties": Json{
			"id": Json{
				"type": "keyword",
			},
			"entity_type": Json{
				"type": "keyword",
			},
			"entity_id": Json{
				"type": "keyword",
			},
			"action": Json{
				"type": "keyword",
			},
			"actor_id": Json{
				"type": "keyword",
			},
			"snapshot": Json{
				"type":    "object",
				"enabled": false, // free-form JSON snapshots don't get indexed to prevent explosions
			},
			"metadata": metadataMapping,
		},
	},
)
