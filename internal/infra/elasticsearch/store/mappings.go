package store

import (
	"github.com/elastic/go-elasticsearch/v8"

	"github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/comment"
	"github.com/tasklink/tasklink/internal/domain/project"
	"github.com/tasklink/tasklink/internal/domain/storage"
	"github.com/tasklink/tasklink/internal/domain/task"
	"github.com/tasklink/tasklink/internal/infra/elasticsearch/common"
)

const (
	ProjectsIndex common.IndexName = "tasklink_projects"
	TasksIndex    common.IndexName = "tasklink_tasks"
	CommentsIndex common.IndexName = "tasklink_comments"
	ActivityIndex common.IndexName = "tasklink_activity"
)

var (
	createdAtAsc  = []interface{}{jsonObjMap{"metadata.created_at": "asc"}}
	createdAtDesc = []interface{}{jsonObjMap{"metadata.created_at": "desc"}}

	// Priorities rank critical > high > medium > low, which their lexical
	// order does not, hence the script
	priorityDesc = []interface{}{jsonObjMap{
		"_script": jsonObjMap{
			"type":  "number",
			"order": "desc",
			"script": jsonObjMap{
				"source": "params.ranks[doc['priority'].value]",
				"params": jsonObjMap{
					"ranks": jsonObjMap{
						string(task.PriorityLow):      task.PriorityLow.Rank(),
						string(task.PriorityMedium):   task.PriorityMedium.Rank(),
						string(task.PriorityHigh):     task.PriorityHigh.Rank(),
						string(task.PriorityCritical): task.PriorityCritical.Rank(),
					},
				},
			},
		},
	}}
)

// NewProjectStore returns a Project store over the tasklink_projects index
func NewProjectStore(client *elasticsearch.Client) storage.Store[project.Project] {
	return NewStore(client, Mapping[project.Project]{
		Index:        ProjectsIndex,
		SearchFields: []string{"name.keyword"},
		Sorts: map[string][]interface{}{
			project.SortCreatedAt:     createdAtAsc,
			project.SortCreatedAtDesc: createdAtDesc,
			project.SortName:          {jsonObjMap{"name.keyword": "asc"}},
		},
		DefaultSort: project.SortCreatedAt,
	})
}

// NewTaskStore returns a Task store over the tasklink_tasks index
func NewTaskStore(client *elasticsearch.Client) storage.Store[task.Task] {
	return NewStore(client, Mapping[task.Task]{
		Index:        TasksIndex,
		SearchFields: []string{"title.keyword"},
		ParentField:  "project_id",
		Sorts: map[string][]interface{}{
			task.SortCreatedAt:     createdAtAsc,
			task.SortCreatedAtDesc: createdAtDesc,
			task.SortPriority:      priorityDesc,
		},
		DefaultSort: task.SortCreatedAt,
	})
}

// NewCommentStore returns a Comment store over the tasklink_comments index
func NewCommentStore(client *elasticsearch.Client) storage.Store[comment.Comment] {
	return NewStore(client, Mapping[comment.Comment]{
		Index:       CommentsIndex,
		ParentField: "task_id",
		Sorts: map[string][]interface{}{
			"createdAt":             createdAtAsc,
			comment.SortNewestFirst: createdAtDesc,
		},
		DefaultSort: "createdAt",
	})
}

// NewActivityStore returns an activity Entry store over the tasklink_activity
// index
func NewActivityStore(client *elasticsearch.Client) storage.Store[activity.Entry] {
	return NewStore(client, Mapping[activity.Entry]{
		Index:       ActivityIndex,
		ParentField: "entity_id",
		Sorts: map[string][]interface{}{
			"createdAt":              createdAtAsc,
			activity.SortNewestFirst: createdAtDesc,
		},
		DefaultSort: "createdAt",
	})
}
