package comment

import (
	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/common"
	domainComment "github.com/tasklink/tasklink/internal/domain/comment"
)

// NewComment is the API model for creating a Comment
type NewComment struct {
	Body string `json:"body" binding:"required" example:"LGTM"`
}

func (c *NewComment) ToDomainNewComment() domainComment.NewComment {
	return domainComment.NewComment{
		Body: domainComment.Body(c.Body),
	}
}

// Comment is the API model of a persisted Comment
type Comment struct {
	ID       uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	TaskID   uuid.UUID       `json:"task_id" swaggertype:"string" format:"uuid"`
	AuthorID uuid.UUID       `json:"author_id" swaggertype:"string" format:"uuid"`
	Body     string          `json:"body" example:"LGTM"`
	Metadata common.Metadata `json:"metadata"`
}

func FromDomainComment(c *domainComment.Comment) Comment {
	return Comment{
		ID:       c.ID,
		TaskID:   c.TaskID,
		AuthorID: c.AuthorID,
		Body:     string(c.Body),
		Metadata: common.FromDomainMetadata(c.Metadata),
	}
}
