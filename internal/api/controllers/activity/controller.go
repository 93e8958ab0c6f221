package activity

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/activity"
	"github.com/tasklink/tasklink/internal/api/models/common"
	domainActivity "github.com/tasklink/tasklink/internal/domain/activity"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic
type Controller interface {

	// ForEntity returns a page of the entity's audit trail, newest first
	ForEntity(ctx context.Context, entityID uuid.UUID, params common.ListParams) (*common.Page[activity.Entry], *common.ApiError)
}

func New(activityService domainActivity.Service) Controller {
	return &impl{activityService: activityService}
}

type impl struct {
	activityService domainActivity.Service
}

func (c *impl) ForEntity(ctx context.Context, entityID uuid.UUID, params common.ListParams) (*common.Page[activity.Entry], *common.ApiError) {
	result, err := c.activityService.ForEntity(ctx, entityID, params.ToDomainQuery())
	if err != nil {
		return nil, handleErr(err)
	} else {
		page := common.PageOf(result, activity.FromDomainEntry)
		return &page, nil
	}
}

func handleErr(err error) *common.ApiError {
	switch v := err.(type) {
	case storage.InvalidPersistedData:
		return invalidPersistedData(v)
	default:
		return unhandledErr(v)
	}
}

func invalidPersistedData(err storage.InvalidPersistedData) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func unhandledErr(e error) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: e.Error(),
		},
	}
}
