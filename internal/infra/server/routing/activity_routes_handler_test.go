package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tasklink/tasklink/internal/api/models/activity"
	"github.com/tasklink/tasklink/internal/api/models/common"
)

func mockApiEntry() activity.Entry {
	return activity.Entry{
		ID:         uuid.MustParse("55555555-5555-5555-5555-555555555555"),
		EntityType: "project",
		EntityID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Action:     "created",
		ActorID:    mockUserId,
	}
}

func setupActivityRouter() (*gin.Engine, *mockActivityController) {
	engine := gin.New()
	mockController := mockActivityController{}
	handler := ActivityRoutesHandler{Controller: &mockController}
	handler.RegisterRoutes(engine)
	return engine, &mockController
}

func TestActivityForEntity_Ok(t *testing.T) {
	router, mockController := setupActivityRouter()
	resp := performRequest(router, http.MethodGet, "/activity/"+mockApiEntry().EntityID.String(), nil, nil)
	assert.EqualValues(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.forEntityCalled)
	var respPage common.Page[activity.Entry]
	if err := json.Unmarshal(resp.Body.Bytes(), &respPage); err != nil {
		t.Error(err)
	} else {
		assert.Len(t, respPage.Items, 1)
		assert.EqualValues(t, "created", respPage.Items[0].Action)
	}
}

func TestActivityForEntity_BadEntityId(t *testing.T) {
	router, mockController := setupActivityRouter()
	resp := performRequest(router, http.MethodGet, "/activity/not-a-uuid", nil, nil)
	assert.EqualValues(t, http.StatusBadRequest, resp.Code)
	assert.EqualValues(t, 0, mockController.forEntityCalled)
}

func TestActivityForEntity_Err(t *testing.T) {
	router, mockController := setupActivityRouter()
	apiErr := common.ApiError{StatusCode: http.StatusInternalServerError}
	mockController.forEntityOverride = func(ctx context.Context, entityID uuid.UUID, params common.ListParams) (*common.Page[activity.Entry], *common.ApiError) {
		return nil, &apiErr
	}
	resp := performRequest(router, http.MethodGet, "/activity/"+uuid.New().String(), nil, nil)
	assert.EqualValues(t, http.StatusInternalServerError, resp.Code)
	assert.EqualValues(t, 1, mockController.forEntityCalled)
}

type mockActivityController struct {
	forEntityCalled   uint
	forEntityOverride func(ctx context.Context, entityID uuid.UUID, params common.ListParams) (*common.Page[activity.Entry], *common.ApiError)
}

func (m *mockActivityController) ForEntity(ctx context.Context, entityID uuid.UUID, params common.ListParams) (*common.Page[activity.Entry], *common.ApiError) {
	m.forEntityCalled++
	if m.forEntityOverride != nil {
		return m.forEntityOverride(ctx, entityID, params)
	}
	return &common.Page[activity.Entry]{
		Items:    []activity.Entry{mockApiEntry()},
		Page:     1,
		PageSize: 20,
		Total:    1,
	}, nil
}
