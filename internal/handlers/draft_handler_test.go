package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go_course_keep/internal/handlers"
	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/service/mocks"
)

func newDraftRouter(m *mocks.DraftService) *chi.Mux {
	draftHandler := handlers.NewDraftHandler(m, nil)
	router := chi.NewRouter()
	router.Use(middleware.DeviceContextMiddleware)
	router.Use(middleware.DevUserContextMiddleware)
	router.Route("/api/v1/drafts/course", func(r chi.Router) {
		r.Put("/", draftHandler.PutDraft)
		r.Get("/", draftHandler.GetDraft)
		r.Get("/presence", draftHandler.GetDraftPresence)
		r.Delete("/", draftHandler.DeleteDraft)
	})
	return router
}

func TestDraftHandler_PutDraft(t *testing.T) {
	userID := uuid.New()
	deviceID := "device-abc"

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func(m *mocks.DraftService)
		expectedStatus int
	}{
		{
			name:   "Success - Draft saved",
			userID: &userID,
			body:   model.DraftSnapshot{StepIndex: 1, Title: "Go 実践入門"},
			setupMock: func(m *mocks.DraftService) {
				m.On("Save", mock.Anything, userID, deviceID, mock.MatchedBy(func(s *model.DraftSnapshot) bool {
					return s.Title == "Go 実践入門" && s.StepIndex == 1
				})).Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "Success - Empty snapshot clears draft",
			userID: &userID,
			body:   model.DraftSnapshot{},
			setupMock: func(m *mocks.DraftService) {
				m.On("Save", mock.Anything, userID, deviceID, mock.AnythingOfType("*model.DraftSnapshot")).
					Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Fail - Malformed JSON body",
			userID:         &userID,
			body:           `{"title": `,
			setupMock:      func(m *mocks.DraftService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Fail - Service error",
			userID: &userID,
			body:   model.DraftSnapshot{Title: "x"},
			setupMock: func(m *mocks.DraftService) {
				m.On("Save", mock.Anything, userID, deviceID, mock.AnythingOfType("*model.DraftSnapshot")).
					Return(model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの保存に失敗しました。", "", gorm.ErrInvalidDB)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Fail - Missing user header",
			userID:         nil,
			body:           model.DraftSnapshot{Title: "x"},
			setupMock:      func(m *mocks.DraftService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDraftService := new(mocks.DraftService)
			tc.setupMock(mockDraftService)
			router := newDraftRouter(mockDraftService)

			req := createRequest(t, "PUT", "/api/v1/drafts/course", tc.body, tc.userID, deviceID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			mockDraftService.AssertExpectations(t)
		})
	}
}

func TestDraftHandler_GetDraft(t *testing.T) {
	userID := uuid.New()
	deviceID := "device-abc"

	t.Run("Success - Draft restored", func(t *testing.T) {
		mockDraftService := new(mocks.DraftService)
		mockDraftService.On("Restore", mock.Anything, userID, deviceID).
			Return(&model.DraftSnapshot{StepIndex: 2, Title: "Go 実践入門", Category: "programming"}, nil).Once()
		router := newDraftRouter(mockDraftService)

		req := createRequest(t, "GET", "/api/v1/drafts/course", nil, &userID, deviceID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var snapshot model.DraftSnapshot
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
		assert.Equal(t, "Go 実践入門", snapshot.Title)
		assert.Equal(t, 2, snapshot.StepIndex)
		mockDraftService.AssertExpectations(t)
	})

	t.Run("Fail - No draft anywhere", func(t *testing.T) {
		mockDraftService := new(mocks.DraftService)
		mockDraftService.On("Restore", mock.Anything, userID, deviceID).
			Return(nil, model.NewAppError("NOT_FOUND", "復元できる下書きがありません。", "", model.ErrNotFound)).Once()
		router := newDraftRouter(mockDraftService)

		req := createRequest(t, "GET", "/api/v1/drafts/course", nil, &userID, deviceID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockDraftService.AssertExpectations(t)
	})

	t.Run("Success - Device header optional", func(t *testing.T) {
		mockDraftService := new(mocks.DraftService)
		mockDraftService.On("Restore", mock.Anything, userID, "").
			Return(&model.DraftSnapshot{Title: "remote only"}, nil).Once()
		router := newDraftRouter(mockDraftService)

		req := createRequest(t, "GET", "/api/v1/drafts/course", nil, &userID, "")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockDraftService.AssertExpectations(t)
	})
}

func TestDraftHandler_GetDraftPresence(t *testing.T) {
	userID := uuid.New()
	deviceID := "device-abc"

	tests := []struct {
		name     string
		presence *model.DraftPresenceResponse
	}{
		{name: "Local and server drafts present", presence: &model.DraftPresenceResponse{HasLocalDraft: true, HasServerDraft: true}},
		{name: "Server draft only", presence: &model.DraftPresenceResponse{HasServerDraft: true}},
		{name: "No drafts", presence: &model.DraftPresenceResponse{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDraftService := new(mocks.DraftService)
			mockDraftService.On("Presence", mock.Anything, userID, deviceID).
				Return(tc.presence, nil).Once()
			router := newDraftRouter(mockDraftService)

			req := createRequest(t, "GET", "/api/v1/drafts/course/presence", nil, &userID, deviceID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			var resp model.DraftPresenceResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, *tc.presence, resp)
			mockDraftService.AssertExpectations(t)
		})
	}
}

func TestDraftHandler_DeleteDraft(t *testing.T) {
	userID := uuid.New()
	deviceID := "device-abc"

	t.Run("Success - Draft cleared", func(t *testing.T) {
		mockDraftService := new(mocks.DraftService)
		mockDraftService.On("Clear", mock.Anything, userID, deviceID).Return(nil).Once()
		router := newDraftRouter(mockDraftService)

		req := createRequest(t, "DELETE", "/api/v1/drafts/course", nil, &userID, deviceID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockDraftService.AssertExpectations(t)
	})

	t.Run("Fail - Missing user header", func(t *testing.T) {
		mockDraftService := new(mocks.DraftService)
		router := newDraftRouter(mockDraftService)

		req := createRequest(t, "DELETE", "/api/v1/drafts/course", nil, nil, deviceID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockDraftService.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything, mock.Anything)
	})
}
