package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "researchops/internal/errors"
	"researchops/internal/model"
	"researchops/internal/repository"
)

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	args := m.Called(ctx, email, username, password)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]repository.UserSummary, error) {
	args := m.Called(ctx)
	var users []repository.UserSummary
	if args.Get(0) != nil {
		users = args.Get(0).([]repository.UserSummary)
	}
	return users, args.Error(1)
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(*MockUserService)
		expectedCode int
		check        func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful registration",
			body: `{"email":"new@example.com","username":"new_user","password":"password101"}`,
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "new@example.com", "new_user", "password101").
					Return(&model.User{ID: 3, Email: "new@example.com", Username: "new_user"}, nil)
			},
			expectedCode: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"email":"new@example.com","username":"new_user"}`, rec.Body.String())
			},
		},
		{
			name:         "empty body",
			body:         "",
			setupMock:    func(m *MockUserService) {},
			expectedCode: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"Invalid input"}`, rec.Body.String())
			},
		},
		{
			name:         "invalid email",
			body:         `{"email":"not-an-email","username":"new_user","password":"password101"}`,
			setupMock:    func(m *MockUserService) {},
			expectedCode: http.StatusUnprocessableEntity,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Error map[string][]string `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, []string{"Not a valid email address."}, resp.Error["email"])
			},
		},
		{
			name:         "missing fields collect per-field messages",
			body:         `{"email":"new@example.com"}`,
			setupMock:    func(m *MockUserService) {},
			expectedCode: http.StatusUnprocessableEntity,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Error map[string][]string `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, []string{"Missing data for required field."}, resp.Error["username"])
				assert.Equal(t, []string{"Missing data for required field."}, resp.Error["password"])
			},
		},
		{
			name: "duplicate email",
			body: `{"email":"taken@example.com","username":"new_user","password":"password101"}`,
			setupMock: func(m *MockUserService) {
				fields := apperrors.FieldErrors{}
				fields.Add("email", "taken@example.com already exists")
				m.On("Register", mock.Anything, "taken@example.com", "new_user", "password101").
					Return(nil, fields)
			},
			expectedCode: http.StatusUnprocessableEntity,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":{"email":["taken@example.com already exists"]}}`, rec.Body.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			tt.setupMock(mockSvc)
			h := NewUserHandler(mockSvc)

			e := newTestEcho()
			req := jsonRequest(http.MethodPost, "/user", tt.body)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.NoError(t, h.Register(c))
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("List", mock.Anything).Return([]repository.UserSummary{
		{Username: "demo_user", CreatedOn: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ResearchesPosted: 2},
		{Username: "test_user", CreatedOn: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), ResearchesPosted: 0},
	}, nil)
	h := NewUserHandler(mockSvc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/user/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []repository.UserSummary `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "demo_user", resp.Data[0].Username)
	assert.Equal(t, int64(2), resp.Data[0].ResearchesPosted)

	mockSvc.AssertExpectations(t)
}
