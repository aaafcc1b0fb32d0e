package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
	"github.com/sbilibin2017/gw-employee-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestSignupHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSignuper(ctrl)
	userID := uuid.New()

	tests := []struct {
		name           string
		inputBody      interface{}
		mockSetup      func()
		expectedCode   int
		expectedBody   string
		expectedFields []string
	}{
		{
			name:      "success",
			inputBody: models.SignupRequest{Username: " alice ", Email: "Alice@Example.com", Password: "secret1"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Signup(gomock.Any(), "alice", "Alice@Example.com", "secret1").
					Return(userID, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"message":"User created successfully.","user_id":"` + userID.String() + `"}`,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"status":false,"message":"Invalid request body"}`,
		},
		{
			name:           "missing fields",
			inputBody:      models.SignupRequest{Email: "not-an-email"},
			mockSetup:      func() {},
			expectedCode:   http.StatusBadRequest,
			expectedFields: []string{"username", "email", "password"},
		},
		{
			name:           "password type mismatch",
			inputBody:      `{"username":"alice","email":"a@b.co","password":123456}`,
			mockSetup:      func() {},
			expectedCode:   http.StatusBadRequest,
			expectedFields: []string{"password"},
		},
		{
			name:      "short password reported by the service",
			inputBody: models.SignupRequest{Username: "alice", Email: "a@b.co", Password: "123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Signup(gomock.Any(), "alice", "a@b.co", "123").
					Return(uuid.Nil, apperr.NewValidationError("password", "must be at least 6 characters"))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"status":false,"errors":[{"field":"password","msg":"must be at least 6 characters"}]}`,
		},
		{
			name:      "user already exists",
			inputBody: models.SignupRequest{Username: "alice", Email: "a@b.co", Password: "secret1"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Signup(gomock.Any(), "alice", "a@b.co", "secret1").
					Return(uuid.Nil, services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"status":false,"message":"User already exists"}`,
		},
		{
			name:      "internal error is not leaked",
			inputBody: models.SignupRequest{Username: "alice", Email: "a@b.co", Password: "secret1"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Signup(gomock.Any(), "alice", "a@b.co", "secret1").
					Return(uuid.Nil, errors.New("pq: connection refused"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"status":false,"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/user/signup", toBody(t, tt.inputBody))
			w := httptest.NewRecorder()

			NewSignupHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedFields != nil {
				var resp models.ValidationErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.False(t, resp.Status)
				var fields []string
				for _, f := range resp.Errors {
					fields = append(fields, f.Field)
					assert.NotEmpty(t, f.Msg)
				}
				assert.ElementsMatch(t, tt.expectedFields, fields)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody string
		expectedAuth string
	}{
		{
			name:      "success by email",
			inputBody: models.LoginRequest{Email: "alice@example.com", Password: "secret1"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "alice@example.com", "", "secret1").
					Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Login successful.","jwt_token":"JWT_TOKEN"}`,
			expectedAuth: "Bearer JWT_TOKEN",
		},
		{
			name:      "success by username",
			inputBody: models.LoginRequest{Username: "alice", Password: "secret1"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "", "alice", "secret1").
					Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Login successful.","jwt_token":"JWT_TOKEN"}`,
			expectedAuth: "Bearer JWT_TOKEN",
		},
		{
			name:         "no identifier",
			inputBody:    models.LoginRequest{Password: "secret1"},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"status":false,"errors":[{"field":"username","msg":"email or username is required"}]}`,
		},
		{
			name:         "missing password",
			inputBody:    models.LoginRequest{Username: "alice"},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"status":false,"errors":[{"field":"password","msg":"is required"}]}`,
		},
		{
			name:      "wrong credentials",
			inputBody: models.LoginRequest{Username: "alice", Password: "wrongpass"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "", "alice", "wrongpass").
					Return("", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"status":false,"message":"Invalid Username and password"}`,
		},
		{
			name:      "credentials error from any layer",
			inputBody: models.LoginRequest{Username: "ghost", Password: "whatever"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "", "ghost", "whatever").
					Return("", apperr.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"status":false,"message":"Invalid Username and password"}`,
		},
		{
			name:      "internal error",
			inputBody: models.LoginRequest{Username: "alice", Password: "secret1"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "", "alice", "secret1").
					Return("", errors.New("issue token: boom"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"status":false,"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/user/login", toBody(t, tt.inputBody))
			w := httptest.NewRecorder()

			NewLoginHandler(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedAuth, w.Header().Get("Authorization"))
		})
	}
}
