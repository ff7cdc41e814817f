package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/moveon-app/moveon-server/internal/api/http/context"
	"github.com/moveon-app/moveon-server/internal/model"
	"github.com/moveon-app/moveon-server/internal/testutil"
)

// asUser injects the username into the request context the way the
// authentication middleware does.
func asUser(cm *httpcontext.Manager, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(cm.SetUsernameToContext(c.Request.Context(), username))
		c.Next()
	}
}

func TestUser_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		expectCall bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "short username",
			body:       `{"username":"abc","email":"a@example.com","password":"Secret12"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "username must be at least 5 characters",
		},
		{
			name:       "weak password",
			body:       `{"username":"runner42","email":"a@example.com","password":"weakpass"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "password must be at least 8 characters",
		},
		{
			name:       "malformed birth date",
			body:       `{"username":"runner42","email":"a@example.com","password":"Secret12","birth_date":"31-12-1990"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "birth_date must use the YYYY-MM-DD format",
		},
		{
			name: "future birth date",
			body: `{"username":"runner42","email":"a@example.com","password":"Secret12","birth_date":"` +
				time.Now().AddDate(1, 0, 0).Format("2006-01-02") + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "birth_date cannot be in the future",
		},
		{
			name: "under minimum age",
			body: `{"username":"runner42","email":"a@example.com","password":"Secret12","birth_date":"` +
				time.Now().AddDate(-10, 0, 0).Format("2006-01-02") + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "you must be at least 13 years old",
		},
		{
			name:       "real name with digits",
			body:       `{"username":"runner42","real_name":"Runner 42","email":"a@example.com","password":"Secret12"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "real_name must contain only letters, spaces, hyphens and apostrophes",
		},
		{
			name:       "duplicate username",
			body:       `{"username":"runner42","email":"a@example.com","password":"Secret12"}`,
			svcErr:     model.ErrUsernameTaken,
			expectCall: true,
			wantStatus: http.StatusBadRequest,
			wantBody:   model.ErrUsernameTaken.Error(),
		},
		{
			name:       "successful registration",
			body:       `{"username":"runner42","email":"a@example.com","password":"Secret12","birth_date":"1990-12-31"}`,
			expectCall: true,
			wantStatus: http.StatusCreated,
			wantBody:   "runner42",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &mockUserService{}
			if tt.expectCall {
				userSvc.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterParams")).
					Return(model.User{Username: "runner42"}, tt.svcErr)
			}

			h := NewUser(userSvc, httpcontext.NewManager(), testutil.MakeNoopLogger())

			r := gin.New()
			r.POST("/register", h.Register)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			userSvc.AssertExpectations(t)
		})
	}
}

func TestUser_Profile(t *testing.T) {
	t.Parallel()

	birthDate := time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		user     model.User
		svcErr   error
		wantCode int
		wantBody []string
	}{
		{
			name: "local photo gets images base",
			user: model.User{
				Username:  "runner42",
				Email:     "a@example.com",
				BirthDate: &birthDate,
				Photo:     "runner42_1700000000.jpg",
				Visible:   true,
			},
			wantCode: http.StatusOK,
			wantBody: []string{
				"http://example.com/images/runner42_1700000000.jpg",
				"1990-12-31",
			},
		},
		{
			name: "absolute photo ref passes through",
			user: model.User{
				Username: "runner42",
				Email:    "a@example.com",
				Photo:    "https://minio.local/photos/runner42.jpg",
			},
			wantCode: http.StatusOK,
			wantBody: []string{"https://minio.local/photos/runner42.jpg"},
		},
		{
			name:     "unknown user",
			svcErr:   model.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: []string{"user not found"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &mockUserService{}
			userSvc.On("Get", mock.Anything, "runner42").Return(tt.user, tt.svcErr)

			cm := httpcontext.NewManager()
			h := NewUser(userSvc, cm, testutil.MakeNoopLogger())

			r := gin.New()
			r.GET("/profile", asUser(cm, "runner42"), h.Profile)

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, w.Body.String(), want)
			}
			userSvc.AssertExpectations(t)
		})
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		expectCall bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid email",
			body:       `{"email":"nope"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "email must be a valid email address",
		},
		{
			name:       "height below range",
			body:       `{"height":30}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "height must be at least 50",
		},
		{
			name:       "weight above range",
			body:       `{"weight":400}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "weight must be at most 300",
		},
		{
			name:       "email already taken",
			body:       `{"email":"taken@example.com"}`,
			svcErr:     model.ErrEmailTaken,
			expectCall: true,
			wantStatus: http.StatusBadRequest,
			wantBody:   model.ErrEmailTaken.Error(),
		},
		{
			name:       "successful update",
			body:       `{"real_name":"New Name","height":180}`,
			expectCall: true,
			wantStatus: http.StatusOK,
			wantBody:   "runner42",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &mockUserService{}
			if tt.expectCall {
				userSvc.On("Update", mock.Anything, "runner42", mock.AnythingOfType("service.UpdateParams")).
					Return(model.User{Username: "runner42", Email: "a@example.com"}, tt.svcErr)
			}

			cm := httpcontext.NewManager()
			h := NewUser(userSvc, cm, testutil.MakeNoopLogger())

			r := gin.New()
			r.PATCH("/profile", asUser(cm, "runner42"), h.UpdateProfile)

			req := httptest.NewRequest(http.MethodPatch, "/profile", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			userSvc.AssertExpectations(t)
		})
	}
}

// photoForm builds a multipart body with one photo part of the given name,
// content type and size.
func photoForm(t *testing.T, filename, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUser_UploadPhoto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int
		expectCall  bool
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "disallowed extension",
			filename:    "avatar.gif",
			contentType: "image/gif",
			size:        100,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "photo must be a jpeg or png image",
		},
		{
			name:        "mismatched content type",
			filename:    "avatar.png",
			contentType: "application/octet-stream",
			size:        100,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "photo must be a jpeg or png image",
		},
		{
			name:        "oversized photo",
			filename:    "avatar.jpg",
			contentType: "image/jpeg",
			size:        maxPhotoSize + 1,
			wantStatus:  http.StatusBadRequest,
			wantBody:    "photo must be at most 2 MiB",
		},
		{
			name:        "successful upload",
			filename:    "avatar.jpg",
			contentType: "image/jpeg",
			size:        100,
			expectCall:  true,
			wantStatus:  http.StatusOK,
			wantBody:    "http://example.com/images/runner42_1700000000.jpg",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &mockUserService{}
			if tt.expectCall {
				userSvc.On("UpdatePhoto", mock.Anything, "runner42", ".jpg", "image/jpeg", mock.Anything, int64(tt.size)).
					Return("runner42_1700000000.jpg", nil)
			}

			cm := httpcontext.NewManager()
			h := NewUser(userSvc, cm, testutil.MakeNoopLogger())

			r := gin.New()
			r.POST("/profile/photo", asUser(cm, "runner42"), h.UploadPhoto)

			body, formContentType := photoForm(t, tt.filename, tt.contentType, tt.size)
			req := httptest.NewRequest(http.MethodPost, "/profile/photo", body)
			req.Header.Set("Content-Type", formContentType)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			userSvc.AssertExpectations(t)
		})
	}

	t.Run("missing photo part", func(t *testing.T) {
		t.Parallel()

		cm := httpcontext.NewManager()
		h := NewUser(&mockUserService{}, cm, testutil.MakeNoopLogger())

		r := gin.New()
		r.POST("/profile/photo", asUser(cm, "runner42"), h.UploadPhoto)

		req := httptest.NewRequest(http.MethodPost, "/profile/photo", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "photo file is required")
	})
}

func TestUser_DeleteProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "successful deletion",
			wantStatus: http.StatusOK,
			wantBody:   "account deleted",
		},
		{
			name:       "unknown user",
			svcErr:     model.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "user not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &mockUserService{}
			userSvc.On("Delete", mock.Anything, "runner42").Return(tt.svcErr)

			cm := httpcontext.NewManager()
			h := NewUser(userSvc, cm, testutil.MakeNoopLogger())

			r := gin.New()
			r.DELETE("/profile", asUser(cm, "runner42"), h.DeleteProfile)

			req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			userSvc.AssertExpectations(t)
		})
	}
}
