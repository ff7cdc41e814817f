package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/moveon-app/moveon-server/internal/mocks"
	"github.com/moveon-app/moveon-server/internal/model"
	"github.com/moveon-app/moveon-server/internal/testutil"
)

func TestAppSession_Require(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		header      string
		verifyErr   error
		wantStatus  int
		wantHandler bool
	}{
		{
			name:        "missing header",
			header:      "",
			wantStatus:  http.StatusForbidden,
			wantHandler: false,
		},
		{
			name:        "invalid token",
			header:      "bad-token",
			verifyErr:   model.ErrInvalidAppSession,
			wantStatus:  http.StatusForbidden,
			wantHandler: false,
		},
		{
			name:        "valid token",
			header:      "good-token",
			verifyErr:   nil,
			wantStatus:  http.StatusOK,
			wantHandler: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := &mocks.TokenManager{}
			if tt.header != "" {
				tokens.On("VerifyAppSessionToken", tt.header).Return(tt.verifyErr)
			}

			handlerCalled := false

			r := gin.New()
			r.Use(NewAppSession(tokens, testutil.MakeNoopLogger()).Require())
			r.GET("/", func(c *gin.Context) {
				handlerCalled = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(AppSessionHeader, tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantHandler, handlerCalled)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), model.ErrInvalidAppSession.Error())
			}
			tokens.AssertExpectations(t)
		})
	}
}
