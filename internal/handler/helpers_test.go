package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradetrack-api/internal/middleware"
	"github.com/noah-isme/gradetrack-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Error      *envelopeError     `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

// newTestRouter returns a router that authenticates every request as userID, or not at all when empty.
func newTestRouter(userID string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID})
		}
		c.Next()
	})
	return r
}

func perform(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		payload, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}
