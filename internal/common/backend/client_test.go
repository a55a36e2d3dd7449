// internal/common/backend/client_test.go
package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-dashboard/internal/common/config"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.BackendConfig{
		BaseURL:       server.URL,
		Timeout:       2000,
		UploadTimeout: 5000,
	}, logger.NewNoOpLogger())
}

// ==========================
// GetJSON Tests
// ==========================

func TestClient_GetJSON(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/things", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"value": 42}`))
	})

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, client.GetJSON(context.Background(), "/api/things", "tok-1", &out))
	assert.Equal(t, 42, out.Value)
}

func TestClient_GetJSON_NoTokenNoHeader(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	})

	var out map[string]interface{}
	require.NoError(t, client.GetJSON(context.Background(), "/api/things", "", &out))
}

func TestClient_GetJSON_Unauthorized(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token expired"}`))
	})

	err := client.GetJSON(context.Background(), "/api/things", "stale", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatus(err))
}

func TestClient_GetJSON_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			name:     "json envelope",
			status:   http.StatusBadRequest,
			body:     `{"error": "bad input"}`,
			expected: "bad input",
		},
		{
			name:     "plain text body",
			status:   http.StatusBadRequest,
			body:     "something broke",
			expected: "something broke",
		},
		{
			name:     "empty body falls back to status message",
			status:   http.StatusBadRequest,
			body:     "",
			expected: "Backend returned status 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.GetJSON(context.Background(), "/api/things", "tok-1", nil)
			require.Error(t, err)
			assert.Equal(t, tt.expected, apperrors.UserMessage(err))
		})
	}
}

func TestClient_GetJSON_NotFoundCode(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such loan"}`))
	})

	err := client.GetJSON(context.Background(), "/api/things/x", "tok-1", nil)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, stdErr.Code)
}

func TestClient_GetJSON_Unreachable(t *testing.T) {
	client := NewClient(config.BackendConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Timeout: 500,
	}, logger.NewNoOpLogger())

	err := client.GetJSON(context.Background(), "/api/things", "tok-1", nil)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeBackendUnreachable, stdErr.Code)
	assert.Equal(t, http.StatusBadGateway, stdErr.Status)
}

// ==========================
// SubmitForm Tests
// ==========================

func TestClient_SubmitForm_FieldsAndFiles(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "value-1", r.FormValue("field1"))
		assert.Equal(t, "value-2", r.FormValue("field2"))

		files := r.MultipartForm.File["upload"]
		require.Len(t, files, 1)
		assert.Equal(t, "doc.pdf", files[0].Filename)

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 16)
		n, _ := f.Read(buf)
		assert.Equal(t, "file-bytes", string(buf[:n]))

		w.Write([]byte(`{"ok": true}`))
	})

	form := NewForm().
		Set("field1", "value-1").
		Set("field2", "value-2").
		AddFile("upload", "doc.pdf", []byte("file-bytes"))

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.SubmitForm(context.Background(), http.MethodPost, "/api/submit", "tok-1", form, &out))
	assert.True(t, out.OK)
}

func TestClient_SubmitForm_PutMethod(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{}`))
	})

	form := NewForm().Set("name", "Jane")
	require.NoError(t, client.SubmitForm(context.Background(), http.MethodPut, "/api/user", "tok-1", form, nil))
}

func TestClient_SubmitForm_NilOutSkipsDecoding(t *testing.T) {
	client := createTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	form := NewForm().Set("a", "b")
	assert.NoError(t, client.SubmitForm(context.Background(), http.MethodPost, "/api/submit", "", form, nil))
}

// ==========================
// Base URL Tests
// ==========================

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(config.BackendConfig{
		BaseURL: "http://127.0.0.1:5000/",
		Timeout: 1000,
	}, logger.NewNoOpLogger())
	assert.Equal(t, "http://127.0.0.1:5000", client.BaseURL())
}
