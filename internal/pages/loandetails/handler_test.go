// internal/pages/loandetails/handler_test.go
package loandetails

import (
	"bytes"
	"encoding/json"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-dashboard/internal/common/backend"
	"mortgage-dashboard/internal/common/config"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestRouter(t *testing.T, api http.HandlerFunc, authed bool) *gin.Engine {
	t.Helper()
	return createConfiguredRouter(t, api, authed, &Config{
		Timeout:               2 * time.Second,
		RecommendationTimeout: 5 * time.Second,
	})
}

func createConfiguredRouter(t *testing.T, api http.HandlerFunc, authed bool, cfg *Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	client := backend.NewClient(config.BackendConfig{
		BaseURL:       server.URL,
		Timeout:       2000,
		UploadTimeout: 5000,
	}, logger.NewNoOpLogger())

	svc := NewService(cfg, client, logger.NewNoOpLogger())
	handler := NewHandler(cfg, svc, apperrors.NewErrorHandler(logger.NewNoOpLogger()), logger.NewTestLogger(t))

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("loan_details.tmpl").Parse(
		`{{define "loan_details.tmpl"}}error={{.Error}} uploadError={{.UploadError}} loan={{.LoanID}} rec={{.Recommendation}}{{end}}`)))

	inject := func(c *gin.Context) {
		if authed {
			session.SetContext(c, &session.Record{
				ID:    "sess-1",
				Token: "tok-1",
				User:  models.User{ID: "u-1", Username: "officer1"},
			})
		}
		c.Next()
	}

	r.GET("/loan-details", inject, handler.Show)
	r.POST("/loan-details/:id/recommendation", inject, handler.Recommendation)
	r.POST("/loan-details/:id/documents", inject, handler.Upload)
	return r
}

func createUploadBody(t *testing.T, borrowerID, category, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("borrower_id", borrowerID))
	require.NoError(t, w.WriteField("category", category))
	require.NoError(t, w.WriteField("borrower_name", "Jane Doe"))
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// ==========================
// Show Tests
// ==========================

func TestHandler_Show_MissingLoanIDNeverHitsAPI(t *testing.T) {
	var requests int64
	r := createTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}, true)

	req := httptest.NewRequest(http.MethodGet, "/loan-details", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No loan ID provided")
	assert.Equal(t, int64(0), atomic.LoadInt64(&requests))
}

func TestHandler_Show_WithoutSessionRedirects(t *testing.T) {
	r := createTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, false)

	req := httptest.NewRequest(http.MethodGet, "/loan-details?loan_id=loan-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
}

func TestHandler_Show_IncludesStoredRecommendation(t *testing.T) {
	r := createTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/applications/loan-1":
			w.Write([]byte(`{"id": "loan-1", "borrowers": []}`))
		case "/api/applications/loan-1/recommendation":
			w.Write([]byte(`{"llm_recommendation": "Looks solid."}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}, true)

	req := httptest.NewRequest(http.MethodGet, "/loan-details?loan_id=loan-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rec=Looks solid.")
}

func TestHandler_Show_StoredRecommendationFailureIsNonFatal(t *testing.T) {
	r := createTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/applications/loan-1":
			w.Write([]byte(`{"id": "loan-1", "borrowers": []}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}, true)

	req := httptest.NewRequest(http.MethodGet, "/loan-details?loan_id=loan-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "loan=loan-1")
	assert.Contains(t, w.Body.String(), "rec=")
	assert.NotContains(t, w.Body.String(), "rec=Looks")
}

// ==========================
// Upload Limit Tests
// ==========================

func TestHandler_Upload_OversizeFileRejected(t *testing.T) {
	var requests int64
	r := createConfiguredRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/borrower/read-income" {
			atomic.AddInt64(&requests, 1)
		}
	}, true, &Config{
		Timeout:       2 * time.Second,
		MaxFileSizeMB: 1,
	})

	body, contentType := createUploadBody(t, "b-1", models.CategoryIncome, "paystub.pdf",
		bytes.Repeat([]byte("x"), 1<<20+1))
	req := httptest.NewRequest(http.MethodPost, "/loan-details/loan-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Document upload rejected")
	assert.Equal(t, int64(0), atomic.LoadInt64(&requests), "an oversize file must never reach the API")
}

func TestHandler_Upload_DisallowedExtensionRejected(t *testing.T) {
	var requests int64
	r := createConfiguredRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/borrower/read-income" {
			atomic.AddInt64(&requests, 1)
		}
	}, true, &Config{
		Timeout:           2 * time.Second,
		AllowedExtensions: []string{".pdf"},
	})

	body, contentType := createUploadBody(t, "b-1", models.CategoryIncome, "paystub.exe", []byte("MZ"))
	req := httptest.NewRequest(http.MethodPost, "/loan-details/loan-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Document upload rejected")
	assert.Equal(t, int64(0), atomic.LoadInt64(&requests))
}

func TestHandler_Upload_AcceptedFileRedirects(t *testing.T) {
	var requests int64
	r := createConfiguredRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/borrower/read-income" {
			atomic.AddInt64(&requests, 1)
		}
		w.Write([]byte(`{}`))
	}, true, &Config{
		Timeout:           2 * time.Second,
		MaxFileSizeMB:     16,
		AllowedExtensions: []string{".pdf"},
	})

	body, contentType := createUploadBody(t, "b-1", models.CategoryIncome, "paystub.PDF", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/loan-details/loan-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/loan-details?loan_id=loan-1", w.Header().Get("Location"))
	assert.Equal(t, int64(1), atomic.LoadInt64(&requests), "extension matching is case-insensitive")
}

// ==========================
// Recommendation Endpoint Tests
// ==========================

func TestHandler_Recommendation(t *testing.T) {
	r := createTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/applications/loan-1/new-recommendation", r.URL.Path)
		w.Write([]byte(`{"llm_recommendation": "Approve with conditions."}`))
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/loan-details/loan-1/recommendation", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Approve with conditions.", body["llm_recommendation"])
}

func TestHandler_Recommendation_UnauthorizedIsJSON(t *testing.T) {
	tests := []struct {
		name   string
		authed bool
		api    http.HandlerFunc
	}{
		{
			name:   "no session",
			authed: false,
			api:    func(w http.ResponseWriter, r *http.Request) {},
		},
		{
			name:   "stale token",
			authed: true,
			api: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRouter(t, tt.api, tt.authed)

			req := httptest.NewRequest(http.MethodPost, "/loan-details/loan-1/recommendation", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "authentication required", body["error"])
		})
	}
}

func TestHandler_Recommendation_BackendErrorIsJSON(t *testing.T) {
	r := createTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "model overloaded"}`))
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/loan-details/loan-1/recommendation", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "model overloaded", body["error"])
}
