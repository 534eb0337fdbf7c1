package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sockchat/pkg/chat"
)

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_StoresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	engine := gin.New()
	engine.POST("/upload", NewUploadHandlers(dir).UploadHandler)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, uploadRequest(t, "file", "notes.txt", "hello"))
	require.Equal(t, http.StatusOK, w.Code)

	var ref chat.FileRef
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ref))
	assert.Equal(t, "notes.txt", ref.Name)
	assert.True(t, strings.HasPrefix(ref.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref.URL, "-notes.txt"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref.URL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(stored))
}

func TestUploadHandler_UniqueStoredNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/upload", NewUploadHandlers(t.TempDir()).UploadHandler)

	var urls []string
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, uploadRequest(t, "file", "same.txt", "x"))
		require.Equal(t, http.StatusOK, w.Code)

		var ref chat.FileRef
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ref))
		urls = append(urls, ref.URL)
	}
	assert.NotEqual(t, urls[0], urls[1])
}

func TestUploadHandler_MissingFile(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, uploadRequest(t, "wrong_field", "notes.txt", "hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
