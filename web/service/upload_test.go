package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	uploader := &LocalUploader{Dir: dir, PublicPath: "/uploads"}

	url, err := uploader.Upload("shot one.png", []byte("image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "-shot one.png"))

	filename := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)

	require.NoError(t, uploader.Remove(url))
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalUploaderRemoveIgnoresForeignUrls(t *testing.T) {
	uploader := &LocalUploader{Dir: t.TempDir(), PublicPath: "/uploads"}
	assert.NoError(t, uploader.Remove("https://cdn.example.com/x.png"))
	assert.NoError(t, uploader.Remove("/uploads/../escape.png"))
	assert.NoError(t, uploader.Remove("/uploads/"))
}

func TestBlobUploaderNotConfigured(t *testing.T) {
	uploader := &BlobUploader{}
	_, err := uploader.Upload("a.png", pngHeader)
	assert.ErrorIs(t, err, ErrNotConfigured)

	uploader = &BlobUploader{Endpoint: "https://blob.example.com"}
	_, err = uploader.Upload("a.png", pngHeader)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBlobUploaderRejectsNonImage(t *testing.T) {
	uploader := &BlobUploader{Endpoint: "https://blob.example.com", Key: "k"}
	_, err := uploader.Upload("a.txt", []byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestBlobUploaderRejectsOversized(t *testing.T) {
	uploader := &BlobUploader{Endpoint: "https://blob.example.com", Key: "k"}
	data := make([]byte, maxBlobSize+1)
	copy(data, pngHeader)
	_, err := uploader.Upload("big.png", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestBlobUploaderUpload(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/reel.png"}`))
	}))
	defer srv.Close()

	uploader := &BlobUploader{Endpoint: srv.URL, Key: "secret-key", Folder: "portfolio"}
	url, err := uploader.Upload("Show Reel.PNG", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/reel.png", url)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.True(t, strings.HasPrefix(gotPath, "/portfolio/show-reel-"))
	assert.True(t, strings.HasSuffix(gotPath, ".png"))
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, pngHeader, gotBody)
}

func TestBlobUploaderUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	uploader := &BlobUploader{Endpoint: srv.URL, Key: "k"}
	_, err := uploader.Upload("a.png", pngHeader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
