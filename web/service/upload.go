package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/astatica/portfolio/config"
	"github.com/astatica/portfolio/util/common"
	"github.com/astatica/portfolio/util/slug"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const (
	// maxBlobSize caps uploads in the remote strategy. The local strategy
	// imposes no limit.
	maxBlobSize = 10 << 20

	blobTimeout = 30 * time.Second
)

var (
	// ErrNotConfigured signals missing blob-storage credentials, a
	// configuration error distinct from transport failures.
	ErrNotConfigured = common.NewError("blob storage endpoint or key is not configured")

	// ErrUnsupportedType rejects non-image payloads before any network call.
	ErrUnsupportedType = common.NewError("only image uploads are supported")
)

// Uploader resolves an uploaded image buffer to a publicly retrievable URL.
type Uploader interface {
	Upload(name string, data []byte) (string, error)
}

// Remover is implemented by uploaders that can undo an upload, letting the
// create workflow compensate when the database write fails.
type Remover interface {
	Remove(url string) error
}

// NewUploader builds the strategy selected by configuration.
func NewUploader() Uploader {
	if config.GetStorageKind() == config.StorageBlob {
		return &BlobUploader{
			Endpoint: config.GetBlobEndpoint(),
			Key:      config.GetBlobKey(),
			Folder:   config.GetBlobFolder(),
		}
	}
	return &LocalUploader{
		Dir:        config.GetUploadDir(),
		PublicPath: config.GetUploadPublicPath(),
	}
}

// LocalUploader writes uploads to a local directory served by the web
// server. Filenames are prefixed with the current timestamp; two uploads of
// the same file within one millisecond may collide, acceptable for
// single-admin usage.
type LocalUploader struct {
	Dir        string
	PublicPath string
}

func (u *LocalUploader) Upload(name string, data []byte) (string, error) {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(name))
	if err := os.WriteFile(filepath.Join(u.Dir, filename), data, 0o644); err != nil {
		return "", err
	}
	return u.PublicPath + "/" + filename, nil
}

// Remove deletes a previously uploaded file given its public URL.
func (u *LocalUploader) Remove(url string) error {
	filename, ok := strings.CutPrefix(url, u.PublicPath+"/")
	if !ok || filename == "" || strings.Contains(filename, "/") {
		return nil
	}
	return os.Remove(filepath.Join(u.Dir, filename))
}

// BlobUploader streams uploads to a remote blob-storage endpoint and returns
// the URL the collaborator assigns.
type BlobUploader struct {
	Endpoint string
	Key      string
	Folder   string
}

func (u *BlobUploader) Upload(name string, data []byte) (string, error) {
	if u.Endpoint == "" || u.Key == "" {
		return "", ErrNotConfigured
	}
	if len(data) > maxBlobSize {
		return "", common.NewErrorf("upload exceeds %d bytes", maxBlobSize)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrUnsupportedType
	}

	folder := u.Folder
	if folder == "" {
		folder = "portfolio"
	}
	ext := filepath.Ext(name)
	key := fmt.Sprintf("%s-%d%s",
		slug.Make(strings.TrimSuffix(filepath.Base(name), ext)),
		time.Now().UnixMilli(),
		strings.ToLower(ext),
	)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.Endpoint, "/"), folder, key))
	req.Header.SetMethod(fasthttp.MethodPut)
	req.Header.SetContentType(contentType)
	req.Header.Set("Authorization", "Bearer "+u.Key)
	req.SetBody(data)

	if err := fasthttp.DoTimeout(req, resp, blobTimeout); err != nil {
		return "", common.NewErrorf("blob upload failed: %v", err)
	}
	status := resp.StatusCode()
	if status != fasthttp.StatusOK && status != fasthttp.StatusCreated {
		return "", common.NewErrorf("blob storage returned status %d", status)
	}

	var result struct {
		Url string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil || result.Url == "" {
		return "", common.NewError("blob storage returned no url")
	}
	return result.Url, nil
}
