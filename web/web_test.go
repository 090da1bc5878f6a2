package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/astatica/portfolio/database"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("PORTFOLIO_SESSION_SECRET", "test-secret")
	t.Setenv("PORTFOLIO_STORAGE", "local")
	t.Setenv("PORTFOLIO_UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))

	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { _ = database.CloseDB() })

	engine, err := NewServer().initRouter()
	require.NoError(t, err)
	return engine
}

func do(engine *gin.Engine, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := do(engine, req, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("coverImage", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestPublicRoutes(t *testing.T) {
	engine := setupEngine(t)

	w := do(engine, httptest.NewRequest(http.MethodGet, "/api/categories", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 10)
	assert.Equal(t, "3D", categories[0])

	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/works", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/works/does-not-exist", nil), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	for _, path := range []string{"/", "/works", "/work", "/admin"} {
		w = do(engine, httptest.NewRequest(http.MethodGet, path, nil), nil)
		assert.Equal(t, http.StatusOK, w.Code, "page %s", path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	}

	// anonymous /admin serves the login view, not the panel
	w = do(engine, httptest.NewRequest(http.MethodGet, "/admin", nil), nil)
	assert.Contains(t, w.Body.String(), "Admin login")

	w = do(engine, httptest.NewRequest(http.MethodGet, "/no-such-route", nil), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	engine := setupEngine(t)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/admin/works", nil),
		httptest.NewRequest(http.MethodDelete, "/api/admin/works/1", nil),
		httptest.NewRequest(http.MethodGet, "/api/admin/status", nil),
		httptest.NewRequest(http.MethodGet, "/api/admin/logs", nil),
	}
	for _, req := range requests {
		w := do(engine, req, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.Method, req.URL.Path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	// the gate must reject before any state changes
	w := do(engine, httptest.NewRequest(http.MethodGet, "/api/works", nil), nil)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestLoginLogout(t *testing.T) {
	engine := setupEngine(t)

	body, _ := json.Marshal(map[string]string{"username": "alvinadmin", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := do(engine, req, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	cookies := login(t, engine, "alvinadmin", "alvinadmin")

	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/admin/status", nil), cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(engine, httptest.NewRequest(http.MethodGet, "/admin", nil), cookies)
	assert.Contains(t, w.Body.String(), "New work")

	w = do(engine, httptest.NewRequest(http.MethodPost, "/api/logout", nil), cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	// the logout response carries the cleared session cookie
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/admin/status", nil), cleared)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndDeleteWork(t *testing.T) {
	engine := setupEngine(t)
	cookies := login(t, engine, "alvinadmin", "alvinadmin")

	buf, contentType := multipartBody(t, map[string]string{
		"title":       "My First Project!!",
		"categories":  "3D, VFX",
		"description": "Opening titles",
		"youtubeUrl":  "https://youtu.be/abc123",
		"credits":     `[{"role":"Director","name":"A. B."}]`,
	}, "cover.png", []byte("\x89PNG\r\n\x1a\nimagedata"))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/works", buf)
	req.Header.Set("Content-Type", contentType)
	w := do(engine, req, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Success bool `json:"success"`
		Work    struct {
			Id         int    `json:"id"`
			Title      string `json:"title"`
			Slug       string `json:"slug"`
			CoverImage string `json:"coverImage"`
		} `json:"work"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "my-first-project", created.Work.Slug)
	assert.True(t, strings.HasPrefix(created.Work.CoverImage, "/uploads/"))
	assert.True(t, strings.HasSuffix(created.Work.CoverImage, "-cover.png"))

	// the stored cover is served from the static uploads route
	w = do(engine, httptest.NewRequest(http.MethodGet, created.Work.CoverImage, nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/works/my-first-project", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"My First Project!!"`)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/works/"+strconv.Itoa(created.Work.Id), nil)
	w = do(engine, req, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/works/my-first-project", nil), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/works/"+strconv.Itoa(created.Work.Id), nil)
	w = do(engine, req, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestCreateWorkInvalidCredits(t *testing.T) {
	engine := setupEngine(t)
	cookies := login(t, engine, "alvinadmin", "alvinadmin")

	buf, contentType := multipartBody(t, map[string]string{
		"title":   "Broken Credits",
		"credits": "not json",
	}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/works", buf)
	req.Header.Set("Content-Type", contentType)
	w := do(engine, req, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credits"}`, w.Body.String())

	w = do(engine, httptest.NewRequest(http.MethodGet, "/api/works", nil), nil)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
