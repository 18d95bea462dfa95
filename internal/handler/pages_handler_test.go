package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSiteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	pages := map[string]string{
		"index.html": "<html><body>Calloway &amp; Reed LLP</body></html>",
		"about.html": "<html><body>About the firm</body></html>",
	}
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cssDir := filepath.Join(dir, "css")
	if err := os.MkdirAll(cssDir, 0o755); err != nil {
		t.Fatalf("mkdir css: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cssDir, "site.css"), []byte("body{margin:0}"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}
	return dir
}

func pagesMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewPageRouter(testSiteDir(t)).Register(mux)
	return mux
}

func TestPageRouter_Index(t *testing.T) {
	mux := pagesMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Calloway") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPageRouter_CleanURL(t *testing.T) {
	mux := pagesMux(t)

	req := httptest.NewRequest("GET", "/about", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "About the firm") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPageRouter_MissingFile_Returns404(t *testing.T) {
	// /contact is a registered slug but contact.html does not exist in the
	// test site dir.
	mux := pagesMux(t)

	req := httptest.NewRequest("GET", "/contact", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestPageRouter_AssetMount(t *testing.T) {
	mux := pagesMux(t)

	req := httptest.NewRequest("GET", "/css/site.css", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "margin:0") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPageRouter_AssetTraversal_NotServed(t *testing.T) {
	mux := pagesMux(t)

	// http.FileServer resolves dot-dot segments before touching disk, so a
	// traversal attempt must not escape the mount.
	req := httptest.NewRequest("GET", "/css/../index.html", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), "Calloway") {
		t.Error("traversal escaped the asset mount")
	}
}
