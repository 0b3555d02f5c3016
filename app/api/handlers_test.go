package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jurbib/digest/app/database"
	"github.com/jurbib/digest/app/digest"
)

func setupTestServer(t *testing.T) (*gin.Engine, *database.DigestArchive) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "digest.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	archive := database.NewDigestArchive(db)
	seenRepo := database.NewSeenItemRepository(db)
	if err := seenRepo.Save(context.Background(), digest.NewSeenSet("https://www.idunn.no/doi/1", "https://www.idunn.no/doi/2")); err != nil {
		t.Fatalf("Failed to seed seen items: %v", err)
	}

	return NewServer(NewHandler(archive, seenRepo, "test")), archive
}

func seedDigests(t *testing.T, archive *database.DigestArchive) (*database.Digest, *database.Digest) {
	t.Helper()

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	older := &database.Digest{Title: "Mars", HTML: "<h1>Mars</h1>", RSS: "<rss>mars</rss>", ItemCount: 3, SectionCount: 2, CreatedAt: base}
	newer := &database.Digest{Title: "April", HTML: "<h1>April</h1>", ItemCount: 1, SectionCount: 1, CreatedAt: base.AddDate(0, 1, 0)}
	for _, d := range []*database.Digest{older, newer} {
		if err := archive.Create(context.Background(), d); err != nil {
			t.Fatalf("Failed to seed digest: %v", err)
		}
	}
	return older, newer
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetDigestByID(t *testing.T) {
	r, archive := setupTestServer(t)
	older, _ := seedDigests(t, archive)

	w := get(r, "/digests/"+older.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "<h1>Mars</h1>" {
		t.Errorf("Expected archived HTML, got %q", w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML content type, got %s", w.Header().Get("Content-Type"))
	}
	if w.Header().Get("X-Digest-Items") != "3" {
		t.Errorf("Expected X-Digest-Items 3, got %s", w.Header().Get("X-Digest-Items"))
	}
}

func TestGetLatestDigest(t *testing.T) {
	r, archive := setupTestServer(t)

	if w := get(r, "/digests/latest"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on empty archive, got %d", w.Code)
	}

	_, newer := seedDigests(t, archive)

	w := get(r, "/digests/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("X-Digest-ID") != newer.ID {
		t.Errorf("Expected latest digest %s, got %s", newer.ID, w.Header().Get("X-Digest-ID"))
	}
}

func TestGetDigestNotFound(t *testing.T) {
	r, _ := setupTestServer(t)

	if w := get(r, "/digests/unknown"); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetDigestRSS(t *testing.T) {
	r, archive := setupTestServer(t)
	older, newer := seedDigests(t, archive)

	w := get(r, "/digests/"+older.ID+"/rss")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "<rss>mars</rss>" {
		t.Errorf("Expected archived RSS, got %q", w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml") {
		t.Errorf("Expected XML content type, got %s", w.Header().Get("Content-Type"))
	}

	if w := get(r, "/digests/"+newer.ID+"/rss"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for digest without RSS, got %d", w.Code)
	}
}

func TestListDigests(t *testing.T) {
	r, archive := setupTestServer(t)
	older, newer := seedDigests(t, archive)

	w := get(r, "/digests")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Digests []digestSummary `json:"digests"`
		Total   int             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 2 || len(response.Digests) != 2 {
		t.Fatalf("Expected 2 digests, got %d", response.Total)
	}
	if response.Digests[0].ID != newer.ID || response.Digests[1].ID != older.ID {
		t.Error("Expected digests newest first")
	}
	if response.Digests[1].RSS != "/digests/"+older.ID+"/rss" {
		t.Errorf("Unexpected RSS link: %s", response.Digests[1].RSS)
	}

	w = get(r, "/digests?limit=1")
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 1 {
		t.Errorf("Expected limit to apply, got %d digests", response.Total)
	}

	if w := get(r, "/digests?limit=abc"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid limit, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	r, archive := setupTestServer(t)
	_, newer := seedDigests(t, archive)

	w := get(r, "/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if stats["digests"] != float64(2) {
		t.Errorf("Expected 2 digests, got %v", stats["digests"])
	}
	if stats["seen_items"] != float64(2) {
		t.Errorf("Expected 2 seen items, got %v", stats["seen_items"])
	}
	latest, ok := stats["latest"].(map[string]interface{})
	if !ok || latest["id"] != newer.ID {
		t.Errorf("Expected latest digest %s, got %v", newer.ID, stats["latest"])
	}
}

func TestHealthAndRoot(t *testing.T) {
	r, _ := setupTestServer(t)

	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"digests":0`) {
		t.Errorf("Expected digest count in health response, got %s", w.Body.String())
	}

	w = get(r, "/")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"digests":"/digests"`) {
		t.Errorf("Expected endpoint listing, got %s", w.Body.String())
	}
}
