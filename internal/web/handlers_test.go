package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GilTarablus/TidyImport/internal/config"
	"github.com/GilTarablus/TidyImport/internal/session"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			RequestTimeout: time.Minute,
		},
		Import: config.ImportConfig{
			MaxFileSize:   1 << 20,
			MaxRows:       100,
			SessionTTL:    time.Hour,
			SweepInterval: time.Minute,
		},
		Rate:    config.RateLimitConfig{Enabled: false},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

func newTestServer(cfg *config.Config) *Server {
	return NewServer(cfg, session.NewStore(time.Hour))
}

const testCSV = "Full Name,E-Mail,Cell,Time Zone\n" +
	"dr. jane doe,JANE@X.COM,(555) 111-2222,pst\n" +
	"john smith,john@x.com,(555) 333-4444,\n" +
	"JANE DOE,jane@x.com,(555) 555-6666,est\n"

// multipartBody builds an upload request body with a single file field.
func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

// do runs one request through the full middleware chain.
func do(s *Server, method, path, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	return do(s, method, path, "application/json", bytes.NewBufferString(body))
}

func upload(t *testing.T, s *Server, filename, content string) session.Snapshot {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	rec := do(s, http.MethodPost, "/api/sessions", contentType, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var snap session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestImportFlow(t *testing.T) {
	s := newTestServer(testConfig())

	snap := upload(t, s, "clients.csv", testCSV)
	if snap.ID == "" {
		t.Fatal("no session ID")
	}
	if snap.FullNameColumn == nil || snap.FullNameColumn.SourceHeader != "Full Name" {
		t.Fatalf("combined-name column not detected: %+v", snap.FullNameColumn)
	}
	if snap.RawRowCount != 3 {
		t.Fatalf("RawRowCount = %d, want 3", snap.RawRowCount)
	}

	base := "/api/sessions/" + snap.ID

	rec := doJSON(s, http.MethodPost, base+"/split-name", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("split-name status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(s, http.MethodPost, base+"/process", ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("process status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if !snap.Processed {
		t.Fatal("session not processed")
	}
	if snap.Rows[0]["First Name"] != "Jane" || snap.Rows[0]["Email"] != "jane@x.com" {
		t.Errorf("row 0 not cleaned: %+v", snap.Rows[0])
	}
	if snap.Rows[0]["Time Zone"] != "Pacific Time (US & Canada)" {
		t.Errorf("timezone not resolved: %q", snap.Rows[0]["Time Zone"])
	}

	rec = do(s, http.MethodGet, base+"/issues", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("issues status = %d", rec.Code)
	}
	var report issueReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode issues: %v", err)
	}
	if len(report.Duplicates) != 1 {
		t.Fatalf("duplicates = %+v, want one email group", report.Duplicates)
	}

	dup := report.Duplicates[0].RowIndices[1]
	rec = doJSON(s, http.MethodPost, base+"/rows/remove",
		fmt.Sprintf(`{"indices":[%d]}`, dup))
	if rec.Code != http.StatusOK {
		t.Fatalf("rows/remove status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Rows) != 2 || len(snap.Duplicates) != 0 {
		t.Errorf("duplicate not resolved: rows=%d duplicates=%+v", len(snap.Rows), snap.Duplicates)
	}

	rec = do(s, http.MethodGet, base+"/export", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("export Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "clients_cleaned.csv") {
		t.Errorf("Content-Disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(rec.Body.String(), "555-111-2222") {
		t.Errorf("export body missing display-formatted phone:\n%s", rec.Body.String())
	}
}

func TestFillFieldEndpoint(t *testing.T) {
	s := newTestServer(testConfig())
	snap := upload(t, s, "clients.csv", testCSV)
	base := "/api/sessions/" + snap.ID

	if rec := doJSON(s, http.MethodPost, base+"/process", ``); rec.Code != http.StatusOK {
		t.Fatalf("process status = %d", rec.Code)
	}

	rec := doJSON(s, http.MethodPost, base+"/fill", `{"field":"Time Zone","value":"CST"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("fill status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Rows[1]["Time Zone"] != "Central Time (US & Canada)" {
		t.Errorf("backfill failed: %q", snap.Rows[1]["Time Zone"])
	}

	rec = doJSON(s, http.MethodPost, base+"/fill", `{"field":"Nope","value":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d", rec.Code)
	}
}

func TestSessionNotFound(t *testing.T) {
	s := newTestServer(testConfig())

	rec := do(s, http.MethodGet, "/api/sessions/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestIssuesBeforeProcess(t *testing.T) {
	s := newTestServer(testConfig())
	snap := upload(t, s, "clients.csv", testCSV)

	rec := do(s, http.MethodGet, "/api/sessions/"+snap.ID+"/issues", "", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	s := newTestServer(testConfig())

	body, contentType := multipartBody(t, "clients.pdf", "not a spreadsheet")
	rec := do(s, http.MethodPost, "/api/sessions", contentType, body)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestUploadRowCap(t *testing.T) {
	cfg := testConfig()
	cfg.Import.MaxRows = 2
	s := newTestServer(cfg)

	body, contentType := multipartBody(t, "clients.csv", testCSV)
	rec := do(s, http.MethodPost, "/api/sessions", contentType, body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestUploadRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 100, UploadLimit: 1}
	s := newTestServer(cfg)

	upload(t, s, "clients.csv", testCSV)

	body, contentType := multipartBody(t, "clients.csv", testCSV)
	rec := do(s, http.MethodPost, "/api/sessions", contentType, body)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(testConfig())
	snap := upload(t, s, "clients.csv", testCSV)

	rec := do(s, http.MethodDelete, "/api/sessions/"+snap.ID, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := do(s, http.MethodGet, "/api/sessions/"+snap.ID, "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("session survived delete: %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(testConfig())
	rec := do(s, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
