package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"bluerhyno/internal/infrastructure/notify"
	"bluerhyno/internal/infrastructure/persistence/sqlite/model"
	"bluerhyno/internal/infrastructure/persistence/sqlite/repository"
	"bluerhyno/internal/infrastructure/persistence/sqlite/uow"
	"bluerhyno/internal/infrastructure/photostore"
	"bluerhyno/internal/usecase/quoting"
)

func setupRouter(t *testing.T) chi.Router {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "api.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.Customer{}, &model.Quote{}, &model.Project{},
		&model.Invoice{}, &model.Payment{}, &model.Feedback{}, &model.Password{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	photos, err := photostore.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new photo store: %v", err)
	}

	svc := quoting.NewService(
		repository.NewQuotingRepository(db),
		uow.NewUnitOfWork(db),
		notify.NewLogNotifier(),
		quoting.Options{},
	)
	return NewRouter(svc, photos)
}

const createQuoteBody = `{
	"firstName": "Dana",
	"lastName": "Fields",
	"phone": "555-0101",
	"email": "dana@example.com",
	"address1": "12 Post Rd",
	"city": "Austin",
	"state": "TX",
	"zipcode": "78701",
	"material": "Cedar",
	"fenceLength": "120"
}`

func postJSON(t *testing.T, router chi.Router, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateQuoteEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/quotes", createQuoteBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", resp.Code, resp.Body.String())
	}

	var out struct {
		Success         bool   `json:"success"`
		QuoteID         uint64 `json:"quoteId"`
		ReferenceNumber string `json:"referenceNumber"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Success || out.QuoteID == 0 {
		t.Fatalf("response = %+v", out)
	}
	if !strings.HasPrefix(out.ReferenceNumber, "QT-") {
		t.Fatalf("reference_number = %q", out.ReferenceNumber)
	}
}

func TestCreateQuoteEndpointNumericFenceLength(t *testing.T) {
	router := setupRouter(t)

	// API callers send fenceLength as a bare number, not a quoted string.
	body := strings.Replace(createQuoteBody, `"fenceLength": "120"`, `"fenceLength": 120`, 1)
	resp := postJSON(t, router, "/api/quotes", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", resp.Code, resp.Body.String())
	}
}

func TestCreateQuoteEndpointMultipart(t *testing.T) {
	router := setupRouter(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("data", createQuoteBody); err != nil {
		t.Fatalf("write data field: %v", err)
	}
	photo, err := form.CreateFormFile("photos", "yard.jpg")
	if err != nil {
		t.Fatalf("create photo part: %v", err)
	}
	if _, err := photo.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatalf("write photo part: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/quotes", &buf)
	// The boundary parameter rides along; detection must still match.
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d; body=%s", resp.Code, resp.Body.String())
	}

	var out struct {
		QuoteID uint64 `json:"quoteId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/quotes/1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d; body=%s", resp.Code, resp.Body.String())
	}
	var quote struct {
		PhotoPaths []string `json:"PhotoPaths"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if len(quote.PhotoPaths) != 1 || !strings.HasSuffix(quote.PhotoPaths[0], ".jpg") {
		t.Fatalf("photo_paths = %v", quote.PhotoPaths)
	}
}

func TestCreateQuoteEndpointValidation(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/quotes", `{"firstName": "Dana"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body=%s", resp.Code, http.StatusBadRequest, resp.Body.String())
	}
}

func TestQuoteLifecycleEndpoints(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/quotes", createQuoteBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("create status = %d; body=%s", resp.Code, resp.Body.String())
	}
	var created struct {
		QuoteID uint64 `json:"quoteId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp = postJSON(t, router, "/api/quotes/1/approve", `{"projectStartDate": "2026-09-01"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("approve status = %d; body=%s", resp.Code, resp.Body.String())
	}

	// Approving again conflicts: the project already exists.
	resp = postJSON(t, router, "/api/quotes/1/approve", ``)
	if resp.Code != http.StatusConflict {
		t.Fatalf("second approve status = %d, want %d; body=%s", resp.Code, http.StatusConflict, resp.Body.String())
	}

	// Reject without a reason is a validation failure.
	resp = postJSON(t, router, "/api/quotes/1/reject", `{}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("reject status = %d, want %d; body=%s", resp.Code, http.StatusBadRequest, resp.Body.String())
	}

	resp = postJSON(t, router, "/api/quotes/1/complete", ``)
	if resp.Code != http.StatusOK {
		t.Fatalf("complete status = %d; body=%s", resp.Code, resp.Body.String())
	}
}

func TestProjectUpdateEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/quotes", createQuoteBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("create status = %d; body=%s", resp.Code, resp.Body.String())
	}
	resp = postJSON(t, router, "/api/quotes/1/approve", `{"projectStartDate": "2026-09-01"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("approve status = %d; body=%s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodPut, "/api/projects/1",
		strings.NewReader(`{"projectStartDate": "2026-09-08", "projectEndDate": "2026-09-22", "status": "Completed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("update status = %d; body=%s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/projects/1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d; body=%s", resp.Code, resp.Body.String())
	}
	var project struct {
		Status           string `json:"Status"`
		ProjectStartDate string `json:"ProjectStartDate"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &project); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if project.Status != "Completed" || project.ProjectStartDate != "2026-09-08" {
		t.Fatalf("project = %+v", project)
	}
}

func TestQuoteNotFoundEndpoint(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/404", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d; body=%s", resp.Code, http.StatusNotFound, resp.Body.String())
	}
}

func TestJobStatusEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/quotes", createQuoteBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("create status = %d; body=%s", resp.Code, resp.Body.String())
	}
	var created struct {
		ReferenceNumber string `json:"referenceNumber"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp = postJSON(t, router, "/api/job-status",
		`{"referenceNumber": "`+created.ReferenceNumber+`", "email": "dana@example.com"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("job-status = %d; body=%s", resp.Code, resp.Body.String())
	}

	resp = postJSON(t, router, "/api/job-status",
		`{"referenceNumber": "`+created.ReferenceNumber+`", "email": "wrong@example.com"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("job-status wrong email = %d, want %d; body=%s", resp.Code, http.StatusNotFound, resp.Body.String())
	}
}

func TestCustomerDeleteEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := postJSON(t, router, "/api/quotes", createQuoteBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("create status = %d; body=%s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete status = %d; body=%s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/customers/1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want %d", resp.Code, http.StatusNotFound)
	}
}
