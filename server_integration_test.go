package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"inventaris/pkg/sheets"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	// allow callers to pass nil for body safely
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(b)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return out
}

// multipartFiles builds a multipart body with n parts in the "files" field,
// all with the given content type.
func multipartFiles(t *testing.T, n int, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for i := 0; i < n; i++ {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="doc%d.dat"`, i))
		h.Set("Content-Type", contentType)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	_ = os.Setenv("UPLOAD_BASE", t.TempDir())
	initDB()
	r := gin.New()
	r.Static("/uploads", uploadBaseDir())
	setupRoutes(r, sheets.New("", ""))
	return r
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/login",
		jsonBody(t, map[string]string{"username": username, "password": password}), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login %s failed status=%d body=%s", username, resp.Code, resp.Body.String())
	}
	token, _ := decode(t, resp)["token"].(string)
	if token == "" {
		t.Fatalf("empty token for %s", username)
	}
	return token
}

func registerAndLogin(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/register",
		jsonBody(t, map[string]string{"username": username, "password": password}), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register %s failed status=%d body=%s", username, resp.Code, resp.Body.String())
	}
	return login(t, r, username, password)
}

func TestSalaryFlow(t *testing.T) {
	r := setupTestServer(t)

	userToken := registerAndLogin(t, r, "u1", "passw1")
	otherToken := registerAndLogin(t, r, "u2", "passw2")
	adminPW := os.Getenv("ADMIN_PASSWORD")
	if adminPW == "" {
		adminPW = "admin123"
	}
	adminToken := login(t, r, "admin", adminPW)

	// unauthenticated access is rejected
	if resp := performRequest(r, http.MethodGet, "/salaries", nil, "", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated list, got %d", resp.Code)
	}

	// create a record as its owner
	create := map[string]any{"userId": "u1", "employeeName": "Jane Roe", "month": 6, "year": 2024, "amount": 1500.0, "notes": "june"}
	resp := performRequest(r, http.MethodPost, "/salaries", jsonBody(t, create), userToken, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create salary failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	created := decode(t, resp)
	salaryID, _ := created["id"].(string)
	if salaryID == "" {
		t.Fatalf("create response missing id: %v", created)
	}
	if created["createdAt"] != created["updatedAt"] {
		t.Fatalf("expected createdAt == updatedAt on create, got %v vs %v", created["createdAt"], created["updatedAt"])
	}

	// creating for another user as non-admin is forbidden
	steal := map[string]any{"userId": "u2", "employeeName": "X", "month": 1, "year": 2024, "amount": 1.0}
	if resp := performRequest(r, http.MethodPost, "/salaries", jsonBody(t, steal), userToken, "application/json"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 creating for another user, got %d", resp.Code)
	}

	// validation failure
	bad := map[string]any{"userId": "u1", "employeeName": "Jane", "month": 13, "year": 2024, "amount": 1.0}
	if resp := performRequest(r, http.MethodPost, "/salaries", jsonBody(t, bad), userToken, "application/json"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month=13, got %d", resp.Code)
	}

	// round-trip get by owner
	resp = performRequest(r, http.MethodGet, "/salaries/"+salaryID, nil, userToken, "")
	if resp.Code != 200 {
		t.Fatalf("get salary failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	got := decode(t, resp)
	for _, k := range []string{"userId", "employeeName", "notes"} {
		if got[k] != create[k] {
			t.Fatalf("round-trip mismatch on %s: %v != %v", k, got[k], create[k])
		}
	}
	if _, ok := got["documents"]; !ok {
		t.Fatalf("get salary missing documents field: %v", got)
	}

	// other user may not read it, admin may
	if resp := performRequest(r, http.MethodGet, "/salaries/"+salaryID, nil, otherToken, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign get, got %d", resp.Code)
	}
	if resp := performRequest(r, http.MethodGet, "/salaries/"+salaryID, nil, adminToken, ""); resp.Code != 200 {
		t.Fatalf("expected 200 for admin get, got %d", resp.Code)
	}

	// admin creates a record for u2, then listing is filtered per caller
	forOther := map[string]any{"userId": "u2", "employeeName": "John Doe", "month": 2, "year": 2024, "amount": 900.0}
	if resp := performRequest(r, http.MethodPost, "/salaries", jsonBody(t, forOther), adminToken, "application/json"); resp.Code != http.StatusCreated {
		t.Fatalf("admin create for u2 failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/salaries", nil, userToken, "")
	for _, item := range decode(t, resp)["items"].([]any) {
		if owner := item.(map[string]any)["userId"]; owner != "u1" {
			t.Fatalf("non-admin list leaked record of %v", owner)
		}
	}
	resp = performRequest(r, http.MethodGet, "/salaries", nil, adminToken, "")
	if n := len(decode(t, resp)["items"].([]any)); n < 2 {
		t.Fatalf("admin list expected at least 2 records, got %d", n)
	}

	// update is admin-only and partial
	patch := map[string]any{"amount": 1750.0}
	if resp := performRequest(r, http.MethodPut, "/salaries/"+salaryID, jsonBody(t, patch), userToken, "application/json"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin update, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodPut, "/salaries/"+salaryID, jsonBody(t, patch), adminToken, "application/json")
	if resp.Code != 200 {
		t.Fatalf("admin update failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	updated := decode(t, resp)
	if updated["amount"] != 1750.0 || updated["employeeName"] != "Jane Roe" {
		t.Fatalf("partial update wrong result: %v", updated)
	}
	if resp := performRequest(r, http.MethodPut, "/salaries/does-not-exist", jsonBody(t, patch), adminToken, "application/json"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating missing record, got %d", resp.Code)
	}

	// document upload: batch limits and type rejection
	body, ct := multipartFiles(t, 6, "application/pdf", []byte("%PDF-1.4"))
	if resp := performRequest(r, http.MethodPost, "/salaries/"+salaryID+"/documents", body, userToken, ct); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 6 files, got %d", resp.Code)
	}
	body, ct = multipartFiles(t, 1, "text/plain", []byte("hello"))
	if resp := performRequest(r, http.MethodPost, "/salaries/"+salaryID+"/documents", body, userToken, ct); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for text/plain, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/salaries/"+salaryID+"/documents", nil, userToken, "")
	if n := len(decode(t, resp)["items"].([]any)); n != 0 {
		t.Fatalf("rejected batches must record no documents, found %d", n)
	}

	body, ct = multipartFiles(t, 5, "application/pdf", []byte("%PDF-1.4"))
	resp = performRequest(r, http.MethodPost, "/salaries/"+salaryID+"/documents", body, userToken, ct)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	items := decode(t, resp)["items"].([]any)
	if len(items) != 5 {
		t.Fatalf("expected 5 documents, got %d", len(items))
	}
	docID, _ := items[0].(map[string]any)["id"].(string)

	// document delete is admin-only
	if resp := performRequest(r, http.MethodDelete, "/salaries/"+salaryID+"/documents/"+docID, nil, userToken, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin doc delete, got %d", resp.Code)
	}
	if resp := performRequest(r, http.MethodDelete, "/salaries/"+salaryID+"/documents/"+docID, nil, adminToken, ""); resp.Code != http.StatusNoContent {
		t.Fatalf("admin doc delete failed status=%d", resp.Code)
	}

	// record delete is admin-only and cascades
	if resp := performRequest(r, http.MethodDelete, "/salaries/"+salaryID, nil, userToken, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin delete, got %d", resp.Code)
	}
	if resp := performRequest(r, http.MethodDelete, "/salaries/"+salaryID, nil, adminToken, ""); resp.Code != http.StatusNoContent {
		t.Fatalf("admin delete failed status=%d", resp.Code)
	}
	if resp := performRequest(r, http.MethodGet, "/salaries/"+salaryID, nil, adminToken, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestInventoryFlow(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "inv1", "passw1")

	// employee CRUD with duplicate email rejection
	emp := map[string]any{"name": "Sam Park", "email": "sam@example.com", "department": "IT", "position": "Technician"}
	resp := performRequest(r, http.MethodPost, "/employees", jsonBody(t, emp), token, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create employee failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	empID := decode(t, resp)["id"].(string)
	if resp := performRequest(r, http.MethodPost, "/employees", jsonBody(t, emp), token, "application/json"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodPut, "/employees/"+empID, jsonBody(t, map[string]any{"position": "Lead Technician"}), token, "application/json")
	if resp.Code != 200 || decode(t, resp)["position"] != "Lead Technician" {
		t.Fatalf("update employee failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// system asset and pc bundle
	asset := map[string]any{"category": "Monitor", "model": "Dell U2723QE", "monitorSize": "27"}
	resp = performRequest(r, http.MethodPost, "/assets", jsonBody(t, asset), token, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create asset failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	assetID := decode(t, resp)["id"].(string)

	pc := map[string]any{"type": "PC", "name": "Dev Box 1", "monitorId": assetID, "ramIds": []string{"r1", "r2"}}
	resp = performRequest(r, http.MethodPost, "/pc-laptops", jsonBody(t, pc), token, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create pc failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	if resp := performRequest(r, http.MethodPost, "/pc-laptops", jsonBody(t, map[string]any{"type": "Server", "name": "x"}), token, "application/json"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", resp.Code)
	}

	// mirror is not configured in tests
	if resp := performRequest(r, http.MethodPost, "/sheets/sync", nil, token, ""); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for unconfigured mirror, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/sheets/info", nil, token, "")
	if resp.Code != 200 || decode(t, resp)["configured"] != false {
		t.Fatalf("sheets info unexpected: status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
