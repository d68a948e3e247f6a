package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"playersbudget/internal/validator"
)

const (
	testBudgetID   = "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"
	testScenarioID = "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a5c"
	testItemID     = "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a5d"
	testSnapshotID = "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a5e"
	testCategoryID = "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a5f"
	testSourceID   = "0190a5b2-7c3d-7e4f-8a9b-0c1d2e3f4a60"
)

// --- mock audit service ---

type auditEntry struct {
	action, resourceType, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(action, resourceType, resourceID, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{action: action, resourceType: resourceType, resourceID: resourceID})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestParsePathID(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, err := parsePathID(c, "id")
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"canonical", "/things/" + testBudgetID, http.StatusOK, testBudgetID},
		{"uppercase", "/things/" + strings.ToUpper(testBudgetID), http.StatusOK, testBudgetID},
		{"integer", "/things/42", http.StatusBadRequest, ""},
		{"garbage", "/things/not-a-uuid", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, "GET", tt.path, "")
			assertStatus(t, rec, tt.status)
			result := parseJSON(t, rec)
			if tt.status == http.StatusOK {
				if result["id"] != tt.want {
					t.Errorf("expected id %s, got %v", tt.want, result["id"])
				}
				return
			}
			assertErrorCode(t, result, "INVALID_INPUT")
		})
	}
}
