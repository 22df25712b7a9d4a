package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return body
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		renderer    interface{ Render(http.ResponseWriter, *http.Request) error }
		wantStatus  int
		wantSuccess bool
		wantKeys    []string
		absentKeys  []string
	}{
		{"ok", OK(map[string]string{"a": "b"}), http.StatusOK, true, []string{"data"}, []string{"message", "error"}},
		{"ok empty slice", OK([]string{}), http.StatusOK, true, []string{"data"}, nil},
		{"created", Created("x"), http.StatusCreated, true, []string{"data"}, nil},
		{"message", Message("done"), http.StatusOK, true, []string{"message"}, []string{"data"}},
		{"page", Page([]int{}, 0, 1, 0), http.StatusOK, true, []string{"data", "total", "page", "totalPages"}, nil},
		{"bad request", ErrBadRequest("bad"), http.StatusBadRequest, false, []string{"message"}, []string{"error"}},
		{"not found", ErrNotFound("gone"), http.StatusNotFound, false, []string{"message"}, []string{"error"}},
		{"too many", ErrTooManyRequests(), http.StatusTooManyRequests, false, []string{"message"}, nil},
		{"internal", ErrInternal("boom", errors.New("disk full")), http.StatusInternalServerError, false, []string{"message", "error"}, nil},
		{"unavailable", ErrUnavailable("down", errors.New("refused")), http.StatusServiceUnavailable, false, []string{"message", "error"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			Send(rr, req, tt.renderer)

			if rr.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			body := decode(t, rr)
			if body["success"] != tt.wantSuccess {
				t.Errorf("success: got %v, want %v", body["success"], tt.wantSuccess)
			}
			for _, k := range tt.wantKeys {
				if _, ok := body[k]; !ok {
					t.Errorf("missing key %q in %v", k, body)
				}
			}
			for _, k := range tt.absentKeys {
				if _, ok := body[k]; ok {
					t.Errorf("unexpected key %q in %v", k, body)
				}
			}
		})
	}
}

func TestInternalCarriesCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Send(rr, req, ErrInternal("Failed to fetch articles", errors.New("connection reset")))

	body := decode(t, rr)
	if body["error"] != "connection reset" {
		t.Errorf("error: got %v", body["error"])
	}
	if body["message"] != "Failed to fetch articles" {
		t.Errorf("message: got %v", body["message"])
	}
}
