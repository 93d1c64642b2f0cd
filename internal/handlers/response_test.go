package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRespondError_Shape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondError(c, http.StatusNotFound, "challenge not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || success {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if body["error"] != "challenge not found" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestRespondOK_StampsSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		payload gin.H
		wantKey string
	}{
		{name: "with payload", payload: gin.H{"ready": true}, wantKey: "ready"},
		{name: "nil payload", payload: nil, wantKey: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondOK(c, tc.payload)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if success, ok := body["success"].(bool); !ok || !success {
				t.Errorf("expected success=true, got %v", body["success"])
			}
			if tc.wantKey != "" {
				if _, ok := body[tc.wantKey]; !ok {
					t.Errorf("expected %q in payload, got %v", tc.wantKey, body)
				}
			}
		})
	}
}
