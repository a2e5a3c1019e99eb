package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"adminui/internal/model"
	"adminui/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	router := server.NewRouter(nil, zerolog.Nop())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestMembersEndpointOmitsViewState(t *testing.T) {
	members := []model.Member{{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member", Checked: true}}
	router := server.NewRouter(members, zerolog.Nop())

	req := httptest.NewRequest("GET", "/members.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0]["name"] != "Aaron Miles" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body[0]["checked"]; ok {
		t.Errorf("checked must not be served")
	}
}
