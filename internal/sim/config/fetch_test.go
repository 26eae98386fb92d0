package config

import (
	"net/http"
	"testing"

	"github.com/banshee-data/velocity.report/internal/httputil"
)

func TestLoadSceneFromURLBuildsScene(t *testing.T) {
	client := httputil.NewMockHTTPClient().AddResponse(http.StatusOK, sampleScene)

	s, err := LoadSceneFromURL(client, "https://example.invalid/scene.json")
	if err != nil {
		t.Fatalf("LoadSceneFromURL: %v", err)
	}
	if len(s.Vehicle().Receivers()) != 4 {
		t.Errorf("Receivers = %d, want 4", len(s.Vehicle().Receivers()))
	}
}

func TestLoadSceneFromURLRejectsNonOKStatus(t *testing.T) {
	client := httputil.NewMockHTTPClient().AddResponse(http.StatusNotFound, "")

	if _, err := LoadSceneFromURL(client, "https://example.invalid/missing.json"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
