package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server) *ApiClient {
	return &ApiClient{
		httpClient: &http.Client{Timeout: time.Second},
		BaseURL:    server.URL,
	}
}

func TestGenerateRecipeDecodesServerResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/recipes/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Tomato Basil Pasta",
			"prep_time": 25,
			"servings": 4,
			"ingredients": ["pasta", "tomatoes", "basil"],
			"instructions": ["Boil pasta", "Add sauce"],
			"tips": "Keeps for three days refrigerated."
		}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	recipe, err := client.GenerateRecipe([]string{"pasta", "tomatoes"}, nil, false)
	if err != nil {
		t.Fatalf("GenerateRecipe failed: %v", err)
	}

	if recipe.Title != "Tomato Basil Pasta" {
		t.Errorf("unexpected title: %s", recipe.Title)
	}
	if recipe.Tips != "Keeps for three days refrigerated." {
		t.Errorf("unexpected tips: %s", recipe.Tips)
	}
	if len(recipe.Instructions) != 2 {
		t.Errorf("expected 2 instructions, got %d", len(recipe.Instructions))
	}
}

func TestGenerateRecipeDecodesDegradedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Recipe Generation Failed",
			"prep_time": 0,
			"servings": 0,
			"ingredients": [],
			"instructions": ["Error: service unavailable", "Please try again later."],
			"tips": "This feature is currently unavailable. Please check your API key and billing status."
		}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	recipe, err := client.GenerateRecipe([]string{"eggs"}, nil, false)
	if err != nil {
		t.Fatalf("GenerateRecipe failed: %v", err)
	}

	if recipe.PrepTime != 0 || recipe.Servings != 0 {
		t.Errorf("expected degenerate recipe, got prep=%d servings=%d", recipe.PrepTime, recipe.Servings)
	}
	if recipe.Tips == "" {
		t.Error("expected the service message in tips")
	}
}
