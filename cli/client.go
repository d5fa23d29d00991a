package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the SmartChef API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("SMARTCHEF_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 90,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := http.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Recipe mirrors the server's recipe payload
type Recipe struct {
	Title        string   `json:"title"`
	PrepTime     int      `json:"prep_time"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         string   `json:"tips"`
	Cuisine      string   `json:"cuisine,omitempty"`
}

// PantryItem mirrors the server's pantry item payload
type PantryItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ExpiryDate string `json:"expiry_date"`
	Quantity   string `json:"quantity"`
	Category   string `json:"category"`
	AddedDate  string `json:"added_date"`
}

// ExpiringItem is a pantry item with its days-left counter
type ExpiringItem struct {
	PantryItem
	DaysLeft int `json:"days_left"`
}

// ExpiredItem is a pantry item with its days-expired counter
type ExpiredItem struct {
	PantryItem
	DaysExpired int `json:"days_expired"`
}

// PreferenceSummary mirrors the server's preference summary
type PreferenceSummary struct {
	DietaryPreferences  []string `json:"dietary_preferences"`
	FavoriteIngredients []string `json:"favorite_ingredients"`
	DislikedIngredients []string `json:"disliked_ingredients"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
}

// GenerateRecipe requests a recipe for the given ingredients
func (c *ApiClient) GenerateRecipe(ingredients, dietary []string, usePreferences bool) (*Recipe, error) {
	if c.UseMock {
		return c.mockRecipe(ingredients), nil
	}

	payload := map[string]interface{}{
		"ingredients":     ingredients,
		"dietary":         dietary,
		"use_preferences": usePreferences,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/recipes/generate", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to generate recipe: %s", string(body))
	}

	var recipe Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetWasteTips requests waste reduction tips for the given ingredients
func (c *ApiClient) GetWasteTips(ingredients []string) ([]string, error) {
	if c.UseMock {
		return []string{
			"Store herbs stem-down in a glass of water",
			"Freeze overripe bananas for smoothies",
		}, nil
	}

	data, err := json.Marshal(map[string]interface{}{"ingredients": ingredients})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/recipes/tips", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get tips with status code: %d", resp.StatusCode)
	}

	var result struct {
		Tips []string `json:"tips"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Tips, nil
}

// GetPantryItems retrieves every tracked pantry item
func (c *ApiClient) GetPantryItems() ([]PantryItem, error) {
	if c.UseMock {
		return c.mockPantry(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/pantry/items")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get pantry items with status code: %d", resp.StatusCode)
	}

	var result struct {
		Items []PantryItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// AddPantryItem registers a new pantry item
func (c *ApiClient) AddPantryItem(name, expiryDate, quantity, category string) (*PantryItem, error) {
	if c.UseMock {
		return &PantryItem{ID: 1, Name: name, ExpiryDate: expiryDate, Quantity: quantity, Category: category}, nil
	}

	data, err := json.Marshal(map[string]string{
		"name":        name,
		"expiry_date": expiryDate,
		"quantity":    quantity,
		"category":    category,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/pantry/items", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to add pantry item: %s", string(body))
	}

	var item PantryItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemovePantryItem deletes a pantry item by ID
func (c *ApiClient) RemovePantryItem(id int) error {
	if c.UseMock {
		return nil
	}

	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/api/v1/pantry/items/%d", c.BaseURL, id), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// GetExpiringItems retrieves items expiring within the given window
func (c *ApiClient) GetExpiringItems(days int) ([]ExpiringItem, error) {
	if c.UseMock {
		return []ExpiringItem{
			{PantryItem: PantryItem{ID: 1, Name: "Milk", ExpiryDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"), Category: "Dairy"}, DaysLeft: 2},
			{PantryItem: PantryItem{ID: 2, Name: "Spinach", ExpiryDate: time.Now().AddDate(0, 0, 4).Format("2006-01-02"), Category: "Vegetables"}, DaysLeft: 4},
		}, nil
	}

	resp, err := c.httpClient.Get(fmt.Sprintf("%s/api/v1/pantry/expiring?days=%d", c.BaseURL, days))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get expiring items with status code: %d", resp.StatusCode)
	}

	var result struct {
		Items []ExpiringItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetExpiredItems retrieves items already past their expiry date
func (c *ApiClient) GetExpiredItems() ([]ExpiredItem, error) {
	if c.UseMock {
		return []ExpiredItem{
			{PantryItem: PantryItem{ID: 3, Name: "Yogurt", ExpiryDate: time.Now().AddDate(0, 0, -3).Format("2006-01-02"), Category: "Dairy"}, DaysExpired: 3},
		}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/pantry/expired")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get expired items with status code: %d", resp.StatusCode)
	}

	var result struct {
		Items []ExpiredItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetPreferenceSummary retrieves the stored preference profile
func (c *ApiClient) GetPreferenceSummary() (*PreferenceSummary, error) {
	if c.UseMock {
		return &PreferenceSummary{
			DietaryPreferences:  []string{"Vegetarian"},
			FavoriteIngredients: []string{"garlic", "basil"},
			CuisinePreferences:  []string{"Italian", "Thai"},
		}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/preferences/summary")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get preferences with status code: %d", resp.StatusCode)
	}

	var summary PreferenceSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetDietaryPreferences replaces the stored dietary tags
func (c *ApiClient) SetDietaryPreferences(tags []string) error {
	if c.UseMock {
		return nil
	}

	data, err := json.Marshal(map[string][]string{"tags": tags})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", c.BaseURL+"/api/v1/preferences/dietary", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to set dietary preferences: %s", string(body))
	}
	return nil
}

// Mock data generators
// mockRecipe generates a plausible recipe without a server
func (c *ApiClient) mockRecipe(ingredients []string) *Recipe {
	title := "Simple Skillet Dinner"
	if len(ingredients) > 0 {
		title = fmt.Sprintf("Simple %s Skillet", ingredients[0])
	}
	return &Recipe{
		Title:       title,
		PrepTime:    25,
		Servings:    2,
		Ingredients: ingredients,
		Instructions: []string{
			"Heat a large skillet over medium heat.",
			"Add the ingredients in order of cooking time.",
			"Season to taste and serve hot.",
		},
		Tips: "Leftovers keep for three days refrigerated.",
	}
}

// mockPantry generates mock pantry data
func (c *ApiClient) mockPantry() []PantryItem {
	today := time.Now()
	return []PantryItem{
		{ID: 1, Name: "Milk", ExpiryDate: today.AddDate(0, 0, 2).Format("2006-01-02"), Quantity: "1L", Category: "Dairy"},
		{ID: 2, Name: "Spinach", ExpiryDate: today.AddDate(0, 0, 4).Format("2006-01-02"), Quantity: "200g", Category: "Vegetables"},
		{ID: 3, Name: "Chicken Breast", ExpiryDate: today.AddDate(0, 0, 1).Format("2006-01-02"), Quantity: "500g", Category: "Meat"},
	}
}
