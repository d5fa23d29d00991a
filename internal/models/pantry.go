package models

// PantryItem represents a tracked perishable item in the pantry
type PantryItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ExpiryDate string `json:"expiry_date"`
	Quantity   string `json:"quantity"`
	Category   string `json:"category"`
	AddedDate  string `json:"added_date"`
}

// ItemUpdate is a partial update applied to an existing pantry item.
// Nil fields are left untouched.
type ItemUpdate struct {
	Name       *string `json:"name,omitempty"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	Quantity   *string `json:"quantity,omitempty"`
	Category   *string `json:"category,omitempty"`
}

// ExpiringItem is a pantry item annotated with the number of days
// remaining until its expiry date, computed at query time.
type ExpiringItem struct {
	PantryItem
	DaysLeft int `json:"days_left"`
}

// ExpiredItem is a pantry item annotated with the number of days
// since its expiry date passed, computed at query time.
type ExpiredItem struct {
	PantryItem
	DaysExpired int `json:"days_expired"`
}

// PantryCategory represents the category of a pantry item
type PantryCategory string

const (
	// Pantry categories
	CategoryFruits     PantryCategory = "Fruits"
	CategoryVegetables PantryCategory = "Vegetables"
	CategoryDairy      PantryCategory = "Dairy"
	CategoryMeat       PantryCategory = "Meat"
	CategorySeafood    PantryCategory = "Seafood"
	CategoryGrains     PantryCategory = "Grains"
	CategoryFrozen     PantryCategory = "Frozen"
	CategoryOther      PantryCategory = "Other"
)
