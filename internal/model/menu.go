package model

// MenuItem is one entry of the in-seat snack catalog.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// MenuCategories lists catalog sections in display order.
var MenuCategories = []string{"Popcorn", "Beverages", "Snacks", "Combos"}

// Halls lists the halls a customer can order to.
var Halls = []string{"Hall 1", "Hall 2", "Hall 3", "Hall 4", "Hall 5"}

// Menu is the static snack catalog. Prices are in RM and are copied into
// order items at checkout, so later catalog edits never change the total
// of an existing order.
var Menu = []MenuItem{
	{ID: "pop-s", Name: "Small Popcorn", Description: "Perfect single serving", Price: 8.90, Category: "Popcorn"},
	{ID: "pop-m", Name: "Medium Popcorn", Description: "Great for sharing", Price: 12.90, Category: "Popcorn"},
	{ID: "pop-l", Name: "Large Popcorn", Description: "Family size portion", Price: 16.90, Category: "Popcorn"},
	{ID: "pop-c", Name: "Caramel Popcorn", Description: "Sweet caramel coating", Price: 14.90, Category: "Popcorn"},

	{ID: "coke", Name: "Coca-Cola", Description: "Classic refreshment", Price: 6.90, Category: "Beverages"},
	{ID: "sprite", Name: "Sprite", Description: "Lemon-lime soda", Price: 6.90, Category: "Beverages"},
	{ID: "coffee", Name: "Hot Coffee", Description: "Freshly brewed", Price: 8.90, Category: "Beverages"},
	{ID: "water", Name: "Mineral Water", Description: "500ml bottle", Price: 4.90, Category: "Beverages"},

	{ID: "nachos", Name: "Nachos & Cheese", Description: "Crispy tortilla chips", Price: 11.90, Category: "Snacks"},
	{ID: "hotdog", Name: "Cinema Hot Dog", Description: "Classic frankfurter", Price: 9.90, Category: "Snacks"},
	{ID: "candy", Name: "Mixed Candy", Description: "Assorted sweets", Price: 7.90, Category: "Snacks"},

	{ID: "combo1", Name: "Movie Night Combo", Description: "Medium popcorn + 2 drinks", Price: 22.90, Category: "Combos"},
	{ID: "combo2", Name: "Sweet Tooth Combo", Description: "Caramel popcorn + candy", Price: 19.90, Category: "Combos"},
}

// MenuItemByID looks an item up in the catalog.
func MenuItemByID(id string) (MenuItem, bool) {
	for _, it := range Menu {
		if it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}
