package catalog

// Option is a label/value pair offered to the shopper
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Categories lists the storefront categories, "all" first
func Categories() []string {
	return []string{
		AllCategories,
		"Home Decor",
		"Candles",
		"Textiles",
		"Jewelry",
		"Art & Crafts",
		"Fashion",
		"Books",
	}
}

// PriceRanges lists the price range presets
func PriceRanges() []Option {
	return []Option{
		{Label: "All Prices", Value: "all"},
		{Label: "Under ₹500", Value: "0-500"},
		{Label: "₹500 - ₹1000", Value: "500-1000"},
		{Label: "₹1000 - ₹2500", Value: "1000-2500"},
		{Label: "₹2500 - ₹5000", Value: "2500-5000"},
		{Label: "Above ₹5000", Value: "5000+"},
	}
}

// SortOptions lists the supported orderings
func SortOptions() []Option {
	return []Option{
		{Label: "Newest First", Value: string(SortNewest)},
		{Label: "Price: Low to High", Value: string(SortPriceAsc)},
		{Label: "Price: High to Low", Value: string(SortPriceDesc)},
		{Label: "Most Popular", Value: string(SortPopularity)},
	}
}
