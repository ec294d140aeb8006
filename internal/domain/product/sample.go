package product

import "time"

// SampleProducts returns the built-in catalog served when the product
// database cannot be reached, and seeded in development.
func SampleProducts() []Product {
	base := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	return []Product{
		{
			ID:                      "sample-1",
			SellerID:                "sample-seller-1",
			SellerName:              "Priya Sharma",
			Name:                    "Handcrafted Ceramic Vase",
			Description:             "Beautiful handmade ceramic vase with traditional patterns",
			ImageURL:                "https://images.pexels.com/photos/5553045/pexels-photo-5553045.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:                   1299,
			Category:                "Home Decor",
			City:                    "Mumbai",
			InstantDeliveryEligible: true,
			Status:                  StatusApproved,
			Tags:                    "handmade,ceramic,home-decor",
			CreatedAt:               base.Add(72 * time.Hour),
			UpdatedAt:               base.Add(72 * time.Hour),
		},
		{
			ID:                      "sample-2",
			SellerID:                "sample-seller-2",
			SellerName:              "Ravi Kumar",
			Name:                    "Artisan Soy Candles",
			Description:             "Natural soy candles with essential oils",
			ImageURL:                "https://images.pexels.com/photos/5624983/pexels-photo-5624983.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:                   599,
			Category:                "Candles",
			City:                    "Mumbai",
			InstantDeliveryEligible: true,
			Status:                  StatusApproved,
			Tags:                    "handmade,candles,natural",
			CreatedAt:               base.Add(48 * time.Hour),
			UpdatedAt:               base.Add(48 * time.Hour),
		},
		{
			ID:                      "sample-3",
			SellerID:                "sample-seller-3",
			SellerName:              "Meera Patel",
			Name:                    "Handwoven Textile Art",
			Description:             "Traditional handwoven textile with intricate patterns",
			ImageURL:                "https://images.pexels.com/photos/6195121/pexels-photo-6195121.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:                   2499,
			Category:                "Textiles",
			City:                    "Mumbai",
			InstantDeliveryEligible: false,
			Status:                  StatusApproved,
			Tags:                    "handmade,textiles,traditional",
			CreatedAt:               base.Add(24 * time.Hour),
			UpdatedAt:               base.Add(24 * time.Hour),
		},
		{
			ID:                      "sample-4",
			SellerID:                "sample-seller-4",
			SellerName:              "Arjun Singh",
			Name:                    "Wooden Jewelry Box",
			Description:             "Handcrafted wooden jewelry box with carved details",
			ImageURL:                "https://images.pexels.com/photos/1030303/pexels-photo-1030303.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:                   899,
			Category:                "Jewelry",
			City:                    "Delhi",
			InstantDeliveryEligible: false,
			Status:                  StatusApproved,
			Tags:                    "handmade,wood,jewelry",
			CreatedAt:               base,
			UpdatedAt:               base,
		},
	}
}
