package repository

import (
	"shopfront/internal/domain"

	"github.com/google/uuid"
)

// productNamespace derives stable product IDs from product names so that
// carts persisted outside the process keep resolving across restarts.
var productNamespace = uuid.MustParse("6f1c2a8e-4b7d-4e0a-9c53-2d8f1e7b9a40")

// ProductID returns the catalog ID for a seeded product name
func ProductID(name string) uuid.UUID {
	return uuid.NewSHA1(productNamespace, []byte(name))
}

// SeedProducts returns the catalog loaded at process start
func SeedProducts() []domain.Product {
	products := []domain.Product{
		{
			Name:        "Wireless Headphones",
			Description: "Premium wireless headphones with noise cancellation and superior sound quality",
			Price:       199.99,
			Image:       "https://images.unsplash.com/photo-1498049794561-7780e7231661",
			Category:    "Electronics",
			Stock:       50,
		},
		{
			Name:        "Athletic Sneakers",
			Description: "Comfortable and stylish athletic shoes perfect for running and daily wear",
			Price:       129.99,
			Image:       "https://images.unsplash.com/photo-1560769629-975ec94e6a86",
			Category:    "Fashion",
			Stock:       30,
		},
		{
			Name:        "Modern Office Chair",
			Description: "Ergonomic office chair with premium comfort and adjustable features",
			Price:       299.99,
			Image:       "https://images.unsplash.com/photo-1579656592043-a20e25a4aa4b",
			Category:    "Furniture",
			Stock:       25,
		},
		{
			Name:        "Desktop Computer Setup",
			Description: "Complete desktop workstation with high-performance components",
			Price:       1299.99,
			Image:       "https://images.pexels.com/photos/356056/pexels-photo-356056.jpeg",
			Category:    "Computers",
			Stock:       15,
		},
		{
			Name:        "Fashion Accessories Set",
			Description: "Curated collection of stylish fashion accessories",
			Price:       79.99,
			Image:       "https://images.unsplash.com/photo-1492707892479-7bc8d5a4ee93",
			Category:    "Fashion",
			Stock:       40,
		},
		{
			Name:        "Home Decor Collection",
			Description: "Beautiful home decor items to enhance your living space",
			Price:       159.99,
			Image:       "https://images.unsplash.com/photo-1496180727794-817822f65950",
			Category:    "Home",
			Stock:       35,
		},
		{
			Name:        "Arduino Development Kit",
			Description: "Complete Arduino starter kit for electronics projects and learning",
			Price:       89.99,
			Image:       "https://images.unsplash.com/photo-1603732551658-5fabbafa84eb",
			Category:    "Electronics",
			Stock:       60,
		},
		{
			Name:        "Lifestyle Products Bundle",
			Description: "Carefully selected lifestyle products for modern living",
			Price:       249.99,
			Image:       "https://images.unsplash.com/photo-1511556820780-d912e42b4980",
			Category:    "Lifestyle",
			Stock:       20,
		},
		{
			Name:        "Beauty Essentials",
			Description: "Premium beauty products for your daily routine",
			Price:       119.99,
			Image:       "https://images.pexels.com/photos/32497344/pexels-photo-32497344.jpeg",
			Category:    "Beauty",
			Stock:       45,
		},
		{
			Name:        "Home Organization Set",
			Description: "Complete home organization solution for better living",
			Price:       179.99,
			Image:       "https://images.pexels.com/photos/3735219/pexels-photo-3735219.jpeg",
			Category:    "Home",
			Stock:       30,
		},
	}

	for i := range products {
		products[i].ID = ProductID(products[i].Name)
	}
	return products
}
