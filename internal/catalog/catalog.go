package catalog

import "github.com/shopspring/decimal"

// 商品カタログ。マスタは静的データで、在庫・価格の動的管理はしない。
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

var products = []Product{
	{
		ID:          "bike-1",
		Name:        "Trail Master Pro",
		Price:       decimal.NewFromFloat(2499.99),
		Category:    "Trail",
		Image:       "/products/bike-1.jpg",
		Description: "Advanced trail bike with full suspension and modern geometry",
	},
	{
		ID:          "bike-2",
		Name:        "Enduro Beast",
		Price:       decimal.NewFromFloat(3299.99),
		Category:    "Enduro",
		Image:       "/products/bike-2.jpg",
		Description: "Built for aggressive riding and technical descents",
	},
	{
		ID:          "bike-3",
		Name:        "XC Rocket",
		Price:       decimal.NewFromFloat(1899.99),
		Category:    "Cross Country",
		Image:       "/products/bike-3.jpg",
		Description: "Lightweight and fast for cross-country racing and trails",
	},
	{
		ID:          "bike-4",
		Name:        "Downhill Demon",
		Price:       decimal.NewFromFloat(4499.99),
		Category:    "Downhill",
		Image:       "/products/bike-4.jpg",
		Description: "Professional grade downhill bike for extreme terrain",
	},
	{
		ID:          "part-1",
		Name:        "Fox 36 Factory Fork",
		Price:       decimal.NewFromFloat(999.99),
		Category:    "Suspension",
		Image:       "/products/parts-1.jpg",
		Description: "Premium fork with GRIP2 damper for aggressive trail riding",
	},
	{
		ID:          "part-2",
		Name:        "SRAM XX1 Eagle Drivetrain",
		Price:       decimal.NewFromFloat(799.99),
		Category:    "Drivetrain",
		Image:       "/products/parts-2.jpg",
		Description: "Top-tier 12-speed drivetrain for flawless shifting",
	},
	{
		ID:          "part-3",
		Name:        "RockShox Super Deluxe Ultimate",
		Price:       decimal.NewFromFloat(599.99),
		Category:    "Suspension",
		Image:       "/products/parts-1.jpg",
		Description: "Rear shock with adjustable compression damping",
	},
	{
		ID:          "part-4",
		Name:        "Shimano XTR M9100 Brakes",
		Price:       decimal.NewFromFloat(449.99),
		Category:    "Brakes",
		Image:       "/products/parts-2.jpg",
		Description: "Race-proven hydraulic disc brakes with light lever action",
	},
}

// Allはカタログ全件のコピーを返す。
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// FindByIDはIDで1件探す。無ければfalse。
func FindByID(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ListByCategoryはカテゴリで絞り込む。空文字は全件。
func ListByCategory(category string) []Product {
	if category == "" || category == "All" {
		return All()
	}
	out := []Product{}
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
