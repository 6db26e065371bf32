package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"lemongrove/internal/domain"
)

// pkrFactor converts the shop's USD list prices into rupees.
var pkrFactor = decimal.NewFromInt(200)

type productSeed struct {
	ID          int
	Name        string
	USDPrice    string
	Category    string
	Stock       int
	Description string
	Image       string
}

var catalog = []productSeed{
	{
		ID:          1,
		Name:        "Organic Lemons (1 kg)",
		USDPrice:    "4.99",
		Category:    "fresh",
		Stock:       15,
		Description: "Freshly picked organic lemons from our sun-drenched groves.",
		Image:       "https://images.pexels.com/photos/2295248/pexels-photo-2295248.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          2,
		Name:        "Cold Pressed Juice (500ml)",
		USDPrice:    "6.49",
		Category:    "drinks",
		Stock:       8,
		Description: "Pure, unadulterated lemon juice with no added sugar or preservatives.",
		Image:       "https://images.pexels.com/photos/96974/pexels-photo-96974.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          3,
		Name:        "Meyer Lemon Tree (1ft)",
		USDPrice:    "19.99",
		Category:    "plants",
		Stock:       4,
		Description: "A hardy, young Meyer lemon tree perfect for indoor or outdoor pots.",
		Image:       "https://images.pexels.com/photos/158053/lemons-tree-lemon-fruit-158053.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          4,
		Name:        "Lemon Gift Crate",
		USDPrice:    "29.99",
		Category:    "gifts",
		Stock:       6,
		Description: "A curated selection of our finest lemon products in a rustic wooden crate.",
		Image:       "https://images.pexels.com/photos/5591663/pexels-photo-5591663.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          5,
		Name:        "Dried Lemon Wheels (50g)",
		USDPrice:    "8.99",
		Category:    "preserved",
		Stock:       12,
		Description: "Slow-dried lemon slices, perfect for garnishing drinks or baking.",
		Image:       "https://images.pexels.com/photos/4192803/pexels-photo-4192803.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          6,
		Name:        "Lemon Blossom Honey (250g)",
		USDPrice:    "12.49",
		Category:    "food",
		Stock:       7,
		Description: "Rare honey harvested from bees that pollinate our lemon blossoms.",
		Image:       "https://images.pexels.com/photos/634365/pexels-photo-634365.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          7,
		Name:        "Lemon Curd (200g Jar)",
		USDPrice:    "7.99",
		Category:    "food",
		Stock:       10,
		Description: "Velvety smooth and tangy lemon curd made with fresh eggs and butter.",
		Image:       "https://images.pexels.com/photos/1395963/pexels-photo-1395963.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          8,
		Name:        "Handmade Lemon Soap",
		USDPrice:    "14.99",
		Category:    "gifts",
		Stock:       5,
		Description: "Artisanal soap bars infused with real lemon essential oils.",
		Image:       "https://images.pexels.com/photos/4465124/pexels-photo-4465124.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
	{
		ID:          9,
		Name:        "Fresh Lemon Leaves",
		USDPrice:    "3.99",
		Category:    "fresh",
		Stock:       20,
		Description: "Aromatic leaves for cooking, tea, or decorative garnishing.",
		Image:       "https://images.pexels.com/photos/61127/pexels-photo-61127.jpeg?auto=compress&cs=tinysrgb&w=600",
	},
}

// Products returns a fresh copy of the built-in catalog.
func Products() []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       decimal.RequireFromString(p.USDPrice).Mul(pkrFactor),
			Category:    p.Category,
			Stock:       p.Stock,
			Description: p.Description,
			Image:       p.Image,
		})
	}
	return out
}

// Discounts returns the static promotional code registry.
func Discounts() []domain.DiscountCode {
	return []domain.DiscountCode{
		{Code: "LEMON10", Percent: 10},
		{Code: "FRESH20", Percent: 20},
		{Code: "CITRUS5", Percent: 5},
	}
}

// CatalogWriter persists the whole catalog.
type CatalogWriter interface {
	Stored(ctx context.Context) (bool, error)
	SaveAll(ctx context.Context, products []domain.Product) error
}

// ErrCatalogPresent is returned by Apply when a catalog exists and force is false.
var ErrCatalogPresent = fmt.Errorf("catalog already stored: %w", domain.ErrAlreadyExists)

// Apply writes the seed catalog. An existing catalog is only replaced when force is set.
func Apply(ctx context.Context, repo CatalogWriter, force bool) error {
	if !force {
		stored, err := repo.Stored(ctx)
		if err != nil {
			return fmt.Errorf("check catalog: %w", err)
		}
		if stored {
			return ErrCatalogPresent
		}
	}
	if err := repo.SaveAll(ctx, Products()); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
