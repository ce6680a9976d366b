package stubapi

import "storefront-client/internal/domain"

func euro(cents int64) []domain.Price {
	return []domain.Price{{
		Value: domain.Money{Type: "centPrecision", CurrencyCode: "EUR", CentAmount: cents, FractionDigits: 2},
	}}
}

// fixtureProducts is the default seeded catalog.
func fixtureProducts() []domain.ProductProjection {
	return []domain.ProductProjection{
		{
			ID:            "prod-espresso",
			Name:          domain.LocalizedString{"en": "Espresso Cup"},
			Slug:          domain.LocalizedString{"en": "espresso-cup"},
			MasterVariant: domain.Variant{ID: 1, SKU: "ESP-01", Prices: euro(1250)},
		},
		{
			ID:            "prod-grinder",
			Name:          domain.LocalizedString{"en": "Burr Grinder"},
			Slug:          domain.LocalizedString{"en": "burr-grinder"},
			MasterVariant: domain.Variant{ID: 1, SKU: "GRD-01", Prices: euro(8900)},
			Variants:      []domain.Variant{{ID: 2, SKU: "GRD-02", Prices: euro(10900)}},
		},
		{
			ID:            "prod-kettle",
			Name:          domain.LocalizedString{"en": "Gooseneck Kettle"},
			Slug:          domain.LocalizedString{"en": "gooseneck-kettle"},
			MasterVariant: domain.Variant{ID: 1, SKU: "KTL-01", Prices: euro(4500)},
		},
	}
}

// fixtureCategories is the default seeded category tree.
func fixtureCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-brewing", Key: "brewing", Name: domain.LocalizedString{"en": "Brewing"}, Slug: domain.LocalizedString{"en": "brewing"}},
		{ID: "cat-tableware", Key: "tableware", Name: domain.LocalizedString{"en": "Tableware"}, Slug: domain.LocalizedString{"en": "tableware"}},
	}
}
