package domain

import "fmt"

// Price is a priced amount attached to a variant.
type Price struct {
	ID    string `json:"id,omitempty"`
	Value Money  `json:"value"`
}

// Image is a variant image reference.
type Image struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Variant is one purchasable variant of a product.
type Variant struct {
	ID     int     `json:"id"`
	SKU    string  `json:"sku,omitempty"`
	Prices []Price `json:"prices,omitempty"`
	Images []Image `json:"images,omitempty"`
}

// ProductProjection is the catalog view of a published product.
type ProductProjection struct {
	ID            string          `json:"id"`
	Name          LocalizedString `json:"name"`
	Slug          LocalizedString `json:"slug,omitempty"`
	Description   LocalizedString `json:"description,omitempty"`
	MasterVariant Variant         `json:"masterVariant"`
	Variants      []Variant       `json:"variants,omitempty"`
}

// Validate checks the shape of a single product projection.
func (p *ProductProjection) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product projection: id missing")
	}
	if len(p.Name) == 0 {
		return fmt.Errorf("product projection %s: name missing", p.ID)
	}
	return nil
}

// ProductPage is a paged product-projection query result.
type ProductPage struct {
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
	Count   int                 `json:"count"`
	Total   int                 `json:"total"`
	Results []ProductProjection `json:"results"`
}

// Validate checks the page envelope and every contained projection.
func (p *ProductPage) Validate() error {
	if p.Count != len(p.Results) {
		return fmt.Errorf("product page: count %d does not match %d results", p.Count, len(p.Results))
	}
	for i := range p.Results {
		if err := p.Results[i].Validate(); err != nil {
			return fmt.Errorf("product page result %d: %w", i, err)
		}
	}
	return nil
}

// Category is a catalog category node.
type Category struct {
	ID   string          `json:"id"`
	Key  string          `json:"key,omitempty"`
	Name LocalizedString `json:"name"`
	Slug LocalizedString `json:"slug,omitempty"`
}

// CategoryPage is a paged category query result.
type CategoryPage struct {
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
	Results []Category `json:"results"`
}

// Validate checks the page envelope and contained categories.
func (p *CategoryPage) Validate() error {
	if p.Count != len(p.Results) {
		return fmt.Errorf("category page: count %d does not match %d results", p.Count, len(p.Results))
	}
	for i, c := range p.Results {
		if c.ID == "" {
			return fmt.Errorf("category page result %d: id missing", i)
		}
	}
	return nil
}
