package entity

// Product is one catalog item. Prices are display strings, as shipped in
// the storefront data.
type Product struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImagePath string `json:"imagePath"`
}
