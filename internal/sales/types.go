package sales

// Seller identifies a person who sells products.
type Seller struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Product is a catalog item with its cost price.
type Product struct {
	SKU           string  `json:"sku"`
	PurchasePrice float64 `json:"purchase_price"`
}

// PurchaseItem is one line of a purchase record. Discount is a percentage
// in [0,100]; out-of-range values are passed through to the revenue
// strategy unclamped.
type PurchaseItem struct {
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	SalePrice float64 `json:"sale_price"`
	Discount  float64 `json:"discount"`
}

// PurchaseRecord is one transaction by one seller.
type PurchaseRecord struct {
	SellerID string         `json:"seller_id"`
	Items    []PurchaseItem `json:"items"`
}

// AnalyzeInput groups the three collections consumed by Analyze.
type AnalyzeInput struct {
	Sellers         []Seller         `json:"sellers"`
	Products        []Product        `json:"products"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records"`
}

// SellerStat accumulates one seller's totals during a single analysis run.
// ProductsSold maps SKU to cumulative quantity; skuOrder remembers the
// order SKUs were first seen so top-product ties resolve deterministically.
type SellerStat struct {
	SellerID     string
	Name         string
	Revenue      float64
	Profit       float64
	SalesCount   int
	ProductsSold map[string]int

	skuOrder []string
}

func (s *SellerStat) addSold(sku string, quantity int) {
	if _, ok := s.ProductsSold[sku]; !ok {
		s.skuOrder = append(s.skuOrder, sku)
	}
	s.ProductsSold[sku] += quantity
}

// TopProduct is one entry of a seller's best-selling SKUs.
type TopProduct struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Record is the final per-seller report row. Revenue, Profit and Bonus
// are rounded to two decimal places.
type Record struct {
	SellerID    string       `json:"seller_id"`
	Name        string       `json:"name"`
	Revenue     float64      `json:"revenue"`
	Profit      float64      `json:"profit"`
	SalesCount  int          `json:"sales_count"`
	TopProducts []TopProduct `json:"top_products"`
	Bonus       float64      `json:"bonus"`
}
