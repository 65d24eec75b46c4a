package sales

// RevenueStrategy computes line-item revenue from a purchase item and its
// product record. Implementations must be free of side effects; the
// product argument may go unused but stays part of the contract so
// cost-aware strategies can be plugged in.
type RevenueStrategy interface {
	CalculateRevenue(item PurchaseItem, product Product) float64
}

// RevenueFunc adapts a plain function to the RevenueStrategy interface.
type RevenueFunc func(item PurchaseItem, product Product) float64

// CalculateRevenue calls the underlying function.
func (f RevenueFunc) CalculateRevenue(item PurchaseItem, product Product) float64 {
	return f(item, product)
}

// SimpleRevenue computes gross revenue as sale price times quantity,
// reduced by the discount percentage. Discounts outside [0,100] are not
// clamped: a negative discount inflates revenue and a discount above 100
// yields a negative result.
func SimpleRevenue(item PurchaseItem, _ Product) float64 {
	fullPrice := item.SalePrice * float64(item.Quantity)
	discountDecimal := item.Discount / 100
	return fullPrice * (1 - discountDecimal)
}
