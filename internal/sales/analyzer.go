package sales

import (
	"math"
	"sort"
)

// topProductLimit caps how many best-selling SKUs a report row carries.
const topProductLimit = 10

// Options carries the strategies injected into Analyze.
type Options struct {
	CalculateRevenue RevenueStrategy
	CalculateBonus   BonusStrategy
}

// Analyze computes per-seller performance statistics from raw transaction
// data in a single pass. Every input seller produces exactly one output
// record; records referencing unknown sellers are skipped whole, items
// referencing unknown SKUs are skipped individually. The result is sorted
// by profit descending and that order drives bonus ranking.
func Analyze(input AnalyzeInput, opts *Options) ([]Record, error) {
	if len(input.Sellers) == 0 || len(input.Products) == 0 || len(input.PurchaseRecords) == 0 {
		return nil, ErrInvalidInput
	}
	if opts == nil {
		return nil, ErrMissingOptions
	}
	if opts.CalculateRevenue == nil || opts.CalculateBonus == nil {
		return nil, ErrMissingStrategy
	}

	stats := make([]*SellerStat, 0, len(input.Sellers))
	for _, seller := range input.Sellers {
		stats = append(stats, &SellerStat{
			SellerID:     seller.ID,
			Name:         seller.FirstName + " " + seller.LastName,
			ProductsSold: make(map[string]int),
		})
	}

	// Last write wins on duplicate ids, mirroring plain map construction.
	sellerIndex := make(map[string]*SellerStat, len(stats))
	for _, stat := range stats {
		sellerIndex[stat.SellerID] = stat
	}
	productIndex := make(map[string]Product, len(input.Products))
	for _, product := range input.Products {
		productIndex[product.SKU] = product
	}

	for _, record := range input.PurchaseRecords {
		seller, ok := sellerIndex[record.SellerID]
		if !ok {
			continue
		}
		seller.SalesCount++

		for _, item := range record.Items {
			product, ok := productIndex[item.SKU]
			if !ok {
				continue
			}
			cost := product.PurchasePrice * float64(item.Quantity)
			revenue := opts.CalculateRevenue.CalculateRevenue(item, product)
			seller.Revenue += revenue
			seller.Profit += revenue - cost
			seller.addSold(item.SKU, item.Quantity)
		}
	}

	ranked := make([]*SellerStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit > ranked[j].Profit
	})

	records := make([]Record, 0, len(ranked))
	for rank, seller := range ranked {
		bonus := opts.CalculateBonus.CalculateBonus(rank, len(ranked), *seller)

		seller.Revenue = round2(seller.Revenue)
		seller.Profit = round2(seller.Profit)

		records = append(records, Record{
			SellerID:    seller.SellerID,
			Name:        seller.Name,
			Revenue:     seller.Revenue,
			Profit:      seller.Profit,
			SalesCount:  seller.SalesCount,
			TopProducts: topProducts(seller),
			Bonus:       round2(bonus),
		})
	}
	return records, nil
}

// topProducts ranks a seller's SKUs by cumulative quantity. The sort is
// stable over first-seen SKU order so ties resolve deterministically.
func topProducts(seller *SellerStat) []TopProduct {
	products := make([]TopProduct, 0, len(seller.skuOrder))
	for _, sku := range seller.skuOrder {
		products = append(products, TopProduct{SKU: sku, Quantity: seller.ProductsSold[sku]})
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})
	if len(products) > topProductLimit {
		products = products[:topProductLimit]
	}
	return products
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
