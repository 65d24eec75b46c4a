package sales

// BonusStrategy computes a seller's bonus from its zero-based rank in a
// list sorted by profit descending.
type BonusStrategy interface {
	CalculateBonus(rank, total int, seller SellerStat) float64
}

// BonusFunc adapts a plain function to the BonusStrategy interface.
type BonusFunc func(rank, total int, seller SellerStat) float64

// CalculateBonus calls the underlying function.
func (f BonusFunc) CalculateBonus(rank, total int, seller SellerStat) float64 {
	return f(rank, total, seller)
}

// ProfitRankBonus awards 15% of profit to the top seller, 10% to ranks
// one and two, nothing to the last place and 5% to everyone else. The
// rank-zero branch is checked before the last-place branch so a sole
// seller gets the top bonus rather than zero.
func ProfitRankBonus(rank, total int, seller SellerStat) float64 {
	switch {
	case rank == 0:
		return seller.Profit * 0.15
	case rank == 1 || rank == 2:
		return seller.Profit * 0.10
	case rank == total-1:
		return 0
	default:
		return seller.Profit * 0.05
	}
}
