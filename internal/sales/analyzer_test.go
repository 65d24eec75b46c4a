package sales

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func defaultOptions() *Options {
	return &Options{
		CalculateRevenue: RevenueFunc(SimpleRevenue),
		CalculateBonus:   BonusFunc(ProfitRankBonus),
	}
}

func validInput() AnalyzeInput {
	return AnalyzeInput{
		Sellers:  []Seller{{ID: "1", FirstName: "A", LastName: "B"}},
		Products: []Product{{SKU: "X", PurchasePrice: 5}},
		PurchaseRecords: []PurchaseRecord{{
			SellerID: "1",
			Items:    []PurchaseItem{{SKU: "X", Quantity: 2, SalePrice: 10, Discount: 0}},
		}},
	}
}

func TestAnalyzeWorkedExample(t *testing.T) {
	records, err := Analyze(validInput(), defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.SellerID != "1" || rec.Name != "A B" {
		t.Fatalf("unexpected identity %q %q", rec.SellerID, rec.Name)
	}
	if rec.Revenue != 20 || rec.Profit != 10 || rec.Bonus != 1.5 {
		t.Fatalf("unexpected totals revenue=%v profit=%v bonus=%v", rec.Revenue, rec.Profit, rec.Bonus)
	}
	if rec.SalesCount != 1 {
		t.Fatalf("expected sales_count 1, got %d", rec.SalesCount)
	}
	if len(rec.TopProducts) != 1 || rec.TopProducts[0] != (TopProduct{SKU: "X", Quantity: 2}) {
		t.Fatalf("unexpected top products %#v", rec.TopProducts)
	}
}

func TestAnalyzeValidationOrder(t *testing.T) {
	empty := validInput()
	empty.Sellers = nil
	if _, err := Analyze(empty, defaultOptions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	noProducts := validInput()
	noProducts.Products = []Product{}
	if _, err := Analyze(noProducts, defaultOptions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty products, got %v", err)
	}

	noRecords := validInput()
	noRecords.PurchaseRecords = nil
	if _, err := Analyze(noRecords, defaultOptions()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty records, got %v", err)
	}

	if _, err := Analyze(validInput(), nil); !errors.Is(err, ErrMissingOptions) {
		t.Fatalf("expected ErrMissingOptions, got %v", err)
	}

	if _, err := Analyze(validInput(), &Options{}); !errors.Is(err, ErrMissingStrategy) {
		t.Fatalf("expected ErrMissingStrategy, got %v", err)
	}
	onlyRevenue := &Options{CalculateRevenue: RevenueFunc(SimpleRevenue)}
	if _, err := Analyze(validInput(), onlyRevenue); !errors.Is(err, ErrMissingStrategy) {
		t.Fatalf("expected ErrMissingStrategy with bonus absent, got %v", err)
	}

	// Invalid input wins over missing options: validation is ordered.
	if _, err := Analyze(AnalyzeInput{}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput before options check, got %v", err)
	}
}

func TestAnalyzeEverySellerProducesOneRecord(t *testing.T) {
	input := validInput()
	input.Sellers = append(input.Sellers, Seller{ID: "2", FirstName: "No", LastName: "Sales"})
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	idle := records[1]
	if idle.SellerID != "2" {
		t.Fatalf("expected idle seller ranked last, got %q", idle.SellerID)
	}
	if idle.Revenue != 0 || idle.Profit != 0 || idle.SalesCount != 0 || len(idle.TopProducts) != 0 {
		t.Fatalf("expected zeroed record for seller without sales, got %#v", idle)
	}
}

func TestAnalyzeSkipsUnknownSellerRecord(t *testing.T) {
	input := validInput()
	input.PurchaseRecords = append(input.PurchaseRecords, PurchaseRecord{
		SellerID: "ghost",
		Items:    []PurchaseItem{{SKU: "X", Quantity: 100, SalePrice: 10}},
	})
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	rec := records[0]
	if rec.SalesCount != 1 || rec.Revenue != 20 {
		t.Fatalf("unknown seller record leaked into totals: %#v", rec)
	}
}

func TestAnalyzeSkipsUnknownSKUButCountsRecord(t *testing.T) {
	input := validInput()
	input.PurchaseRecords = append(input.PurchaseRecords, PurchaseRecord{
		SellerID: "1",
		Items:    []PurchaseItem{{SKU: "missing", Quantity: 9, SalePrice: 99}},
	})
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	rec := records[0]
	if rec.SalesCount != 2 {
		t.Fatalf("record with unknown sku must still count, got sales_count %d", rec.SalesCount)
	}
	if rec.Revenue != 20 || rec.Profit != 10 {
		t.Fatalf("unknown sku item leaked into totals: %#v", rec)
	}
	if len(rec.TopProducts) != 1 {
		t.Fatalf("unknown sku must not appear in top products: %#v", rec.TopProducts)
	}
}

func TestAnalyzeSortsByProfitDescending(t *testing.T) {
	input := AnalyzeInput{
		Sellers: []Seller{
			{ID: "low", FirstName: "Low", LastName: "Margin"},
			{ID: "high", FirstName: "High", LastName: "Margin"},
			{ID: "mid", FirstName: "Mid", LastName: "Margin"},
		},
		Products: []Product{{SKU: "X", PurchasePrice: 5}},
		PurchaseRecords: []PurchaseRecord{
			{SellerID: "low", Items: []PurchaseItem{{SKU: "X", Quantity: 1, SalePrice: 6}}},
			{SellerID: "high", Items: []PurchaseItem{{SKU: "X", Quantity: 1, SalePrice: 50}}},
			{SellerID: "mid", Items: []PurchaseItem{{SKU: "X", Quantity: 1, SalePrice: 20}}},
		},
	}
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Profit > records[i-1].Profit {
			t.Fatalf("records not sorted by profit desc: %v then %v", records[i-1].Profit, records[i].Profit)
		}
	}
	if records[0].SellerID != "high" || records[2].SellerID != "low" {
		t.Fatalf("unexpected ranking order: %q %q %q", records[0].SellerID, records[1].SellerID, records[2].SellerID)
	}
}

func TestAnalyzeBonusByRankAcrossSizes(t *testing.T) {
	for _, total := range []int{1, 2, 3, 4, 10} {
		input := AnalyzeInput{Products: []Product{{SKU: "X", PurchasePrice: 0}}}
		for i := 0; i < total; i++ {
			id := fmt.Sprintf("s%d", i)
			input.Sellers = append(input.Sellers, Seller{ID: id, FirstName: "S", LastName: id})
			// Descending sale prices so rank order matches seller order.
			input.PurchaseRecords = append(input.PurchaseRecords, PurchaseRecord{
				SellerID: id,
				Items:    []PurchaseItem{{SKU: "X", Quantity: 1, SalePrice: float64(100 * (total - i))}},
			})
		}
		records, err := Analyze(input, defaultOptions())
		if err != nil {
			t.Fatalf("total=%d analyze: %v", total, err)
		}
		for rank, rec := range records {
			want := ProfitRankBonus(rank, total, SellerStat{Profit: rec.Profit})
			if math.Abs(rec.Bonus-round2(want)) > 1e-9 {
				t.Fatalf("total=%d rank=%d expected bonus %v, got %v", total, rank, round2(want), rec.Bonus)
			}
		}
		if total == 1 && records[0].Bonus != round2(records[0].Profit*0.15) {
			t.Fatalf("sole seller must get top bonus, got %v", records[0].Bonus)
		}
		// For totals of 2 and 3 the last seller is still rank 1 or 2 and
		// takes the 10% rate; only from 4 sellers up does last place get zero.
		if total >= 4 && records[total-1].Bonus != 0 {
			t.Fatalf("total=%d last place must get zero bonus, got %v", total, records[total-1].Bonus)
		}
	}
}

func TestAnalyzeTopProductsCapAndOrder(t *testing.T) {
	input := AnalyzeInput{
		Sellers: []Seller{{ID: "1", FirstName: "A", LastName: "B"}},
	}
	var items []PurchaseItem
	soldTotal := 0
	for i := 0; i < 12; i++ {
		sku := fmt.Sprintf("sku-%02d", i)
		input.Products = append(input.Products, Product{SKU: sku, PurchasePrice: 1})
		qty := 12 - i
		items = append(items, PurchaseItem{SKU: sku, Quantity: qty, SalePrice: 2})
		soldTotal += qty
	}
	input.PurchaseRecords = []PurchaseRecord{{SellerID: "1", Items: items}}

	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	top := records[0].TopProducts
	if len(top) != 10 {
		t.Fatalf("expected top products capped at 10, got %d", len(top))
	}
	topTotal := 0
	for i, p := range top {
		topTotal += p.Quantity
		if i > 0 && p.Quantity > top[i-1].Quantity {
			t.Fatalf("top products not sorted by quantity desc: %#v", top)
		}
	}
	if topTotal > soldTotal {
		t.Fatalf("top product quantities %d exceed total sold %d", topTotal, soldTotal)
	}
}

func TestAnalyzeTopProductTiesKeepFirstSeenOrder(t *testing.T) {
	input := AnalyzeInput{
		Sellers:  []Seller{{ID: "1", FirstName: "A", LastName: "B"}},
		Products: []Product{{SKU: "first", PurchasePrice: 1}, {SKU: "second", PurchasePrice: 1}},
		PurchaseRecords: []PurchaseRecord{{
			SellerID: "1",
			Items: []PurchaseItem{
				{SKU: "first", Quantity: 3, SalePrice: 2},
				{SKU: "second", Quantity: 3, SalePrice: 2},
			},
		}},
	}
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	top := records[0].TopProducts
	if len(top) != 2 || top[0].SKU != "first" || top[1].SKU != "second" {
		t.Fatalf("tied quantities must keep first-seen order, got %#v", top)
	}
}

func TestAnalyzeAccumulatesAcrossRecords(t *testing.T) {
	input := AnalyzeInput{
		Sellers:  []Seller{{ID: "1", FirstName: "A", LastName: "B"}},
		Products: []Product{{SKU: "X", PurchasePrice: 4}},
		PurchaseRecords: []PurchaseRecord{
			{SellerID: "1", Items: []PurchaseItem{{SKU: "X", Quantity: 2, SalePrice: 10, Discount: 10}}},
			{SellerID: "1", Items: []PurchaseItem{{SKU: "X", Quantity: 1, SalePrice: 10, Discount: 0}}},
		},
	}
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	rec := records[0]
	if rec.SalesCount != 2 {
		t.Fatalf("expected sales_count 2, got %d", rec.SalesCount)
	}
	// 20*0.9 + 10 = 28 revenue, cost 12, profit 16.
	if rec.Revenue != 28 || rec.Profit != 16 {
		t.Fatalf("unexpected totals revenue=%v profit=%v", rec.Revenue, rec.Profit)
	}
	if rec.TopProducts[0].Quantity != 3 {
		t.Fatalf("expected cumulative quantity 3, got %d", rec.TopProducts[0].Quantity)
	}
}

func TestAnalyzeRoundsToTwoDecimals(t *testing.T) {
	input := AnalyzeInput{
		Sellers:  []Seller{{ID: "1", FirstName: "A", LastName: "B"}},
		Products: []Product{{SKU: "X", PurchasePrice: 1}},
		PurchaseRecords: []PurchaseRecord{{
			SellerID: "1",
			Items:    []PurchaseItem{{SKU: "X", Quantity: 3, SalePrice: 3.333, Discount: 7}},
		}},
	}
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	rec := records[0]
	// revenue = 9.999*0.93 = 9.29907 -> 9.3; profit = 6.29907 -> 6.3; bonus = 0.9448605 -> 0.94
	if rec.Revenue != 9.3 || rec.Profit != 6.3 || rec.Bonus != 0.94 {
		t.Fatalf("unexpected rounded values revenue=%v profit=%v bonus=%v", rec.Revenue, rec.Profit, rec.Bonus)
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	// Eighths are exact in binary, so these sit precisely on the half
	// boundary after scaling by 100.
	cases := map[float64]float64{
		0.125:  0.13,
		-0.125: -0.13,
		0.375:  0.38,
		-0.625: -0.63,
		10.004: 10.0,
		10.006: 10.01,
	}
	for in, want := range cases {
		if got := round2(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestAnalyzeDuplicateSellerIDLastWriteWins(t *testing.T) {
	input := AnalyzeInput{
		Sellers: []Seller{
			{ID: "1", FirstName: "First", LastName: "Copy"},
			{ID: "1", FirstName: "Second", LastName: "Copy"},
		},
		Products: []Product{{SKU: "X", PurchasePrice: 5}},
		PurchaseRecords: []PurchaseRecord{{
			SellerID: "1",
			Items:    []PurchaseItem{{SKU: "X", Quantity: 2, SalePrice: 10}},
		}},
	}
	records, err := Analyze(input, defaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("every input seller row produces a record, got %d", len(records))
	}
	if records[0].Name != "Second Copy" || records[0].SalesCount != 1 {
		t.Fatalf("expected later duplicate to accumulate, got %#v", records[0])
	}
	if records[1].Name != "First Copy" || records[1].SalesCount != 0 {
		t.Fatalf("expected earlier duplicate to stay empty, got %#v", records[1])
	}
}

func TestAnalyzeDoesNotMutateInputOrder(t *testing.T) {
	input := AnalyzeInput{
		Sellers: []Seller{
			{ID: "a", FirstName: "A", LastName: "A"},
			{ID: "b", FirstName: "B", LastName: "B"},
		},
		Products: []Product{{SKU: "X", PurchasePrice: 1}},
		PurchaseRecords: []PurchaseRecord{
			{SellerID: "b", Items: []PurchaseItem{{SKU: "X", Quantity: 1, SalePrice: 100}}},
		},
	}
	if _, err := Analyze(input, defaultOptions()); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if input.Sellers[0].ID != "a" || input.Sellers[1].ID != "b" {
		t.Fatalf("input seller order mutated: %#v", input.Sellers)
	}
}
