package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/tkarev/backend-sales/internal/sales"
)

// reportgen reads a dataset JSON file (the same shape as the API request
// body) and writes the generated sales report as JSON.
func main() {
	input := flag.String("input", "", "path to the dataset JSON file")
	output := flag.String("output", "", "path to write the report JSON (default stdout)")
	pretty := flag.Bool("pretty", true, "indent the report JSON")
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input flag")
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}

	var data sales.AnalyzeInput
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("decode dataset: %v", err)
	}

	records, err := sales.Analyze(data, &sales.Options{
		CalculateRevenue: sales.RevenueFunc(sales.SimpleRevenue),
		CalculateBonus:   sales.BonusFunc(sales.ProfitRankBonus),
	})
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	var encoded []byte
	if *pretty {
		encoded, err = json.MarshalIndent(records, "", "  ")
	} else {
		encoded, err = json.Marshal(records)
	}
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	encoded = append(encoded, '\n')

	if *output == "" {
		if _, err := os.Stdout.Write(encoded); err != nil {
			log.Fatalf("write report: %v", err)
		}
		return
	}
	if err := os.WriteFile(*output, encoded, 0o644); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("report written to %s (%d sellers)", *output, len(records))
}
