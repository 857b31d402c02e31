package model

import "github.com/shopspring/decimal"

// RiskFactor is one triggered risk condition with its policy weight and a
// human-readable explanation. Factors are derived per assessment and ordered
// by descending weight.
type RiskFactor struct {
	Name        string
	Weight      decimal.Decimal
	Explanation string
}

// FactorNames projects a factor list to its names, preserving order.
func FactorNames(factors []RiskFactor) []string {
	names := make([]string, 0, len(factors))
	for _, f := range factors {
		names = append(names, f.Name)
	}
	return names
}
