package usecase

import (
	"slices"
	"strings"

	"sessionreport/internal/domain"
)

// DistinctMerchants returns the sorted set of merchants present in transactions.
func DistinctMerchants(transactions []domain.Transaction) []string {
	seen := make(map[string]bool)
	var merchants []string
	for _, tx := range transactions {
		if !seen[tx.Merchant] {
			seen[tx.Merchant] = true
			merchants = append(merchants, tx.Merchant)
		}
	}
	slices.Sort(merchants)
	return merchants
}

// DefaultMerchants picks the merchants whose name contains one of keywords.
func DefaultMerchants(merchants []string, keywords []string) []string {
	defaults := make([]string, 0)
	for _, m := range merchants {
		for _, k := range keywords {
			if k != "" && strings.Contains(m, k) {
				defaults = append(defaults, m)
				break
			}
		}
	}
	return defaults
}

// resolveMerchants keeps the requested merchants that exist, in request order.
// A nil request selects the defaults.
func resolveMerchants(requested, available, keywords []string) []string {
	if requested == nil {
		return DefaultMerchants(available, keywords)
	}
	selected := make([]string, 0, len(requested))
	for _, m := range requested {
		if slices.Contains(available, m) && !slices.Contains(selected, m) {
			selected = append(selected, m)
		}
	}
	return selected
}

// filterTransactions keeps the transactions of the given merchants that start at or
// after hourFloor.
func filterTransactions(transactions []domain.Transaction, merchants []string, hourFloor int) []domain.Transaction {
	var filtered []domain.Transaction
	for _, tx := range transactions {
		if slices.Contains(merchants, tx.Merchant) && tx.Time.Hour() >= hourFloor {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// groupByMerchant splits transactions into per-merchant slices ordered by merchant name.
// Each group is a fresh slice owned by the caller.
func groupByMerchant(transactions []domain.Transaction) [][]domain.Transaction {
	groups := make(map[string][]domain.Transaction)
	for _, tx := range transactions {
		groups[tx.Merchant] = append(groups[tx.Merchant], tx)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)

	ordered := make([][]domain.Transaction, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, groups[name])
	}
	return ordered
}
