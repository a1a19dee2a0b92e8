package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"sessionreport/internal/domain"
)

func record(merchant string, hour int) domain.Transaction {
	return domain.Transaction{
		Time:     time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(1),
		Merchant: merchant,
	}
}

func TestResolveMerchants(t *testing.T) {
	available := []string{"Apartment 2", "Canteen", "Dorm 1"}
	keywords := []string{"Apartment", "Dorm"}

	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{name: "nil selects defaults", requested: nil, want: []string{"Apartment 2", "Dorm 1"}},
		{name: "keeps request order", requested: []string{"Dorm 1", "Canteen"}, want: []string{"Dorm 1", "Canteen"}},
		{name: "drops unknown and duplicates", requested: []string{"Gym", "Canteen", "Canteen"}, want: []string{"Canteen"}},
		{name: "empty request selects nothing", requested: []string{}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveMerchants(tt.requested, available, keywords))
		})
	}
}

func TestDefaultMerchants_IgnoresEmptyKeyword(t *testing.T) {
	got := DefaultMerchants([]string{"Canteen"}, []string{""})
	assert.Empty(t, got)
}

func TestFilterTransactions(t *testing.T) {
	transactions := []domain.Transaction{
		record("Dorm 1", 5),
		record("Dorm 1", 6),
		record("Canteen", 12),
		record("Dorm 1", 23),
	}

	got := filterTransactions(transactions, []string{"Dorm 1"}, 6)

	assert.Len(t, got, 2)
	assert.Equal(t, 6, got[0].Time.Hour())
	assert.Equal(t, 23, got[1].Time.Hour())
}

func TestGroupByMerchant(t *testing.T) {
	transactions := []domain.Transaction{
		record("Dorm 2", 8),
		record("Dorm 1", 9),
		record("Dorm 2", 10),
	}

	groups := groupByMerchant(transactions)

	assert.Len(t, groups, 2)
	assert.Equal(t, "Dorm 1", groups[0][0].Merchant)
	assert.Len(t, groups[1], 2)
	assert.Equal(t, 10, groups[1][1].Time.Hour())
}

func TestDistinctMerchants(t *testing.T) {
	got := DistinctMerchants([]domain.Transaction{record("b", 8), record("a", 9), record("b", 10)})
	assert.Equal(t, []string{"a", "b"}, got)
}
