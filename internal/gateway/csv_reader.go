package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sessionreport/internal/domain"
	"sessionreport/internal/logger"
)

// ErrHeaderNotFound is returned when no row names a time, an amount and a merchant column.
var ErrHeaderNotFound = errors.New("no header row with time, amount and merchant columns")

// Column label keywords, matched as case-insensitive substrings.
var (
	TimeKeys     = []string{"交易时间", "时间", "日期", "发生时间", "消费时间", "time", "date"}
	AmountKeys   = []string{"交易金额", "金额", "消费金额", "支出", "收入", "amount"}
	MerchantKeys = []string{"交易地点", "商户", "商家", "门店", "地点", "对方户名", "merchant", "location"}
	EventKeys    = []string{"交易事件", "交易类型", "事件", "类型", "event", "type"}
)

var timeLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006-1-2T15:04:05",
}

// Options controls how exported statement files are interpreted.
type Options struct {
	// Location is applied to timestamps without a zone. Defaults to time.Local.
	Location *time.Location
	// EventKeywords keeps only rows whose event column contains one of them.
	// Ignored when the file has no event column or the list is empty.
	EventKeywords []string
}

// CSVTransactionRepository implements the TransactionRepository interface for CSV exports.
type CSVTransactionRepository struct {
	opts Options
}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository(opts Options) *CSVTransactionRepository {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &CSVTransactionRepository{opts: opts}
}

type columns struct {
	time, amount, merchant, event int
}

// GetTransactions reads a statement export and returns its cleaned purchase records.
// Rows before the header are skipped. Rows whose time or amount cannot be parsed,
// whose amount is not positive or whose event is not a purchase are dropped.
func (r *CSVTransactionRepository) GetTransactions(ctx context.Context, path string) ([]domain.Transaction, error) {
	log := logger.FromContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		cols      *columns
		dropped   int
		txs       []domain.Transaction
		rowNumber int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		rowNumber++
		if rowNumber == 1 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}

		if cols == nil {
			cols = findColumns(record)
			continue
		}
		if isBlank(record) {
			continue
		}

		tx, ok := r.parseRecord(record, *cols)
		if !ok {
			dropped++
			continue
		}
		txs = append(txs, tx)
	}

	if cols == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrHeaderNotFound)
	}

	log.Debug().
		Str("path", path).
		Int("transactions", len(txs)).
		Int("dropped", dropped).
		Msg("Loaded transactions")

	return txs, nil
}

func (r *CSVTransactionRepository) parseRecord(record []string, cols columns) (domain.Transaction, bool) {
	merchant := strings.TrimSpace(cell(record, cols.merchant))
	if merchant == "" {
		return domain.Transaction{}, false
	}

	txTime, err := parseTime(cell(record, cols.time), r.opts.Location)
	if err != nil {
		return domain.Transaction{}, false
	}

	amount, err := parseAmount(cell(record, cols.amount))
	if err != nil || !amount.IsPositive() {
		return domain.Transaction{}, false
	}

	if cols.event >= 0 && len(r.opts.EventKeywords) > 0 && !containsAny(cell(record, cols.event), r.opts.EventKeywords) {
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		Time:     txTime,
		Amount:   amount,
		Merchant: merchant,
	}, true
}

// findColumns returns the column mapping if row is a header row, nil otherwise.
func findColumns(row []string) *columns {
	used := make(map[int]bool)
	match := func(keys []string) int {
		for i, c := range row {
			if !used[i] && containsAny(c, keys) {
				used[i] = true
				return i
			}
		}
		return -1
	}

	cols := columns{
		time:     match(TimeKeys),
		amount:   match(AmountKeys),
		merchant: match(MerchantKeys),
	}
	if cols.time < 0 || cols.amount < 0 || cols.merchant < 0 {
		return nil
	}
	cols.event = match(EventKeys)
	return &cols
}

func parseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time '%s'", value)
}

var amountReplacer = strings.NewReplacer("¥", "", "￥", "", "$", "", "元", "", ",", "", " ", "")

func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimPrefix(amountReplacer.Replace(strings.TrimSpace(value)), "+")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not parse amount '%s': %w", value, err)
	}
	return amount, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func containsAny(s string, keys []string) bool {
	s = strings.ToLower(s)
	for _, k := range keys {
		if strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
