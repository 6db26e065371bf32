package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"lemongrove/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// requiredColumns must all be present in the header row.
var requiredColumns = []string{"id", "name", "price", "category", "stock"}

// CSVImporter reads catalog CSV files and replaces or appends products by id.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses every row and upserts it. It stops at the first invalid row;
// rows before it stay imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	verr := &domain.ValidationError{}

	id, err := strconv.Atoi(pick(record, index, "id"))
	if err != nil || id <= 0 {
		verr.Add("id", "must be a positive integer")
	}
	name := pick(record, index, "name")
	if name == "" {
		verr.Add("name", "is required")
	}
	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil || price.IsNegative() {
		verr.Add("price", "must be a non-negative amount")
	}
	stock, err := strconv.Atoi(pick(record, index, "stock"))
	if err != nil || stock < 0 {
		verr.Add("stock", "must be a non-negative integer")
	}
	if !verr.Empty() {
		return domain.Product{}, verr
	}

	return domain.Product{
		ID:          id,
		Name:        name,
		Price:       price.Round(domain.MoneyPlaces),
		Category:    strings.ToLower(pick(record, index, "category")),
		Stock:       stock,
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
	}, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
