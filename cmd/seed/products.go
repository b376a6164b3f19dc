package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// listSeparator splits multi-value cells such as "Rice|Salt".
const listSeparator = "|"

var productColumns = []string{"name", "price", "description", "category", "sizes", "highlights", "ingredients", "images", "top_seller"}

type productRow struct {
	Line     int
	Category string
	Input    service.ProductInput
}

type skippedRow struct {
	Line   int
	Reason string
}

type importResult struct {
	Created           int
	CategoriesCreated int
	Skipped           []skippedRow
}

// readProductRows reads the first sheet. The header row names the columns, in any order.
func readProductRows(path string) ([]productRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("no data found in XLSX file")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price", "category"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var out []productRow
	for i, row := range rows[1:] {
		cell := func(column string) string {
			pos, ok := index[column]
			if !ok || pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		if cell("name") == "" && cell("category") == "" {
			continue
		}

		pr := productRow{
			Line:     i + 2,
			Category: cell("category"),
			Input: service.ProductInput{
				Name:        cell("name"),
				Description: cell("description"),
				Sizes:       splitList(cell("sizes")),
				Highlights:  splitList(cell("highlights")),
				Ingredients: splitList(cell("ingredients")),
				Images:      splitList(cell("images")),
			},
		}
		if raw := cell("price"); raw != "" {
			if price, err := strconv.ParseFloat(raw, 64); err == nil {
				pr.Input.Price = &price
			}
		}
		if raw := cell("top_seller"); raw != "" {
			pr.Input.IsTopSeller, _ = strconv.ParseBool(raw)
		}
		out = append(out, pr)
	}
	return out, nil
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return model.StringList(strings.Split(cell, listSeparator)).Compact()
}

// importProducts creates each row through the product service so the usual
// validation applies. Invalid rows are reported and skipped.
func importProducts(ctx context.Context, rows []productRow, products service.ProductService, categories repository.CategoryRepository) (importResult, error) {
	var result importResult
	categoryIDs := make(map[string]uint)

	for _, row := range rows {
		if row.Category == "" {
			result.Skipped = append(result.Skipped, skippedRow{Line: row.Line, Reason: "category is required"})
			continue
		}

		id, ok := categoryIDs[strings.ToLower(row.Category)]
		if !ok {
			category, created, err := findOrCreateCategory(categories, row.Category)
			if err != nil {
				return result, err
			}
			if created {
				result.CategoriesCreated++
			}
			id = category.ID
			categoryIDs[strings.ToLower(row.Category)] = id
		}

		input := row.Input
		input.CategoryID = id
		if _, err := products.CreateProduct(ctx, input, nil); err != nil {
			if ve, ok := service.AsValidationError(err); ok {
				result.Skipped = append(result.Skipped, skippedRow{Line: row.Line, Reason: ve.Error()})
				continue
			}
			return result, fmt.Errorf("row %d: %w", row.Line, err)
		}
		result.Created++
	}
	return result, nil
}

func findOrCreateCategory(categories repository.CategoryRepository, name string) (*model.Category, bool, error) {
	category, err := categories.FindByName(name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	category = &model.Category{Name: name}
	if err := categories.Create(category); err != nil {
		return nil, false, err
	}
	return category, true, nil
}
