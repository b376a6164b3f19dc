package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ikkim/brandsite-backend/config"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/db"
	"github.com/ikkim/brandsite-backend/pkg/logger"
)

const usage = `Usage:
  seed products <file.xlsx>         import products from the first sheet
  seed fake <n>                     insert n generated products
  seed export-contacts <file.xlsx>  write contact messages to a spreadsheet`

func main() {
	if len(os.Args) < 3 {
		log.Fatal(usage)
	}
	command, arg := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	products := service.NewProductService(repository.NewProductRepository(db.GetDB()), categoryRepo, nil)
	ctx := context.Background()

	switch command {
	case "products":
		fmt.Printf("Reading XLSX file: %s\n", arg)
		rows, err := readProductRows(arg)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		report(importProducts(ctx, rows, products, categoryRepo))

	case "fake":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			log.Fatal("fake expects a positive count")
		}
		rows := fakeProductRows(gofakeit.New(0), n)
		report(importProducts(ctx, rows, products, categoryRepo))

	case "export-contacts":
		contacts, err := repository.NewContactRepository(db.GetDB()).FindAll(repository.ContactFilter{})
		if err != nil {
			log.Fatal("Failed to load contacts:", err)
		}
		if err := writeContactsXLSX(arg, contacts); err != nil {
			log.Fatal("Failed to write XLSX:", err)
		}
		fmt.Printf("Exported %d contact messages to %s\n", len(contacts), arg)

	default:
		log.Fatal(usage)
	}
}

func report(result importResult, err error) {
	if err != nil {
		log.Fatal("Import failed:", err)
	}
	fmt.Println("Import completed")
	fmt.Printf("  Products created:   %d\n", result.Created)
	fmt.Printf("  Categories created: %d\n", result.CategoriesCreated)
	fmt.Printf("  Rows skipped:       %d\n", len(result.Skipped))
	for _, s := range result.Skipped {
		fmt.Printf("    row %d: %s\n", s.Line, s.Reason)
	}
}
