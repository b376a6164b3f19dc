package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ikkim/brandsite-backend/internal/app/service"
)

var fakeCategories = []string{"Snacks", "Beverages", "Supplements", "Personal Care"}

// fakeProductRows builds n valid catalog rows for demo environments.
func fakeProductRows(faker *gofakeit.Faker, n int) []productRow {
	rows := make([]productRow, 0, n)
	for i := 0; i < n; i++ {
		price := faker.Price(1, 120)
		rows = append(rows, productRow{
			Line:     i + 1,
			Category: fakeCategories[faker.Number(0, len(fakeCategories)-1)],
			Input: service.ProductInput{
				Name:        faker.ProductName(),
				Price:       &price,
				Description: faker.ProductDescription(),
				Sizes:       []string{"S", "M", "L"}[:faker.Number(1, 3)],
				Highlights:  []string{faker.ProductFeature(), faker.ProductFeature()},
				Ingredients: []string{faker.ProductMaterial(), faker.ProductMaterial()},
				Images:      []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/800", faker.UUID())},
				IsTopSeller: faker.Bool(),
			},
		})
	}
	return rows
}
