package main

import (
	"fmt"
	"time"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const contactSheet = "Contacts"

var contactHeader = []interface{}{"ID", "Full name", "Email", "Message", "Read", "Received at"}

func writeContactsXLSX(path string, contacts []model.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), contactSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(contactSheet, "A1", &contactHeader); err != nil {
		return err
	}

	for i, c := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.ID, c.FullName, c.Email, c.Message, c.IsRead, c.CreatedAt.UTC().Format(time.RFC3339)}
		if err := f.SetSheetRow(contactSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
