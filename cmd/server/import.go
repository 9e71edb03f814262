package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daleelhq/daleel/pkg/contact"
	"github.com/xuri/excelize/v2"
)

// cmdImport bulk-loads contacts from a local tabular file into the
// configured store. Every row goes through the same normalize + dedup +
// append path as the add command; duplicates are skipped and counted.
func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	file := fs.String("file", "", "CSV or XLSX file to import")
	sheet := fs.String("sheet", "", "worksheet name (XLSX only, default first sheet)")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: daleel import --file contacts.csv|contacts.xlsx [--sheet NAME]")
		os.Exit(1)
	}

	cfg, logger := load(*cfgPath)
	d, err := buildDispatcher(cfg, logger)
	if err != nil {
		logger.Error("setup failed", "error", err)
		os.Exit(1)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(*file)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(*file, *sheet)
	default:
		rows, err = readCSV(*file)
	}
	if err != nil {
		logger.Error("read import file", "file", *file, "error", err)
		os.Exit(1)
	}
	if len(rows) < 2 {
		fmt.Println("Nothing to import: file has no data rows.")
		return
	}

	records := rowsToRecords(rows)
	checker := contact.NewChecker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var added, skipped, failed int
	for i, rec := range records {
		for _, warn := range checker.Check(rec) {
			fmt.Printf("  row %d: %s\n", i+2, warn)
		}
		ok, err := d.Insert(ctx, rec)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "  row %d: %v\n", i+2, err)
		case ok:
			added++
		default:
			skipped++
		}
	}
	fmt.Printf("Imported %d contacts (%d duplicates skipped, %d failed) from %s\n",
		added, skipped, failed, *file)
	if failed > 0 {
		os.Exit(1)
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheetMap := f.GetSheetMap()
		if len(sheetMap) == 0 {
			return nil, fmt.Errorf("no sheets in %s", path)
		}
		sheet = sheetMap[1]
	}
	return f.GetRows(sheet)
}

// rowsToRecords maps data rows to records via the header row. Header
// names are matched case-insensitively; unknown columns are ignored and
// missing columns load as empty fields.
func rowsToRecords(rows [][]string) []contact.Record {
	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]contact.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, contact.Record{
			Company: cell(row, "company_name"),
			Name:    cell(row, "name"),
			Mobile:  cell(row, "mobile"),
			Email:   cell(row, "email"),
		})
	}
	return records
}
