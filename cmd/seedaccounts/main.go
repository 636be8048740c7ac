// Command seedaccounts loads a chart-of-accounts Excel file into the
// ledger_accounts table for one organization. The workbook is expected to
// have account codes in column A and labels in column B, header on row 1.
// Usage: go run ./cmd/seedaccounts -org <organization-uuid> -file plan_comptable.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"facturo/internal/config"
	"facturo/internal/domain"
	"facturo/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	orgFlag := flag.String("org", "", "organization UUID to seed accounts for")
	fileFlag := flag.String("file", "plan_comptable.xlsx", "chart-of-accounts Excel file")
	sheetFlag := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	flag.Parse()

	orgID, err := uuid.Parse(*orgFlag)
	if err != nil {
		return fmt.Errorf("invalid -org: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	accountRepo := postgres.NewLedgerAccountRepo(db)

	f, err := excelize.OpenFile(*fileFlag)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := *sheetFlag
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	ctx := context.Background()
	seen := make(map[string]bool)
	total := 0
	skipped := 0

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			skipped++
			continue
		}
		code := strings.TrimSpace(row[0])
		label := strings.TrimSpace(row[1])
		if code == "" || label == "" || seen[code] {
			skipped++
			continue
		}
		seen[code] = true

		account := &domain.LedgerAccount{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Code:           code,
			Label:          label,
		}
		if err := accountRepo.Upsert(ctx, account); err != nil {
			return fmt.Errorf("upsert account %s: %w", code, err)
		}
		total++
	}

	log.Printf("Seeded %d ledger accounts for organization %s (%d rows skipped)", total, orgID, skipped)
	return nil
}
