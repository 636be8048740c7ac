// Command backfill re-runs line-item deduplication over already extracted
// invoices and recomputes allocation item coverage. Useful after a change to
// the fingerprinting rules.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"facturo/internal/config"
	"facturo/internal/domain"
	"facturo/internal/recon"
	"facturo/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	invRepo := postgres.NewInvoiceRepo(db)
	allocRepo := postgres.NewAllocationRepo(db)

	ctx := context.Background()
	offset := 0
	deduped := 0
	reconciled := 0

	for {
		var invoices []domain.Invoice
		err := db.SelectContext(ctx, &invoices,
			`SELECT * FROM invoices
			 WHERE extraction_status = 'completed'
			 ORDER BY created_at
			 LIMIT $1 OFFSET $2`, batchSize, offset)
		if err != nil {
			return fmt.Errorf("querying invoices at offset %d: %w", offset, err)
		}
		if len(invoices) == 0 {
			break
		}

		for i := range invoices {
			inv := &invoices[i]

			var extracted domain.ExtractedInvoice
			if err := json.Unmarshal(inv.ExtractedData, &extracted); err != nil {
				log.Printf("WARN: skipping invoice %s: unmarshal extracted_data: %v", inv.ID, err)
				continue
			}

			result := recon.Deduplicate(extracted.Items)
			if len(result.Duplicates) > 0 {
				extracted.Items = result.Unique
				data, err := json.Marshal(&extracted)
				if err != nil {
					log.Printf("WARN: skipping invoice %s: marshal extracted_data: %v", inv.ID, err)
					continue
				}
				inv.ExtractedData = data
				inv.UpdatedAt = time.Now()
				if err := invRepo.UpdateExtractedData(ctx, inv); err != nil {
					log.Printf("WARN: failed to update invoice %s: %v", inv.ID, err)
					continue
				}
				deduped++
			}

			allocs, err := allocRepo.ListByInvoice(ctx, inv.OrganizationID, inv.ID)
			if err != nil {
				log.Printf("WARN: failed to list allocations for invoice %s: %v", inv.ID, err)
				continue
			}
			if len(allocs) == 0 {
				continue
			}

			lists, err := recon.Reallocate(extracted.Items, allocs)
			if err != nil {
				log.Printf("WARN: failed to reallocate invoice %s: %v", inv.ID, err)
				continue
			}
			ids := make([]uuid.UUID, len(allocs))
			for j := range allocs {
				ids[j] = allocs[j].ID
			}
			if err := allocRepo.UpdateItemIndices(ctx, inv.OrganizationID, ids, lists); err != nil {
				log.Printf("WARN: failed to persist indices for invoice %s: %v", inv.ID, err)
				continue
			}
			reconciled++
		}

		offset += len(invoices)
		log.Printf("Progress: %d invoices scanned", offset)
	}

	log.Printf("Backfill complete: %d invoices re-deduplicated, %d reconciled", deduped, reconciled)
	return nil
}
