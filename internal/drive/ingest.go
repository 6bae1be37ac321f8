package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/repository"
)

// IngestService turns a vendor catalog file on Drive into product rows.
// Expected columns: Vendor, SKU, Product Name, Item Type, UOM, Pieces
// Per Unit. Rows with a missing SKU are skipped rather than failing the
// whole file; any other parse problem aborts the file so a half-loaded
// catalog never lands.
type IngestService struct {
	driveService *Service
	repo         repository.CatalogRepository
}

func NewIngestService(driveService *Service, repo repository.CatalogRepository) *IngestService {
	return &IngestService{
		driveService: driveService,
		repo:         repo,
	}
}

// IngestFile streams the Drive file and upserts its rows.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) error {
	pr, pw := io.Pipe()
	go func() {
		err := s.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	return s.ingest(ctx, pr)
}

// SyncFolder downloads every catalog file in the Drive folder (XLSX
// converted to CSV on the way down) and ingests each one. Returns the
// number of files ingested.
func (s *IngestService) SyncFolder(ctx context.Context, folderID, downloadDir string) (int, error) {
	downloader := NewDownloader(s.driveService)
	paths, err := downloader.DownloadFolderCSV(ctx, DownloadOptions{
		FolderID:    folderID,
		DownloadDir: downloadDir,
	})
	if err != nil {
		return 0, err
	}
	return s.ingestLocalFiles(ctx, paths)
}

func (s *IngestService) ingestLocalFiles(ctx context.Context, paths []string) (int, error) {
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return i, fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = s.ingest(ctx, f)
		f.Close()
		if err != nil {
			return i, fmt.Errorf("failed to ingest %s: %w", path, err)
		}
	}
	return len(paths), nil
}

func (s *IngestService) ingest(ctx context.Context, r io.Reader) error {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	requiredCols := []string{"vendor", "sku", "product name", "uom"}
	for _, col := range requiredCols {
		if _, ok := colMap[col]; !ok {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	var processed, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		ok, err := s.processRow(ctx, record, colMap)
		if err != nil {
			return fmt.Errorf("failed to process row: %w", err)
		}
		if ok {
			processed++
		} else {
			skipped++
		}
	}

	log.Info().Int("processed", processed).Int("skipped", skipped).Msg("catalog ingest finished")
	return nil
}

func (s *IngestService) processRow(ctx context.Context, record []string, colMap map[string]int) (bool, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	sku := getValue("sku")
	if sku == "" {
		return false, nil
	}

	pieces := int64(1)
	if raw := getValue("pieces per unit"); raw != "" {
		// Exports sometimes render integers as "24.0"
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false, fmt.Errorf("invalid pieces per unit %q for sku %s", raw, sku)
		}
		pieces = int64(f)
	}
	if pieces <= 0 {
		pieces = 1
	}

	vendorID, err := s.repo.UpsertVendor(ctx, &domain.Vendor{Name: getValue("vendor")})
	if err != nil {
		return false, err
	}
	uomID, err := s.repo.UpsertUOM(ctx, &domain.UOM{
		Code:          strings.ToUpper(getValue("uom")),
		Name:          getValue("uom"),
		PiecesPerUnit: pieces,
	})
	if err != nil {
		return false, err
	}

	var itemTypeID int64
	if name := getValue("item type"); name != "" {
		itemTypeID, err = s.repo.UpsertItemType(ctx, &domain.ItemType{Name: name})
		if err != nil {
			return false, err
		}
	}

	_, err = s.repo.UpsertProduct(ctx, &domain.Product{
		SKU:         sku,
		Name:        getValue("product name"),
		ItemTypeID:  itemTypeID,
		UOMID:       uomID,
		VendorID:    vendorID,
		OriginalRef: getValue("ref"),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
