package activity

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"contentstudio-backend/internal/shared"
)

type Service struct {
	repo  Repository
	limit int
}

func NewService(repo Repository, limit int) *Service {
	return &Service{repo: repo, limit: limit}
}

// History merges the newest rows of every content table into one feed.
// The merge happens in memory; ties on created_at break by id so the
// ordering is stable across refetches.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	merged := []*Entry{}
	for _, table := range shared.ContentTables {
		entries, err := s.repo.ListRecent(ctx, userID, table, s.limit)
		if err != nil {
			return nil, err
		}
		merged = append(merged, entries...)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return strings.Compare(merged[i].ID.String(), merged[j].ID.String()) > 0
	})

	if len(merged) > s.limit {
		merged = merged[:s.limit]
	}
	return merged, nil
}

// Export writes the merged history as an xlsx workbook.
func (s *Service) Export(ctx context.Context, userID uuid.UUID) (*bytes.Buffer, error) {
	entries, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Activity"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Type", "Title", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, e := range entries {
		values := []interface{}{e.Table, e.Title, e.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf, nil
}
