package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"churn-insights-go/internal/logger"
	"churn-insights-go/internal/types"
)

// Load reads a tabular file from disk and returns one RawRow per data row,
// keyed by the header labels. The format is picked by extension: .xlsx/.xlsm
// go through excelize, everything else is treated as delimited text.
func Load(path string) ([]types.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return LoadReader(f, filepath.Base(path))
}

// LoadReader is the upload-path entry point: format comes from the supplied
// filename, bytes from the reader.
func LoadReader(r io.Reader, filename string) ([]types.RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(r)
	case ".csv", ".txt", ".tsv", "":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

func loadWorkbook(r io.Reader) ([]types.RawRow, error) {
	log := logger.New().WithComponent("dataset")
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	log.WithField("sheet", sheets[0]).WithField("columns", len(header)).Info("reading sheet")

	var out []types.RawRow
	for _, r := range rows[1:] {
		row := types.RawRow{}
		empty := true
		for i, h := range header {
			if h == "" {
				continue
			}
			v := ""
			if i < len(r) {
				v = strings.TrimSpace(r[i])
			}
			row[h] = v
			if v != "" {
				empty = false
			}
		}
		// GetRows drops trailing blank cells; fully blank rows are noise
		if empty {
			continue
		}
		out = append(out, row)
	}
	log.WithField("rows", len(out)).Info("sheet loaded")
	return out, nil
}
