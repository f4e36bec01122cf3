package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mirandavy/classdeck/pkg/domain"
)

const sheetName = "Sessions"

var header = []string{
	"Session ID", "Date", "User ID", "Score",
	"Start Time", "End Time", "Duration", "Module ID", "Module Name", "Platform", "Mode",
}

// SessionsWorkbook builds an xlsx workbook holding the full session history,
// one row per session, with the same derived duration the table shows.
func SessionsWorkbook(sessions []domain.Session) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for col, h := range header {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(header)) + "1"
	_ = f.SetCellStyle(sheetName, "A1", end, bold) //nolint:errcheck
	_ = f.AutoFilter(sheetName, "A1:"+end, nil)   //nolint:errcheck

	for r, s := range sessions {
		row := []string{
			fmt.Sprintf("%d", s.SessionID),
			s.SessionDate,
			fmt.Sprintf("%d", s.UserID),
			fmt.Sprintf("%d", s.PlayerScore),
			s.StartTime,
			s.EndTime,
			s.Duration(),
			fmt.Sprintf("%d", s.ModuleID),
			s.ModuleName,
			domain.PlatformName(s.Platform),
			s.Mode,
		}
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// Width from the header; session values are all shorter than the headers
	// except module names, which get a wider column.
	for c := 1; c <= len(header); c++ {
		w := float64(len(header[c-1])) * 1.2
		if w < 12 {
			w = 12
		}
		_ = f.SetColWidth(sheetName, colName(c), colName(c), w) //nolint:errcheck
	}

	return f, nil
}

// WriteSessions builds the workbook and saves it to a dated file in the
// system temp dir, returning the path.
func WriteSessions(sessions []domain.Session) (string, error) {
	f, err := SessionsWorkbook(sessions)
	if err != nil {
		return "", fmt.Errorf("export.WriteSessions: %w", err)
	}
	name := fmt.Sprintf("sessions_%s.xlsx", time.Now().Format("2006-01-02"))
	path := filepath.Join(os.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("export.WriteSessions: save: %w", err)
	}
	return path, nil
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
