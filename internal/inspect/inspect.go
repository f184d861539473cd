// Package inspect provides read-only reporting and CSV export over any
// table in the store.
package inspect

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"comercio/internal/database"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	// ErrUnknownTable is returned for names that are not tables in the store.
	ErrUnknownTable = errors.New("unknown table")
	// ErrEmptyTable is returned when exporting a table without rows.
	ErrEmptyTable = errors.New("table is empty")
)

// Table is a snapshot of every row of one table. NULL cells are nil.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

// TableCount is the number of rows in one table.
type TableCount struct {
	Table string
	Rows  int64
}

// Inspector reads tables through a Manager.
type Inspector struct {
	store  *database.Manager
	now    func() time.Time
	create func(path string) (io.WriteCloser, error)
}

// New creates an Inspector.
func New(store *database.Manager) *Inspector {
	return &Inspector{store: store, now: time.Now, create: createFile}
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Tables lists user tables, sorted. Engine bookkeeping tables are skipped.
func (i *Inspector) Tables() ([]string, error) {
	var names []string
	err := i.store.Run(func(db *gorm.DB) error {
		tables, err := db.Migrator().GetTables()
		if err != nil {
			return err
		}
		for _, t := range tables {
			if strings.HasPrefix(t, "sqlite_") {
				continue
			}
			names = append(names, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (i *Inspector) checkTable(name string) error {
	tables, err := i.Tables()
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTable, name)
}

// Stats counts the rows of every table.
func (i *Inspector) Stats() ([]TableCount, error) {
	tables, err := i.Tables()
	if err != nil {
		return nil, err
	}
	counts := make([]TableCount, 0, len(tables))
	err = i.store.Run(func(db *gorm.DB) error {
		for _, t := range tables {
			var n int64
			if err := db.Table(t).Count(&n).Error; err != nil {
				return fmt.Errorf("failed to count %s: %w", t, err)
			}
			counts = append(counts, TableCount{Table: t, Rows: n})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Read loads every row of table.
func (i *Inspector) Read(table string) (*Table, error) {
	if err := i.checkTable(table); err != nil {
		return nil, err
	}
	out := &Table{Name: table}
	err := i.store.Run(func(db *gorm.DB) error {
		rows, err := db.Table(table).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return err
		}
		out.Columns = cols
		for rows.Next() {
			values := make([]interface{}, len(cols))
			ptrs := make([]interface{}, len(cols))
			for k := range values {
				ptrs[k] = &values[k]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			out.Rows = append(out.Rows, values)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	return out, nil
}

// Export writes table to dir as <table>_YYYYMMDD_HHMMSS.csv with a header
// row of column names, and returns the file path.
func (i *Inspector) Export(table, dir string) (string, error) {
	t, err := i.Read(table)
	if err != nil {
		return "", err
	}
	if len(t.Rows) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyTable, table)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", table, i.now().Format("20060102_150405")))

	// A partially written file is removed on any failure.
	f, err := i.create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := writeCSV(f, t); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	log.Info().Str("table", table).Str("path", path).Int("rows", len(t.Rows)).Msg("Table exported")
	return path, nil
}

func writeCSV(out io.Writer, t *Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for k, v := range row {
			record[k] = FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// FormatValue renders a scanned cell. NULL renders as an empty string.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
