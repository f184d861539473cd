package inspect

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"comercio/internal/database"
	"comercio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Inspector, *database.Manager) {
	t.Helper()
	store, err := database.NewSQLite(filepath.Join(t.TempDir(), "inspect.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())

	require.NoError(t, store.Run(func(db *gorm.DB) error {
		if err := db.Create(&models.Product{Name: "Shirt", Price: 19.9, Size: models.SizeM, Stock: 4}).Error; err != nil {
			return err
		}
		// phone and address left NULL
		return db.Exec("INSERT INTO customers (name, email) VALUES (?, ?)", "Ana", "ana@example.com").Error
	}))

	in := New(store)
	in.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	return in, store
}

func TestInspector_Tables(t *testing.T) {
	in, _ := setup(t)

	tables, err := in.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "products", "suppliers"}, tables)
}

func TestInspector_Stats(t *testing.T) {
	in, _ := setup(t)

	counts, err := in.Stats()
	require.NoError(t, err)
	assert.Equal(t, []TableCount{
		{Table: "customers", Rows: 1},
		{Table: "products", Rows: 1},
		{Table: "suppliers", Rows: 0},
	}, counts)

	var buf bytes.Buffer
	WriteStats(&buf, counts)
	assert.Contains(t, buf.String(), "products       :   1 records")
}

func TestInspector_ReadAndRender(t *testing.T) {
	in, _ := setup(t)

	table, err := in.Read("customers")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email", "phone", "address", "created_at"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Nil(t, table.Rows[0][3])

	var buf bytes.Buffer
	WriteTable(&buf, table)
	out := buf.String()
	assert.Contains(t, out, "TABLE: CUSTOMERS")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "Total records: 1")

	_, err = in.Read("customers; DROP TABLE customers")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestInspector_Export(t *testing.T) {
	in, _ := setup(t)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := in.Export("products", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "products_20260314_092653.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "name", "price", "size", "stock", "created_at"}, records[0])
	assert.Equal(t, []string{"1", "Shirt", "19.9", "M", "4"}, records[1][:5])

	_, err = in.Export("suppliers", dir)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = in.Export("nope", dir)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

// failingFile writes through to a real file but fails on write or close.
type failingFile struct {
	*os.File
	failWrite bool
}

func (f *failingFile) Write(p []byte) (int, error) {
	if f.failWrite {
		return 0, errors.New("disk full")
	}
	return f.File.Write(p)
}

func (f *failingFile) Close() error {
	f.File.Close()
	return errors.New("close failed")
}

func TestInspector_ExportFailureRemovesFile(t *testing.T) {
	for name, failWrite := range map[string]bool{"write": true, "close": false} {
		t.Run(name, func(t *testing.T) {
			in, _ := setup(t)
			dir := t.TempDir()
			in.create = func(path string) (io.WriteCloser, error) {
				f, err := os.Create(path)
				if err != nil {
					return nil, err
				}
				return &failingFile{File: f, failWrite: failWrite}, nil
			}

			_, err := in.Export("products", dir)
			assert.Error(t, err)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "abc", FormatValue([]byte("abc")))
	assert.Equal(t, "42", FormatValue(int64(42)))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "2026-01-02 03:04:05", FormatValue(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
}
