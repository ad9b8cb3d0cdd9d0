package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const sampleCSV = `Fecha,Cliente,Producto,Cantidad,PrecioUnitario
2024-01-05,Ana,Widget,2,10.00
2024-01-20,Ana,Gadget,1,50.00
2024-02-01,Bea,Widget,3,10.00
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ventas.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVFile_Load(t *testing.T) {
	records, err := NewCSVFile(writeFile(t, sampleCSV)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Ana", first.Customer)
	assert.Equal(t, "Widget", first.Product)
	assert.Equal(t, int64(2), first.Quantity)
	assert.Equal(t, "20", first.LineTotal().String())

	assert.Equal(t, "Bea", records[2].Customer)
	assert.Equal(t, "30", records[2].LineTotal().String())
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, records []domain.Transaction, err error)
	}{
		{
			name:  "columns in any order with extra columns and padding",
			input: "Producto , Notas,Fecha,PrecioUnitario,Cliente,Cantidad\n Widget ,x,2024-03-01,2.50, Ana ,4\n",
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				require.NoError(t, err)
				require.Len(t, records, 1)
				assert.Equal(t, "Ana", records[0].Customer)
				assert.Equal(t, "Widget", records[0].Product)
				assert.Equal(t, "10", records[0].LineTotal().String())
			},
		},
		{
			name:  "byte order mark before the header",
			input: "\ufeff" + sampleCSV,
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 3)
			},
		},
		{
			name:  "blank lines are skipped",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n2024-01-05,Ana,Widget,2,10\n,,,,\n",
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 1)
			},
		},
		{
			name:  "header only",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n",
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				require.NoError(t, err)
				assert.NotNil(t, records)
				assert.Empty(t, records)
			},
		},
		{
			name:  "empty file",
			input: "",
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.ErrorIs(t, err, ErrEmptyFile)
				assert.Nil(t, records)
			},
		},
		{
			name:  "missing column",
			input: "Fecha,Cliente,Producto,Cantidad\n2024-01-05,Ana,Widget,2\n",
			validate: func(t *testing.T, _ []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.ErrorIs(t, err, ErrMissingColumn)
				assert.Equal(t, ColumnUnitPrice, loadErr.Column)
			},
		},
		{
			name:  "bad date reports line and column",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n2024-01-05,Ana,Widget,2,10\nyesterday,Ana,Widget,2,10\n",
			validate: func(t *testing.T, _ []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.Equal(t, 3, loadErr.Line)
				assert.Equal(t, ColumnDate, loadErr.Column)
				assert.Contains(t, err.Error(), "line 3")
			},
		},
		{
			name:  "bare quote in the first field",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n2024-01-05,Ana,Widget,2,10\n2024-01\"05,Ana,Widget,2,10\n",
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.ErrorIs(t, err, csv.ErrBareQuote)
				assert.Equal(t, 3, loadErr.Line)
				assert.Nil(t, records)
			},
		},
		{
			name:  "unclosed quote",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n\"2024-01-05,Ana,Widget,2,10\n",
			validate: func(t *testing.T, records []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.ErrorIs(t, err, csv.ErrQuote)
				assert.Equal(t, 2, loadErr.Line)
				assert.Nil(t, records)
			},
		},
		{
			name:  "non numeric quantity",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n2024-01-05,Ana,Widget,two,10\n",
			validate: func(t *testing.T, _ []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.Equal(t, 2, loadErr.Line)
				assert.Equal(t, ColumnQuantity, loadErr.Column)
			},
		},
		{
			name:  "negative price",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n2024-01-05,Ana,Widget,2,-1\n",
			validate: func(t *testing.T, _ []domain.Transaction, err error) {
				var loadErr *domain.LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.ErrorIs(t, err, domain.ErrNegativeUnitPrice)
				assert.Equal(t, ColumnUnitPrice, loadErr.Column)
			},
		},
		{
			name:  "empty customer",
			input: "Fecha,Cliente,Producto,Cantidad,PrecioUnitario\n2024-01-05, ,Widget,2,1\n",
			validate: func(t *testing.T, _ []domain.Transaction, err error) {
				assert.ErrorIs(t, err, domain.ErrEmptyCustomer)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadCSV(context.Background(), "test.csv", strings.NewReader(tt.input))
			tt.validate(t, records, err)
		})
	}
}

func TestReadCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, "test.csv", strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVFile_MissingFile(t *testing.T) {
	_, err := NewCSVFile(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())

	var loadErr *domain.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2024-02-29", "2024/02/29", "29/02/2024", "2024-02-29 13:45:00", "2024-02-29T23:30:00-03:00"} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseDate(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}
