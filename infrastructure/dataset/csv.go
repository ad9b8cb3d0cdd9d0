package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Nomes das colunas do arquivo de entrada
const (
	ColumnDate      = "Fecha"
	ColumnCustomer  = "Cliente"
	ColumnProduct   = "Producto"
	ColumnQuantity  = "Cantidad"
	ColumnUnitPrice = "PrecioUnitario"
)

// requiredColumns são as colunas que o cabeçalho precisa ter, em qualquer ordem
var requiredColumns = []string{ColumnDate, ColumnCustomer, ColumnProduct, ColumnQuantity, ColumnUnitPrice}

// Erros de estrutura do arquivo
var (
	ErrEmptyFile     = errors.New("file is empty")
	ErrMissingColumn = errors.New("required column not found")
)

// dateLayouts são os formatos de data aceitos, na ordem de tentativa
var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"02/01/2006",
	time.DateTime,
	time.RFC3339,
}

// o contexto é verificado a cada ctxCheckEvery linhas para interromper uma inicialização cancelada
const ctxCheckEvery = 1000

// CSVFile lê transações de um arquivo separado por vírgulas com linha de cabeçalho
type CSVFile struct {
	Path string
}

// NewCSVFile cria uma fonte para o arquivo em path
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// Name retorna o caminho do arquivo
func (f *CSVFile) Name() string {
	return f.Path
}

// Load abre o arquivo e lê todas as linhas
func (f *CSVFile) Load(ctx context.Context) ([]domain.Transaction, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, &domain.LoadError{Source: f.Path, Err: errors.Wrap(err, "open file")}
	}
	defer file.Close()

	return ReadCSV(ctx, f.Path, file)
}

// ReadCSV interpreta r. name só é usado para identificar os erros de carga
func ReadCSV(ctx context.Context, name string, r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.LoadError{Source: name, Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, &domain.LoadError{Source: name, Line: 1, Err: errors.Wrap(err, "read header")}
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, &domain.LoadError{Source: name, Line: 1, Column: err.Error(), Err: ErrMissingColumn}
	}

	records := make([]domain.Transaction, 0)
	for row := 0; ; row++ {
		if row%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &domain.LoadError{Source: name, Err: err}
			}
		}

		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.LoadError{Source: name, Line: parseErrorLine(err), Err: errors.Wrap(err, "read row")}
		}
		line, _ := reader.FieldPos(0)
		if isBlank(fields) {
			continue
		}

		tx, column, err := parseRow(fields, index)
		if err != nil {
			return nil, &domain.LoadError{Source: name, Line: line, Column: column, Err: err}
		}
		records = append(records, tx)
	}

	return records, nil
}

// parseErrorLine é a linha onde começa o registro quebrado, ou 0 quando o
// reader não informa.
func parseErrorLine(err error) int {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.StartLine
	}
	return 0
}

// columnIndex associa cada coluna obrigatória à sua posição. Em caso de falha
// o texto do erro é o nome da coluna ausente.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, errors.New(column)
		}
	}
	return index, nil
}

// parseRow converte uma linha em Transaction. Em caso de erro retorna a coluna com problema
func parseRow(fields []string, index map[string]int) (domain.Transaction, string, error) {
	cell := func(column string) string {
		i := index[column]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	date, err := ParseDate(cell(ColumnDate))
	if err != nil {
		return domain.Transaction{}, ColumnDate, err
	}

	quantity, err := strconv.ParseInt(cell(ColumnQuantity), 10, 64)
	if err != nil {
		return domain.Transaction{}, ColumnQuantity, errors.Wrapf(err, "parse quantity %q", cell(ColumnQuantity))
	}

	unitPrice, err := decimal.NewFromString(cell(ColumnUnitPrice))
	if err != nil {
		return domain.Transaction{}, ColumnUnitPrice, errors.Wrapf(err, "parse unit price %q", cell(ColumnUnitPrice))
	}

	tx, err := domain.NewTransaction(date, cell(ColumnCustomer), cell(ColumnProduct), quantity, unitPrice)
	if err != nil {
		return domain.Transaction{}, columnOf(err), err
	}
	return tx, "", nil
}

// columnOf associa um erro de validação do domínio à sua coluna
func columnOf(err error) string {
	switch errors.Cause(err) {
	case domain.ErrEmptyCustomer:
		return ColumnCustomer
	case domain.ErrEmptyProduct:
		return ColumnProduct
	case domain.ErrNegativeQuantity:
		return ColumnQuantity
	case domain.ErrNegativeUnitPrice:
		return ColumnUnitPrice
	default:
		return ""
	}
}

// ParseDate aceita os formatos de data vistos nas planilhas de vendas exportadas
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("date is empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return domain.TruncateDay(t), nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized date %q", value)
}

// isBlank informa se todas as células da linha estão vazias
func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
