// Package repository lê a tabela de vendas quando o dashboard usa Postgres
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultSalesTable é a tabela de vendas usada quando nenhuma é configurada
const DefaultSalesTable = "ventas"

// transactionColumns segue a ordem dos campos lidos no Scan
var transactionColumns = []string{
	"fecha",
	"cliente",
	"producto",
	"cantidad",
	"precio_unitario",
}

// TransactionRepository lê as linhas de venda do banco
type TransactionRepository interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

type transactionRepository struct {
	conn  postgres.Queryer
	table string
}

// NewTransactionRepository cria o repositório sobre table. Uma tabela vazia usa DefaultSalesTable
func NewTransactionRepository(conn postgres.Queryer, table string) TransactionRepository {
	if table == "" {
		table = DefaultSalesTable
	}
	return &transactionRepository{
		conn:  conn,
		table: table,
	}
}

// listQuery monta o SELECT ordenado por data
func (r *transactionRepository) listQuery() (string, []any, error) {
	return squirrel.
		Select(transactionColumns...).
		From(r.table).
		OrderBy("fecha ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// ListTransactions lê e valida todas as linhas da tabela. Uma linha inválida interrompe a carga
func (r *transactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query, args, err := r.listQuery()
	if err != nil {
		return nil, errors.Wrap(err, "build list query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	defer rows.Close()

	source := r.sourceName()
	transactions := make([]domain.Transaction, 0)

	for row := 1; rows.Next(); row++ {
		var (
			date      time.Time
			customer  string
			product   string
			quantity  int64
			unitPrice decimal.Decimal
		)

		if err := rows.Scan(&date, &customer, &product, &quantity, &unitPrice); err != nil {
			return nil, &domain.LoadError{Source: source, Line: row, Err: errors.Wrap(err, "scan row")}
		}

		tx, err := domain.NewTransaction(date, customer, product, quantity, unitPrice)
		if err != nil {
			return nil, &domain.LoadError{Source: source, Line: row, Err: err}
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate transactions")
	}

	return transactions, nil
}

// sourceName identifica a tabela nos erros de carga
func (r *transactionRepository) sourceName() string {
	return fmt.Sprintf("postgres:%s", r.table)
}

// TransactionSource expõe um TransactionRepository como fonte de dados
type TransactionSource struct {
	repo  TransactionRepository
	table string
}

// NewTransactionSource cria a fonte para a tabela table
func NewTransactionSource(repo TransactionRepository, table string) *TransactionSource {
	if table == "" {
		table = DefaultSalesTable
	}
	return &TransactionSource{repo: repo, table: table}
}

// Name retorna "postgres:<tabela>"
func (s *TransactionSource) Name() string {
	return fmt.Sprintf("postgres:%s", s.table)
}

// Load delega a leitura ao repositório
func (s *TransactionSource) Load(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}
