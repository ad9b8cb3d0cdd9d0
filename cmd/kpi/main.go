// Command kpi imprime os indicadores de vendas da base configurada
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// options são as flags da linha de comando
type options struct {
	dataPath  string
	customers string
	products  string
	from      string
	to        string
	topN      int
	currency  string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.dataPath, "data", "", "CSV file to read, overrides DATA_PATH")
	flag.StringVar(&opts.customers, "customer", "", "Comma-separated customers to include")
	flag.StringVar(&opts.products, "product", "", "Comma-separated products to include")
	flag.StringVar(&opts.from, "from", "", "Start date filter (YYYY-MM-DD)")
	flag.StringVar(&opts.to, "to", "", "End date filter (YYYY-MM-DD)")
	flag.IntVar(&opts.topN, "top", 0, "Size of the top products table, overrides TOP_N")
	flag.StringVar(&opts.currency, "currency", "S/", "Currency symbol for money values")
	flag.Parse()

	log.Setup("warn")

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("kpi: erro ao gerar relatório")
	}
}

// run carrega a base, aplica o filtro das flags e escreve o relatório em out
func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if opts.dataPath != "" {
		cfg.Dataset.Source = config.SourceCSV
		cfg.Dataset.Path = opts.dataPath
	}
	if opts.topN > 0 {
		cfg.Report.TopN = opts.topN
	}

	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	records, err := dataset.LoadConfigured(ctx, cfg)
	if err != nil {
		return err
	}

	summary := reporting.Run(records, filter, reporting.Options{TopN: cfg.Report.TopN})
	printReport(out, summary, opts.currency)
	return nil
}

// buildFilter monta o filtro a partir das flags
func buildFilter(opts options) (domain.Filter, error) {
	filter := domain.Filter{
		Customers: splitList(opts.customers),
		Products:  splitList(opts.products),
	}

	from, err := utils.ParseDate(opts.from)
	if err != nil {
		return domain.Filter{}, errors.Wrap(err, "-from")
	}
	to, err := utils.ParseDate(opts.to)
	if err != nil {
		return domain.Filter{}, errors.Wrap(err, "-to")
	}
	if from != nil {
		filter.Dates.From = *from
	}
	if to != nil {
		filter.Dates.To = *to
	}

	return filter, nil
}

// splitList separa uma lista por vírgulas descartando itens vazios
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// printReport escreve os KPIs, os produtos mais vendidos e a receita mensal em tabelas
func printReport(out io.Writer, summary *domain.Summary, currency string) {
	money := func(d decimal.Decimal) string {
		return currency + " " + utils.RoundWithTwoDecimalPlace(d).StringFixed(2)
	}

	average := "N/A"
	if value, ok := summary.AverageTicket.Get(); ok {
		average = money(value)
	}

	fmt.Fprintln(out, "Sales indicators")
	kpis := tablewriter.NewWriter(out)
	kpis.SetHeader([]string{"Indicator", "Value"})
	kpis.SetAutoFormatHeaders(false)
	kpis.Append([]string{"Total revenue", money(summary.TotalRevenue)})
	kpis.Append([]string{"Units sold", strconv.FormatInt(summary.TotalQuantity, 10)})
	kpis.Append([]string{"Average ticket", average})
	kpis.Append([]string{"Best selling product", summary.TopProduct.String()})
	kpis.Append([]string{"Top customer", summary.TopCustomer.String()})
	kpis.Render()

	if len(summary.TopProducts) > 0 {
		fmt.Fprintln(out, "\nTop products")
		top := tablewriter.NewWriter(out)
		top.SetHeader([]string{"#", "Product", "Quantity", "Revenue"})
		top.SetAutoFormatHeaders(false)
		for i, p := range summary.TopProducts {
			top.Append([]string{strconv.Itoa(i + 1), p.Product, strconv.FormatInt(p.Quantity, 10), money(p.Revenue)})
		}
		top.Render()
	}

	if len(summary.RevenueByMonth) > 0 {
		fmt.Fprintln(out, "\nMonthly revenue")
		months := tablewriter.NewWriter(out)
		months.SetHeader([]string{"Month", "Quantity", "Revenue"})
		months.SetAutoFormatHeaders(false)
		for _, m := range summary.RevenueByMonth {
			months.Append([]string{m.Month, strconv.FormatInt(m.Quantity, 10), money(m.Revenue)})
		}
		months.Render()
	}
}
