// Package charting desenha os gráficos do dashboard como imagens PNG
package charting

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Tamanho padrão das imagens
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Name identifica um dos gráficos do dashboard
type Name string

const (
	TopProducts    Name = "top-products"
	MonthlyRevenue Name = "monthly-revenue"
	CustomerShare  Name = "customer-share"
)

// Erros de renderização
var (
	ErrNoChartData  = errors.New("nothing to plot")
	ErrUnknownChart = errors.New("unknown chart")
)

// palette são as cores das séries, usadas em ciclo
var palette = []drawing.Color{
	{R: 77, G: 184, B: 255, A: 255},
	{R: 250, G: 134, B: 94, A: 255},
	{R: 165, G: 235, B: 91, A: 255},
	{R: 252, G: 201, B: 100, A: 255},
	{R: 208, G: 134, B: 255, A: 255},
}

// ParseName valida o nome de gráfico vindo da URL
func ParseName(value string) (Name, error) {
	switch name := Name(value); name {
	case TopProducts, MonthlyRevenue, CustomerShare:
		return name, nil
	default:
		return "", errors.Wrapf(ErrUnknownChart, "%q", value)
	}
}

// Renderer desenha os gráficos no tamanho configurado
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer cria um Renderer. Tamanhos não positivos usam os valores padrão
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// Render escreve em w o PNG do gráfico name para o resumo
func (r *Renderer) Render(name Name, summary *domain.Summary, w io.Writer) error {
	if summary == nil {
		return ErrNoChartData
	}

	switch name {
	case TopProducts:
		return r.TopProducts(summary, w)
	case MonthlyRevenue:
		return r.MonthlyRevenue(summary, w)
	case CustomerShare:
		return r.CustomerShare(summary, w)
	default:
		return errors.Wrapf(ErrUnknownChart, "%q", name)
	}
}

// TopProducts é um gráfico de barras da quantidade vendida pelos produtos mais vendidos
func (r *Renderer) TopProducts(summary *domain.Summary, w io.Writer) error {
	if len(summary.TopProducts) == 0 {
		return ErrNoChartData
	}

	bars := make([]chart.Value, 0, len(summary.TopProducts))
	var maxValue float64
	for i, p := range summary.TopProducts {
		value := float64(p.Quantity)
		maxValue = max(maxValue, value)
		bars = append(bars, chart.Value{
			Label: p.Product,
			Value: value,
			Style: barStyle(i),
		})
	}

	return r.renderBars("Top products by quantity", bars, maxValue, unitsFormatter, w)
}

// MonthlyRevenue é um gráfico de linha da receita por mês. Um único mês é
// desenhado como barra, já que a linha precisa de dois pontos.
func (r *Renderer) MonthlyRevenue(summary *domain.Summary, w io.Writer) error {
	months := summary.RevenueByMonth
	if len(months) == 0 {
		return ErrNoChartData
	}

	if len(months) == 1 {
		value := months[0].Revenue.InexactFloat64()
		bars := []chart.Value{{Label: months[0].Month, Value: value, Style: barStyle(0)}}
		return r.renderBars("Monthly revenue", bars, value, moneyFormatter, w)
	}

	xValues := make([]time.Time, 0, len(months))
	yValues := make([]float64, 0, len(months))
	var maxValue float64
	for _, m := range months {
		month, err := time.Parse(domain.MonthLayout, m.Month)
		if err != nil {
			return errors.Wrapf(err, "parse month %q", m.Month)
		}
		value := m.Revenue.InexactFloat64()
		maxValue = max(maxValue, value)
		xValues = append(xValues, month)
		yValues = append(yValues, value)
	}

	graph := chart.Chart{
		Title:      "Monthly revenue",
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(domain.MonthLayout),
		},
		YAxis: chart.YAxis{
			Range:          valueRange(maxValue),
			ValueFormatter: moneyFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Revenue",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: palette[0],
					StrokeWidth: 2,
					DotColor:    palette[0],
					DotWidth:    3,
				},
			},
		},
	}

	return errors.Wrap(graph.Render(chart.PNG, w), "render monthly revenue")
}

// CustomerShare é um gráfico de pizza da participação de cada cliente na receita
func (r *Renderer) CustomerShare(summary *domain.Summary, w io.Writer) error {
	values := make([]chart.Value, 0, len(summary.RevenueByCustomer))
	total := decimal.Zero
	for i, c := range summary.RevenueByCustomer {
		if !c.Revenue.IsPositive() {
			continue
		}
		total = total.Add(c.Revenue)
		values = append(values, chart.Value{
			Label: c.Customer,
			Value: c.Revenue.InexactFloat64(),
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		})
	}

	if len(values) == 0 || !total.IsPositive() {
		return ErrNoChartData
	}

	pie := chart.PieChart{
		Title:      "Revenue share by customer",
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		Values:     values,
	}

	return errors.Wrap(pie.Render(chart.PNG, w), "render customer share")
}

// renderBars desenha um gráfico de barras com o eixo Y começando em zero
func (r *Renderer) renderBars(title string, bars []chart.Value, maxValue float64, formatter chart.ValueFormatter, w io.Writer) error {
	barWidth := r.barWidth(len(bars))
	barChart := chart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		Bars:       bars,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		YAxis: chart.YAxis{
			Range:          valueRange(maxValue),
			ValueFormatter: formatter,
		},
	}

	return errors.Wrapf(barChart.Render(chart.PNG, w), "render %s", title)
}

// barWidth divide a área igualmente entre barras e espaços
func (r *Renderer) barWidth(bars int) int {
	usable := r.Width - 120
	return min(max(usable/(2*bars), 4), 60)
}

// valueRange fixa o eixo em zero com folga. O go-chart rejeita domínio vazio,
// então o limite superior é no mínimo um.
func valueRange(maxValue float64) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: 0, Max: max(maxValue*1.1, 1)}
}

// background reserva espaço para o título
func background() chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    40,
			Left:   20,
			Right:  20,
			Bottom: 20,
		},
	}
}

// barStyle pinta a barra i com a cor correspondente da paleta
func barStyle(i int) chart.Style {
	color := palette[i%len(palette)]
	return chart.Style{
		FillColor:   color,
		StrokeColor: color,
	}
}

// unitsFormatter formata valores do eixo como unidades inteiras
func unitsFormatter(v interface{}) string {
	if vf, isFloat := v.(float64); isFloat {
		return decimal.NewFromFloat(vf).Round(0).String()
	}
	return ""
}

// moneyFormatter formata valores do eixo com duas casas decimais
func moneyFormatter(v interface{}) string {
	if vf, isFloat := v.(float64); isFloat {
		return decimal.NewFromFloat(vf).StringFixed(2)
	}
	return ""
}
