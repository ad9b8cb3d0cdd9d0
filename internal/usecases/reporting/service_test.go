package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestService_FilterOptions(t *testing.T) {
	service := NewService(domain.NewRecordSet(sampleRecords(t)), Options{})

	options := service.FilterOptions()
	assert.Equal(t, []string{"Ana", "Bea"}, options.Customers)
	assert.Equal(t, []string{"Gadget", "Widget"}, options.Products)
	require.NotNil(t, options.FirstDate)
	require.NotNil(t, options.LastDate)
	assert.Equal(t, day(t, "2024-01-05"), *options.FirstDate)
	assert.Equal(t, day(t, "2024-02-01"), *options.LastDate)
}

func TestService_FilterOptionsOnEmptySet(t *testing.T) {
	service := NewService(nil, Options{})

	options := service.FilterOptions()
	assert.Empty(t, options.Customers)
	assert.Empty(t, options.Products)
	assert.Nil(t, options.FirstDate)
	assert.Nil(t, options.LastDate)

	summary := service.Summary(domain.Filter{})
	assert.True(t, summary.IsEmpty())
}

func TestService_InstancesDoNotShareState(t *testing.T) {
	first := NewService(domain.NewRecordSet(sampleRecords(t)), Options{})
	second := NewService(domain.NewRecordSet(sampleRecords(t)[:1]), Options{})

	assertDecimal(t, "100", first.Summary(domain.Filter{}).TotalRevenue)
	assertDecimal(t, "20", second.Summary(domain.Filter{}).TotalRevenue)
	assertDecimal(t, "100", first.Summary(domain.Filter{}).TotalRevenue)
}

func TestService_TableAccessors(t *testing.T) {
	service := NewService(domain.NewRecordSet(sampleRecords(t)), Options{})
	filter := domain.Filter{Customers: []string{"Ana"}}

	products := service.ProductRanking(filter)
	require.Len(t, products, 2)
	assert.Equal(t, "Gadget", products[0].Product)

	customers := service.CustomerRanking(filter)
	require.Len(t, customers, 1)
	assertDecimal(t, "70", customers[0].Revenue)

	months := service.MonthlyRevenue(filter)
	require.Len(t, months, 1)
	assert.Equal(t, "2024-01", months[0].Month)
}
