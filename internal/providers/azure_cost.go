package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// AzureCostFetcher reads daily spend from Azure Cost Management
type AzureCostFetcher struct{}

// NewAzureCostFetcher creates an Azure billing client
func NewAzureCostFetcher() *AzureCostFetcher {
	return &AzureCostFetcher{}
}

// FetchDailyCosts returns spend grouped by service and location for [start, end)
func (f *AzureCostFetcher) FetchDailyCosts(ctx context.Context, creds map[string]string, start, end time.Time) ([]*cost.Record, error) {
	keys, err := require(creds, KeyAzureTenantID, KeyAzureClientID, KeyAzureClientSecret, KeyAzureSubscriptionID)
	if err != nil {
		return nil, err
	}

	credential, err := azidentity.NewClientSecretCredential(keys[0], keys[1], keys[2], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	from := start.UTC()
	// The query period is inclusive
	to := end.UTC().Add(-time.Second)
	dimension := armcostmanagement.QueryColumnTypeDimension

	query := armcostmanagement.QueryDefinition{
		Type:       ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe:  ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{From: &from, To: &to},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: ptr(armcostmanagement.GranularityTypeDaily),
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"PreTaxCost": {Name: ptr("PreTaxCost"), Function: ptr(armcostmanagement.FunctionTypeSum)},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{Type: &dimension, Name: ptr("ServiceName")},
				{Type: &dimension, Name: ptr("ResourceLocation")},
			},
		},
	}

	scope := "subscriptions/" + keys[3]
	result, err := client.Usage(ctx, scope, query, nil)
	if err != nil {
		return nil, fmt.Errorf("Azure Cost Management API error: %w", err)
	}
	if result.Properties == nil {
		return nil, nil
	}

	var columns []string
	for _, col := range result.Properties.Columns {
		name := ""
		if col != nil && col.Name != nil {
			name = *col.Name
		}
		columns = append(columns, name)
	}
	return azureRecords(columns, result.Properties.Rows), nil
}

// azureRecords maps query rows to records by column name
func azureRecords(columns []string, rows [][]any) []*cost.Record {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}
	dateIdx, hasDate := index["UsageDate"]
	if !hasDate {
		dateIdx, hasDate = index["UsageDateKey"]
	}
	costIdx, hasCost := index["PreTaxCost"]
	if !hasDate || !hasCost {
		return nil
	}
	currencyIdx, hasCurrency := index["Currency"]

	cell := func(row []any, i int, ok bool) any {
		if !ok || i >= len(row) {
			return nil
		}
		return row[i]
	}

	var records []*cost.Record
	for _, row := range rows {
		amount, _ := cell(row, costIdx, true).(float64)
		if amount == 0 {
			continue
		}
		day, ok := azureDate(cell(row, dateIdx, true))
		if !ok {
			continue
		}
		serviceIdx, hasService := index["ServiceName"]
		locationIdx, hasLocation := index["ResourceLocation"]
		service, _ := cell(row, serviceIdx, hasService).(string)
		location, _ := cell(row, locationIdx, hasLocation).(string)
		currency, _ := cell(row, currencyIdx, hasCurrency).(string)

		records = append(records, &cost.Record{
			Date:       day,
			Service:    service,
			Region:     location,
			CostAmount: money.Round2(amount),
			Currency:   nonEmpty(currency, money.Currency),
			Tags:       map[string]string{"source": "cost-management"},
		})
	}
	return records
}

// azureDate decodes a usage date, which arrives as a YYYYMMDD number
func azureDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case float64:
		n := int(d)
		return time.Date(n/10000, time.Month(n%10000/100), n%100, 0, 0, 0, 0, time.UTC), n > 0
	case string:
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			t, err = time.Parse("20060102", d)
		}
		return t, err == nil
	default:
		return time.Time{}, false
	}
}
