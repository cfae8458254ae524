package providers

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// billingTablePattern matches project.dataset.table identifiers
var billingTablePattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+\.[A-Za-z0-9_]+\.[A-Za-z0-9_]+$`)

// GCPCostFetcher reads daily spend from a BigQuery billing export table
type GCPCostFetcher struct{}

// NewGCPCostFetcher creates a GCP billing client
func NewGCPCostFetcher() *GCPCostFetcher {
	return &GCPCostFetcher{}
}

type gcpCostRow struct {
	Service   string            `bigquery:"service_name"`
	Region    string            `bigquery:"region"`
	Date      bigquery.NullDate `bigquery:"cost_date"`
	DailyCost float64           `bigquery:"daily_cost"`
	Currency  string            `bigquery:"currency"`
}

// FetchDailyCosts returns spend grouped by service and region for [start, end)
func (f *GCPCostFetcher) FetchDailyCosts(ctx context.Context, creds map[string]string, start, end time.Time) ([]*cost.Record, error) {
	keys, err := require(creds, KeyGCPProjectID, KeyGCPBillingDataset)
	if err != nil {
		return nil, err
	}
	projectID, table := keys[0], keys[1]
	if !billingTablePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid billing dataset %q, want project.dataset.table", table)
	}

	var opts []option.ClientOption
	if sa := creds[KeyGCPServiceAccountJSON]; sa != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(sa)))
	}

	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}
	defer client.Close()

	query := client.Query(fmt.Sprintf("SELECT\n"+
		"\tservice.description AS service_name,\n"+
		"\tIFNULL(location.region, 'global') AS region,\n"+
		"\tDATE(usage_start_time) AS cost_date,\n"+
		"\tSUM(cost) AS daily_cost,\n"+
		"\tcurrency\n"+
		"FROM `%s`\n"+
		"WHERE DATE(usage_start_time) >= @start_date AND DATE(usage_start_time) < @end_date\n"+
		"GROUP BY service_name, region, cost_date, currency\n"+
		"ORDER BY cost_date ASC, daily_cost DESC", table))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: civil.DateOf(start.UTC())},
		{Name: "end_date", Value: civil.DateOf(end.UTC())},
	}

	it, err := query.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("BigQuery query error: %w", err)
	}

	var records []*cost.Record
	for {
		var row gcpCostRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("BigQuery row read error: %w", err)
		}
		if rec := gcpRecord(row); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func gcpRecord(row gcpCostRow) *cost.Record {
	if row.DailyCost == 0 || !row.Date.Valid {
		return nil
	}
	return &cost.Record{
		Date:       row.Date.Date.In(time.UTC),
		Service:    row.Service,
		Region:     row.Region,
		CostAmount: money.Round2(row.DailyCost),
		Currency:   nonEmpty(row.Currency, money.Currency),
		Tags:       map[string]string{"source": "bigquery-export"},
	}
}
