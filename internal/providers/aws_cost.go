package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// Cost Explorer is only served from us-east-1
const costExplorerRegion = "us-east-1"

const awsCostMetric = "UnblendedCost"

// AWSCostFetcher reads daily spend from AWS Cost Explorer
type AWSCostFetcher struct{}

// NewAWSCostFetcher creates an AWS billing client
func NewAWSCostFetcher() *AWSCostFetcher {
	return &AWSCostFetcher{}
}

// FetchDailyCosts returns spend grouped by service and region for [start, end)
func (f *AWSCostFetcher) FetchDailyCosts(ctx context.Context, creds map[string]string, start, end time.Time) ([]*cost.Record, error) {
	keys, err := require(creds, KeyAWSAccessKeyID, KeyAWSSecretAccessKey)
	if err != nil {
		return nil, err
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(nonEmpty(creds[KeyAWSRegion], costExplorerRegion)),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(keys[0], keys[1], "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := costexplorer.NewFromConfig(cfg, func(o *costexplorer.Options) {
		o.Region = costExplorerRegion
	})

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.UTC().Format(dateLayout)),
			End:   aws.String(end.UTC().Format(dateLayout)),
		},
		Granularity: cetypes.GranularityDaily,
		Metrics:     []string{awsCostMetric},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("REGION")},
		},
	}

	var records []*cost.Record
	for {
		result, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("AWS Cost Explorer API error: %w", err)
		}
		records = append(records, awsRecords(result.ResultsByTime)...)

		if result.NextPageToken == nil || *result.NextPageToken == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}
	return records, nil
}

// awsRecords flattens Cost Explorer results, skipping zero-cost groups
func awsRecords(results []cetypes.ResultByTime) []*cost.Record {
	var records []*cost.Record
	for _, byTime := range results {
		if byTime.TimePeriod == nil || byTime.TimePeriod.Start == nil {
			continue
		}
		day, err := time.Parse(dateLayout, *byTime.TimePeriod.Start)
		if err != nil {
			continue
		}

		for _, group := range byTime.Groups {
			var service, region string
			if len(group.Keys) > 0 {
				service = group.Keys[0]
			}
			if len(group.Keys) > 1 {
				region = group.Keys[1]
			}

			metric, ok := group.Metrics[awsCostMetric]
			if !ok || metric.Amount == nil {
				continue
			}
			amount, err := strconv.ParseFloat(*metric.Amount, 64)
			if err != nil || amount == 0 {
				continue
			}

			records = append(records, &cost.Record{
				Date:       day,
				Service:    service,
				Region:     region,
				CostAmount: money.Round2(amount),
				Currency:   nonEmpty(aws.ToString(metric.Unit), money.Currency),
				Tags:       map[string]string{"source": "cost-explorer"},
			})
		}
	}
	return records
}
