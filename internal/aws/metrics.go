package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricNamespace groups all storefront metrics in CloudWatch.
const MetricNamespace = "SneakerMarket"

// Metrics publishes counters to CloudWatch.
type Metrics struct {
	client  CloudWatchAPI
	nowFunc func() time.Time
}

// NewMetrics returns a Metrics publisher.
func NewMetrics(client CloudWatchAPI) *Metrics {
	return &Metrics{
		client:  client,
		nowFunc: time.Now,
	}
}

// PutCount emits a single Count datum under MetricNamespace.
func (m *Metrics) PutCount(ctx context.Context, name string, value float64, dimensions map[string]string) error {
	now := m.nowFunc()

	var dims []cwtypes.Dimension
	for k, v := range dimensions {
		k, v := k, v
		dims = append(dims, cwtypes.Dimension{Name: &k, Value: &v})
	}

	ns := MetricNamespace
	input := &cloudwatch.PutMetricDataInput{
		Namespace: &ns,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Value:      &value,
				Unit:       cwtypes.StandardUnitCount,
				Timestamp:  &now,
				Dimensions: dims,
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
