// Package mockdata produces synthetic cost rows and resource inventories for
// demo accounts.
package mockdata

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/money"
)

// Days is the number of calendar days generated per account
const Days = 30

// ResourceCount is the number of resources generated per account
const ResourceCount = 15

const defaultBaseCost = 100.0

var services = map[string][]string{
	account.ProviderAWS:   {"EC2", "RDS", "S3", "Lambda", "CloudFront", "EBS"},
	account.ProviderAzure: {"Virtual Machines", "SQL Database", "Blob Storage", "Functions", "CDN"},
	account.ProviderGCP:   {"Compute Engine", "Cloud SQL", "Cloud Storage", "Cloud Functions", "Cloud CDN"},
}

var regions = map[string][]string{
	account.ProviderAWS:   {"us-east-1", "us-west-2", "eu-west-1"},
	account.ProviderAzure: {"East US", "West Europe", "Southeast Asia"},
	account.ProviderGCP:   {"us-central1", "europe-west1", "asia-east1"},
}

var resourceTypes = map[string][]string{
	account.ProviderAWS:   {"EC2", "RDS", "EBS", "S3"},
	account.ProviderAzure: {"VM", "SQL", "Disk", "Storage"},
	account.ProviderGCP:   {"VM", "SQL", "Disk", "Storage"},
}

var baseCosts = map[string]float64{
	"EC2":              450,
	"RDS":              320,
	"S3":               180,
	"Lambda":           85,
	"CloudFront":       120,
	"EBS":              95,
	"Virtual Machines": 480,
	"SQL Database":     340,
	"Blob Storage":     160,
	"Functions":        75,
	"CDN":              110,
	"Compute Engine":   460,
	"Cloud SQL":        330,
	"Cloud Storage":    170,
	"Cloud Functions":  80,
	"Cloud CDN":        115,
}

var teams = []string{"Engineering", "Data Science", "DevOps", "Marketing", "Product"}

// Resource is a synthetic cloud resource with utilisation figures
type Resource struct {
	ResourceID     string
	ResourceType   string
	ResourceName   string
	Region         string
	MonthlyCost    float64
	CPUUtilization float64
	Status         string
	CreatedAt      time.Time
}

// Resource status values
const (
	StatusIdle    = "idle"
	StatusRunning = "running"
)

// Generator owns a random source. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New returns a generator seeded from the runtime's random source
func New() *Generator {
	return NewSeeded(rand.Uint64())
}

// NewSeeded returns a deterministic generator
func NewSeeded(seed uint64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// WithClock overrides the generator's notion of now
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Services returns the billed services for a provider
func Services(provider string) []string { return services[provider] }

// Regions returns the regions generated for a provider
func Regions(provider string) []string { return regions[provider] }

// BaseCost returns the daily base cost for a service
func BaseCost(service string) float64 {
	if c, ok := baseCosts[service]; ok {
		return c
	}
	return defaultBaseCost
}

// CostData generates Days days of spend ending today (UTC) for every
// service and region of the provider.
func (g *Generator) CostData(provider string) []*cost.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	svcs := services[provider]
	regs := regions[provider]
	now := g.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	records := make([]*cost.Record, 0, Days*len(svcs)*len(regs))
	for i := Days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		for _, svc := range svcs {
			for _, region := range regs {
				variance := (g.rnd.Float64() - 0.5) * 0.3
				env := "development"
				if g.rnd.Float64() > 0.5 {
					env = "production"
				}
				records = append(records, &cost.Record{
					Date:       day,
					Service:    svc,
					Region:     region,
					CostAmount: money.Round2(BaseCost(svc) * (1 + variance)),
					Currency:   money.Currency,
					Tags: map[string]string{
						"environment": env,
						"team":        teams[g.rnd.IntN(len(teams))],
					},
				})
			}
		}
	}
	return records
}

// Resources generates ResourceCount resources for the provider
func (g *Generator) Resources(provider string) []Resource {
	g.mu.Lock()
	defer g.mu.Unlock()

	types := resourceTypes[provider]
	if len(types) == 0 {
		return nil
	}
	region := ""
	if regs := regions[provider]; len(regs) > 0 {
		region = regs[0]
	}
	now := g.now()

	out := make([]Resource, 0, ResourceCount)
	for i := 0; i < ResourceCount; i++ {
		typ := types[g.rnd.IntN(len(types))]
		status := StatusRunning
		monthly := money.Round2(g.rnd.Float64() * 500)
		cpu := money.Round1(g.rnd.Float64() * 100)
		if g.rnd.Float64() > 0.8 {
			status = StatusIdle
		}
		age := time.Duration(g.rnd.Float64() * float64(90*24*time.Hour))

		out = append(out, Resource{
			ResourceID:     fmt.Sprintf("%s-%s-%d", strings.ToLower(provider), strings.ToLower(typ), i+1),
			ResourceType:   typ,
			ResourceName:   fmt.Sprintf("%s-%d", typ, i+1),
			Region:         region,
			MonthlyCost:    monthly,
			CPUUtilization: cpu,
			Status:         status,
			CreatedAt:      now.Add(-age),
		})
	}
	return out
}
