// Package admin gathers the administrator's analytics.
package admin

import (
	"context"
	"log"
	"sync"

	"mindcare/internal/api"
)

type Backend interface {
	AdminOverview(ctx context.Context) (*api.Overview, error)
	WeeklyTrends(ctx context.Context) ([]api.WeeklyTrend, error)
	CampusBreakdown(ctx context.Context) ([]api.CampusCount, error)
}

// Report holds whatever loaded. A part that failed stays empty and its error
// is kept under the part's name.
type Report struct {
	Overview api.Overview
	Trends   []api.WeeklyTrend
	Campuses []api.CampusCount
	Errors   map[string]error
}

const (
	PartOverview = "overview"
	PartTrends   = "weekly-trends"
	PartCampuses = "campus-breakdown"
)

// Load fetches the three parts concurrently; none waits on another's
// outcome.
func Load(ctx context.Context, backend Backend) Report {
	report := Report{
		Trends:   []api.WeeklyTrend{},
		Campuses: []api.CampusCount{},
		Errors:   map[string]error{},
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	fail := func(part string, err error) {
		log.Printf("admin %s: %v", part, err)
		mu.Lock()
		report.Errors[part] = err
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		overview, err := backend.AdminOverview(ctx)
		if err != nil {
			fail(PartOverview, err)
			return
		}
		mu.Lock()
		report.Overview = *overview
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		trends, err := backend.WeeklyTrends(ctx)
		if err != nil {
			fail(PartTrends, err)
			return
		}
		mu.Lock()
		if trends != nil {
			report.Trends = trends
		}
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		campuses, err := backend.CampusBreakdown(ctx)
		if err != nil {
			fail(PartCampuses, err)
			return
		}
		mu.Lock()
		if campuses != nil {
			report.Campuses = campuses
		}
		mu.Unlock()
	}()
	wg.Wait()

	return report
}
