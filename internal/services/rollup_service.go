package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/summitsquad321/TrailMap/internal/metrics"
	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/repository"
)

// RollupService computes per-camera aggregates over a filtered detection
// slice. Results are cached briefly since the dashboard re-requests the same
// filter on every interaction; the ingest path flushes the cache on any write.
type RollupService struct {
	Detections repository.DetectionRepository
	Metrics    *metrics.Metrics
	cache      *gocache.Cache
}

// NewRollupService creates a new RollupService. metrics may be nil.
func NewRollupService(detections repository.DetectionRepository, m *metrics.Metrics) *RollupService {
	return &RollupService{
		Detections: detections,
		Metrics:    m,
		cache:      gocache.New(time.Minute, 5*time.Minute),
	}
}

// FlushCache drops every cached rollup. Called after any detection write.
func (s *RollupService) FlushCache() {
	s.cache.Flush()
}

// Aggregate materializes the full detection set, retains rows matching the
// filter and computes one rollup per camera that has at least one retained
// row. Cameras with zero retained rows are omitted. An empty detection set
// yields an empty result, not an error.
func (s *RollupService) Aggregate(filter models.RollupFilter) (map[string]models.Rollup, error) {
	s.Metrics.IncrementRollupRequests()

	key := cacheKey(filter)
	if cached, ok := s.cache.Get(key); ok {
		s.Metrics.IncrementRollupCacheHits()
		return cached.(map[string]models.Rollup), nil
	}

	detections, err := s.Detections.StreamAll()
	if err != nil {
		return nil, err
	}

	included := make(map[string]struct{}, len(filter.Cameras))
	for _, id := range filter.Cameras {
		included[id] = struct{}{}
	}

	groups := make(map[string]*rollupAccumulator)
	for i := range detections {
		det := &detections[i]
		if _, ok := included[det.CameraID]; !ok {
			continue
		}
		if !dateInRange(det.DateTime, filter.StartDate, filter.EndDate) {
			continue
		}
		hour := det.DateTime.Hour()
		if hour < filter.StartHour || hour > filter.EndHour {
			continue
		}

		acc := groups[det.CameraID]
		if acc == nil {
			acc = &rollupAccumulator{headingCounts: make(map[int]int)}
			groups[det.CameraID] = acc
		}
		acc.observe(det)
	}

	rollups := make(map[string]models.Rollup, len(groups))
	for cameraID, acc := range groups {
		rollups[cameraID] = acc.rollup(cameraID)
	}

	s.cache.Set(key, rollups, gocache.DefaultExpiration)
	return rollups, nil
}

// rollupAccumulator folds one camera's retained detections into a rollup.
type rollupAccumulator struct {
	total    int
	buckSum  int
	doeSum   int
	lastSeen time.Time

	// headingCounts tracks the frequency of each compass degree value;
	// headingOrder remembers first encounter so ties resolve to the value
	// seen first in the grouped sequence.
	headingCounts map[int]int
	headingOrder  []int
}

func (a *rollupAccumulator) observe(det *models.Detection) {
	a.total++
	a.buckSum += det.BuckCount
	a.doeSum += det.DoeCount
	if det.DateTime.After(a.lastSeen) {
		a.lastSeen = det.DateTime
	}

	direction := strings.ToUpper(strings.TrimSpace(det.Direction))
	if deg, ok := models.CompassDegrees[direction]; ok {
		if _, seen := a.headingCounts[deg]; !seen {
			a.headingOrder = append(a.headingOrder, deg)
		}
		a.headingCounts[deg]++
	}
}

func (a *rollupAccumulator) rollup(cameraID string) models.Rollup {
	r := models.Rollup{
		CameraID: cameraID,
		Total:    a.total,
		BuckPct:  round2(float64(a.buckSum) / float64(a.total)),
		DoePct:   round2(float64(a.doeSum) / float64(a.total)),
		LastSeen: a.lastSeen,
	}

	bestCount := 0
	for _, deg := range a.headingOrder {
		if a.headingCounts[deg] > bestCount {
			bestCount = a.headingCounts[deg]
			heading := deg
			r.Heading = &heading
		}
	}
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateInRange compares calendar dates inclusively; a zero bound is open.
func dateInRange(ts, start, end time.Time) bool {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	if !start.IsZero() {
		startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(startDay) {
			return false
		}
	}
	if !end.IsZero() {
		endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
		if day.After(endDay) {
			return false
		}
	}
	return true
}

func cacheKey(filter models.RollupFilter) string {
	cameras := append([]string(nil), filter.Cameras...)
	sort.Strings(cameras)
	// Quote each id so ids containing the join characters cannot alias two
	// distinct filters onto one cache entry.
	quoted := make([]string, len(cameras))
	for i, id := range cameras {
		quoted[i] = strconv.Quote(id)
	}
	return fmt.Sprintf("%s|%s|%s|%d|%d",
		strings.Join(quoted, ","),
		filter.StartDate.Format("2006-01-02"),
		filter.EndDate.Format("2006-01-02"),
		filter.StartHour,
		filter.EndHour,
	)
}
