package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mhosigiri/FeedbackAI/internal/analysis"
	"github.com/mhosigiri/FeedbackAI/internal/enrichment"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/mhosigiri/FeedbackAI/internal/sources"
	"github.com/sirupsen/logrus"
)

// ErrInvalidQuery marks caller contract violations, the only error class
// Analyze surfaces. Environment failures degrade output instead.
var ErrInvalidQuery = errors.New("invalid query")

const (
	defaultLimit  = 10
	maxLimit      = 100
	sourceTimeout = 15 * time.Second
)

// Service runs the analysis pipeline: fetch posts concurrently from every
// enabled source, filter and dedupe, optionally enrich via the external
// classifier, merge, and aggregate into a CSI result.
type Service struct {
	filter     *analysis.RelevanceFilter
	sources    []sources.Source
	classifier enrichment.Classifier
}

// NewService creates a new pipeline service. Sources are consulted in slice
// order, which doubles as dedupe priority. The classifier may be nil.
func NewService(filter *analysis.RelevanceFilter, srcs []sources.Source, classifier enrichment.Classifier) *Service {
	return &Service{
		filter:     filter,
		sources:    srcs,
		classifier: classifier,
	}
}

type fetchResult struct {
	name  string
	posts []models.Post
	ms    int64
}

// Analyze runs one full pipeline pass for the query.
func (s *Service) Analyze(ctx context.Context, query models.Query) (*models.AggregateResult, error) {
	start := time.Now()

	if err := normalizeQuery(&query); err != nil {
		return nil, err
	}

	logrus.Infof("Starting analysis pipeline: query=%q limit=%d", query.Text, query.Limit)

	timings := models.Timings{SourceMS: make(map[string]int64)}
	posts := s.collect(ctx, query, &timings)

	// EXTERNAL_ENRICH: single best-effort call; failure leaves the
	// enrichment map empty and the run proceeds on heuristics.
	items := map[string]enrichment.Item{}
	summary := ""
	if s.classifier != nil && s.classifier.IsEnabled() && len(posts) > 0 {
		enrichStart := time.Now()

		enrichCtx, cancel := context.WithTimeout(ctx, sourceTimeout)
		raw, err := s.classifier.Classify(enrichCtx, posts)
		cancel()

		timings.EnrichMS = time.Since(enrichStart).Milliseconds()
		if err != nil {
			logrus.Warnf("Enrichment failed, falling back to heuristics: %v", err)
		} else {
			items, summary = enrichment.ParsePayload(raw)
			logrus.Infof("Enrichment produced %d items in %dms", len(items), timings.EnrichMS)
		}
	}

	// MERGE + AGGREGATE
	classified := enrichment.MergeAll(posts, items)
	result := analysis.Aggregate(classified, summary)

	timings.TotalMS = time.Since(start).Milliseconds()
	result.Timings = timings

	logrus.Infof("Pipeline completed: %d classified posts, CSI=%v, total=%dms",
		len(classified), result.CSIScore, timings.TotalMS)
	return result, nil
}

// FetchPosts runs the fetch, filter and dedupe stages only, for callers that
// want the raw post set without classification.
func (s *Service) FetchPosts(ctx context.Context, query models.Query) ([]models.Post, error) {
	if err := normalizeQuery(&query); err != nil {
		return nil, err
	}

	timings := models.Timings{SourceMS: make(map[string]int64)}
	return s.collect(ctx, query, &timings), nil
}

// collect fetches concurrently from every selected source, then filters for
// relevance and dedupes. A failed source contributes nothing rather than
// failing the run.
func (s *Service) collect(ctx context.Context, query models.Query, timings *models.Timings) []models.Post {
	selected := s.selectSources(query)
	results := make([]fetchResult, len(selected))
	var wg sync.WaitGroup

	for i, source := range selected {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, sourceTimeout)
			defer cancel()

			fetchStart := time.Now()
			posts, err := src.FetchPosts(fetchCtx, query)
			elapsed := time.Since(fetchStart).Milliseconds()

			if err != nil {
				logrus.Errorf("Source %s failed, continuing without it: %v", src.Name(), err)
				posts = nil
			} else {
				logrus.Infof("Source %s returned %d posts in %dms", src.Name(), len(posts), elapsed)
			}

			results[i] = fetchResult{name: src.Name(), posts: posts, ms: elapsed}
		}(i, source)
	}
	wg.Wait()

	// Concatenate in source-priority order so dedupe keeps the copy from
	// the earlier source.
	var allPosts []models.Post
	for _, result := range results {
		timings.SourceMS[result.name] = result.ms
		allPosts = append(allPosts, result.posts...)
	}

	var relevant []models.Post
	for _, post := range allPosts {
		if s.filter.IsRelevant(post.Text, query) {
			relevant = append(relevant, post)
		}
	}

	posts := analysis.DedupePosts(relevant)
	logrus.Infof("Collected %d posts, %d relevant, %d after dedupe", len(allPosts), len(relevant), len(posts))
	return posts
}

func (s *Service) selectSources(query models.Query) []sources.Source {
	var selected []sources.Source
	for _, source := range s.sources {
		if !source.IsEnabled() {
			continue
		}
		if len(query.Sources) > 0 && !containsFold(query.Sources, source.Name()) {
			continue
		}
		selected = append(selected, source)
	}
	return selected
}

func normalizeQuery(query *models.Query) error {
	query.Text = strings.TrimSpace(query.Text)
	if query.Text == "" {
		return fmt.Errorf("%w: query text must not be empty", ErrInvalidQuery)
	}

	if query.Limit == 0 {
		query.Limit = defaultLimit
	}
	if query.Limit < 1 || query.Limit > maxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidQuery, maxLimit)
	}

	return nil
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}
