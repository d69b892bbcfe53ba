package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrPageOutOfRange  = errors.New("page is out of range")
	ErrInvalidPageSize = fmt.Errorf("page size must be between 1 and %d", domain.MaxPageSize)
)

type fetchParams struct {
	offset int
	limit  int
	term   string
}

// fetchTag identifies one issued request. A response is applied only when
// its tag is still the newest for the collection and its params still match
// the collection state.
type fetchTag struct {
	generation uint64
	params     fetchParams
	requestID  string
}

type pipeline struct {
	collection domain.Collection
	term       string
	cursor     domain.Cursor
	loading    bool
	err        string
	errSeq     uint64
	generation uint64
	issued     fetchParams
	hasIssued  bool
}

func newPipeline(collection domain.Collection, pageSize int) *pipeline {
	return &pipeline{collection: collection, cursor: domain.NewCursor(pageSize)}
}

func (p *pipeline) params() fetchParams {
	return fetchParams{offset: p.cursor.Offset, limit: p.cursor.Limit, term: p.term}
}

func (p *pipeline) snapshot() CollectionState {
	return CollectionState{
		SearchTerm: p.term,
		Cursor:     p.cursor,
		Loading:    p.loading,
		Error:      p.err,
	}
}

type CollectionState struct {
	SearchTerm string
	Cursor     domain.Cursor
	Loading    bool
	Error      string
}

// Snapshot is a copy of the orchestrator state safe to hand to a renderer.
type Snapshot struct {
	ActiveTab       domain.Collection
	Characters      []domain.Character
	Series          []domain.Series
	CharactersState CollectionState
	SeriesState     CollectionState
	// Loading and Error project both collections onto one flag and one
	// message: any fetch in flight, and the most recent failure.
	Loading bool
	Error   string
}

func (s Snapshot) State(collection domain.Collection) CollectionState {
	if collection == domain.CollectionSeries {
		return s.SeriesState
	}
	return s.CharactersState
}

type OrchestratorOption func(*Orchestrator)

func WithPageSize(size int) OrchestratorOption {
	return func(o *Orchestrator) {
		if size > 0 && size <= domain.MaxPageSize {
			o.pageSize = size
		}
	}
}

func WithLocation(location ports.Location) OrchestratorOption {
	return func(o *Orchestrator) {
		o.location = location
	}
}

func WithOrchestratorLogger(logger *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator owns the characters and series listings: their cursors, search
// terms, results and fetch lifecycle. Every collection fetches independently.
type Orchestrator struct {
	catalog  ports.CatalogClient
	location ports.Location
	logger   *zap.Logger
	pageSize int

	mu         sync.Mutex
	started    bool
	activeTab  domain.Collection
	pipelines  map[domain.Collection]*pipeline
	characters []domain.Character
	series     []domain.Series
	errSeq     uint64

	inflight sync.WaitGroup
	changes  chan struct{}
}

func NewOrchestrator(catalog ports.CatalogClient, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		catalog:  catalog,
		logger:   zap.NewNop(),
		pageSize: domain.DefaultPageSize,
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.activeTab = domain.CollectionCharacters
	o.pipelines = map[domain.Collection]*pipeline{
		domain.CollectionCharacters: newPipeline(domain.CollectionCharacters, o.pageSize),
		domain.CollectionSeries:     newPipeline(domain.CollectionSeries, o.pageSize),
	}
	o.characters = []domain.Character{}
	o.series = []domain.Series{}

	return o
}

func (o *Orchestrator) SetPage(ctx context.Context, collection domain.Collection, page int) error {
	if page < 1 {
		return ErrInvalidPage
	}

	return o.mutate(ctx, collection, func(p *pipeline) error {
		if !p.cursor.Reachable(page) {
			return fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
		}
		p.cursor = p.cursor.WithPage(page)
		return nil
	})
}

func (o *Orchestrator) SetPageSize(ctx context.Context, collection domain.Collection, limit int) error {
	if limit < 1 || limit > domain.MaxPageSize {
		return ErrInvalidPageSize
	}

	return o.mutate(ctx, collection, func(p *pipeline) error {
		p.cursor = p.cursor.WithLimit(limit)
		return nil
	})
}

// SetSearchTerm trims term and, when it differs from the current one, moves
// the collection back to its first page and mirrors the term into the
// location.
func (o *Orchestrator) SetSearchTerm(ctx context.Context, collection domain.Collection, term string) error {
	term = strings.TrimSpace(term)
	changed := false

	err := o.mutate(ctx, collection, func(p *pipeline) error {
		if p.term == term {
			return nil
		}
		p.term = term
		p.cursor.Offset = 0
		changed = true
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		o.syncSearchParams(ctx)
	}
	return nil
}

func (o *Orchestrator) SetActiveTab(ctx context.Context, collection domain.Collection) error {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return err
	}

	o.mu.Lock()
	o.activeTab = collection
	o.mu.Unlock()

	o.notify()
	o.syncActiveTab(ctx, collection)
	return nil
}

// Refresh fetches the collection with its current params even when nothing
// changed since the last fetch.
func (o *Orchestrator) Refresh(ctx context.Context, collection domain.Collection) error {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return err
	}

	o.mu.Lock()
	o.issueLocked(ctx, o.pipelines[collection])
	o.mu.Unlock()

	o.notify()
	return nil
}

// Reset restores the collection's default cursor and empty search term and
// fetches the first page.
func (o *Orchestrator) Reset(ctx context.Context, collection domain.Collection) error {
	changedTerm := false
	err := o.mutate(ctx, collection, func(p *pipeline) error {
		changedTerm = p.term != ""
		total := p.cursor.Total
		p.term = ""
		p.cursor = domain.NewCursor(o.pageSize)
		p.cursor.Total = total
		p.err = ""
		return nil
	})
	if err != nil {
		return err
	}

	if changedTerm {
		o.syncSearchParams(ctx)
	}
	return nil
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	characters := o.pipelines[domain.CollectionCharacters]
	series := o.pipelines[domain.CollectionSeries]

	return Snapshot{
		ActiveTab:       o.activeTab,
		Characters:      slices.Clone(o.characters),
		Series:          slices.Clone(o.series),
		CharactersState: characters.snapshot(),
		SeriesState:     series.snapshot(),
		Loading:         o.loadingLocked(),
		Error:           o.errorLocked(),
	}
}

func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.loadingLocked()
}

func (o *Orchestrator) Error() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.errorLocked()
}

// Changes signals after every state transition. Signals coalesce; receivers
// should read a fresh Snapshot.
func (o *Orchestrator) Changes() <-chan struct{} {
	return o.changes
}

// Wait blocks until no fetch is in flight.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

func (o *Orchestrator) mutate(ctx context.Context, collection domain.Collection, apply func(*pipeline) error) error {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return err
	}

	o.mu.Lock()
	p := o.pipelines[collection]
	if err := apply(p); err != nil {
		o.mu.Unlock()
		return err
	}
	issued := o.issueIfChangedLocked(ctx, p)
	o.mu.Unlock()

	if issued {
		o.notify()
	}
	return nil
}

// issueIfChangedLocked fetches only when the collection's params differ from
// the last issued fetch of that same collection. Nothing is fetched before
// Start.
func (o *Orchestrator) issueIfChangedLocked(ctx context.Context, p *pipeline) bool {
	if !o.started {
		return false
	}
	if p.hasIssued && p.issued == p.params() {
		return false
	}
	o.issueLocked(ctx, p)
	return true
}

func (o *Orchestrator) issueLocked(ctx context.Context, p *pipeline) {
	p.generation++
	p.issued = p.params()
	p.hasIssued = true
	p.loading = true

	tag := fetchTag{generation: p.generation, params: p.issued, requestID: uuid.NewString()}

	o.logger.Debug("fetching collection",
		zap.String("collection", string(p.collection)),
		zap.String("requestId", tag.requestID),
		zap.Int("offset", tag.params.offset),
		zap.Int("limit", tag.params.limit),
		zap.String("search", tag.params.term),
	)

	o.inflight.Add(1)
	go o.fetch(ctx, p.collection, tag)
}

func (o *Orchestrator) fetch(ctx context.Context, collection domain.Collection, tag fetchTag) {
	defer o.inflight.Done()

	offset := tag.params.offset
	limit := tag.params.limit
	query := ports.CatalogQuery{Offset: &offset, Limit: &limit, StartsWith: tag.params.term}

	switch collection {
	case domain.CollectionCharacters:
		page, err := o.catalog.FetchCharacters(ctx, query)
		o.complete(collection, tag, page.Total, err, func() {
			o.characters = nonNil(page.Results)
		})
	case domain.CollectionSeries:
		page, err := o.catalog.FetchSeries(ctx, query)
		o.complete(collection, tag, page.Total, err, func() {
			o.series = nonNil(page.Results)
		})
	}
}

func (o *Orchestrator) complete(collection domain.Collection, tag fetchTag, total int, fetchErr error, replaceResults func()) {
	o.mu.Lock()
	p := o.pipelines[collection]
	if tag.generation != p.generation || tag.params != p.params() {
		o.mu.Unlock()
		o.logger.Debug("discarding stale response",
			zap.String("collection", string(collection)),
			zap.String("requestId", tag.requestID),
		)
		return
	}

	p.loading = false
	if fetchErr != nil {
		p.err = fetchErrorMessage(collection)
		o.errSeq++
		p.errSeq = o.errSeq
	} else {
		replaceResults()
		p.cursor.Total = total
		p.err = ""
	}
	o.mu.Unlock()

	if fetchErr != nil {
		o.logger.Error(fetchErrorMessage(collection),
			zap.String("requestId", tag.requestID),
			zap.Error(fetchErr),
		)
	}
	o.notify()
}

func (o *Orchestrator) loadingLocked() bool {
	for _, p := range o.pipelines {
		if p.loading {
			return true
		}
	}
	return false
}

func (o *Orchestrator) errorLocked() string {
	var latest *pipeline
	for _, p := range o.pipelines {
		if p.err == "" {
			continue
		}
		if latest == nil || p.errSeq > latest.errSeq {
			latest = p
		}
	}
	if latest == nil {
		return ""
	}
	return latest.err
}

func (o *Orchestrator) notify() {
	select {
	case o.changes <- struct{}{}:
	default:
	}
}

func fetchErrorMessage(collection domain.Collection) string {
	return "Error fetching " + string(collection)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
