package application

import (
	"context"
	"net/url"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"go.uber.org/zap"
)

const (
	ParamTab             = "tab"
	ParamCharacterSearch = "characterSearch"
	ParamSeriesSearch    = "seriesSearch"
)

func searchParam(collection domain.Collection) string {
	if collection == domain.CollectionSeries {
		return ParamSeriesSearch
	}
	return ParamCharacterSearch
}

// Start seeds the active tab and search terms from the location and issues
// the first fetch of both collections. Calling it again only fetches
// collections whose params changed.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	if o.location != nil && !o.started {
		query := o.location.Query()
		if tab, err := domain.ParseCollection(query.Get(ParamTab)); err == nil {
			o.activeTab = tab
		}
		for collection, p := range o.pipelines {
			if term := strings.TrimSpace(query.Get(searchParam(collection))); term != "" {
				p.term = term
				p.cursor.Offset = 0
			}
		}
	}
	o.started = true

	issued := false
	for _, collection := range []domain.Collection{domain.CollectionCharacters, domain.CollectionSeries} {
		if o.issueIfChangedLocked(ctx, o.pipelines[collection]) {
			issued = true
		}
	}
	o.mu.Unlock()

	if issued {
		o.notify()
	}
}

// syncSearchParams mirrors both search terms into the location, dropping the
// parameter of an empty term. Other parameters are kept.
func (o *Orchestrator) syncSearchParams(ctx context.Context) {
	if o.location == nil {
		return
	}

	o.mu.Lock()
	terms := map[domain.Collection]string{}
	for collection, p := range o.pipelines {
		terms[collection] = p.term
	}
	o.mu.Unlock()

	o.replaceLocation(ctx, func(query url.Values) {
		for collection, term := range terms {
			if term == "" {
				query.Del(searchParam(collection))
				continue
			}
			query.Set(searchParam(collection), term)
		}
	})
}

func (o *Orchestrator) syncActiveTab(ctx context.Context, collection domain.Collection) {
	if o.location == nil {
		return
	}

	o.replaceLocation(ctx, func(query url.Values) {
		query.Set(ParamTab, string(collection))
	})
}

func (o *Orchestrator) replaceLocation(ctx context.Context, edit func(url.Values)) {
	query := o.location.Query()
	edit(query)

	if err := o.location.Replace(ctx, query); err != nil {
		o.logger.Warn("Failed to update location", zap.Error(err))
	}
}
