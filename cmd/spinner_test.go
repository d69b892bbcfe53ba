package cmd

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu         sync.Mutex
	state      application.CollectionState
	changes    chan struct{}
	refreshErr error
	refreshed  []domain.Collection
}

func newFakeFetcher(state application.CollectionState) *fakeFetcher {
	return &fakeFetcher{state: state, changes: make(chan struct{}, 1)}
}

func (f *fakeFetcher) Refresh(_ context.Context, collection domain.Collection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed = append(f.refreshed, collection)
	return f.refreshErr
}

func (f *fakeFetcher) Snapshot() application.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return application.Snapshot{CharactersState: f.state, SeriesState: f.state}
}

func (f *fakeFetcher) Changes() <-chan struct{} {
	return f.changes
}

func (f *fakeFetcher) settle(total int, errMessage string) {
	f.mu.Lock()
	f.state.Loading = false
	f.state.Cursor.Total = total
	f.state.Error = errMessage
	f.mu.Unlock()
	f.changes <- struct{}{}
}

func TestWatchFetchReportsLoadingUntilFetchSettles(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher(application.CollectionState{
		SearchTerm: "Spider",
		Cursor:     domain.Cursor{Offset: 20, Limit: 20},
		Loading:    true,
	})
	updates := watchFetch(context.Background(), fetcher, domain.CollectionCharacters)

	first := <-updates
	assert.False(t, first.done)
	assert.Equal(t, `Fetching characters starting with "Spider" (page 2)...`, first.label)

	fetcher.settle(95, "")

	var last progress
	for update := range updates {
		last = update
	}
	assert.True(t, last.done)
	require.NoError(t, last.err)
	assert.Equal(t, `Fetching characters starting with "Spider" (page 2 of 5)...`, last.label)
	assert.Equal(t, []domain.Collection{domain.CollectionCharacters}, fetcher.refreshed)
}

func TestWatchFetchLeavesFetchFailureInState(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher(application.CollectionState{Cursor: domain.NewCursor(20), Loading: true})
	updates := watchFetch(context.Background(), fetcher, domain.CollectionSeries)

	go fetcher.settle(0, "Error fetching series")

	require.NoError(t, awaitProgress(updates))
	assert.Equal(t, "Error fetching series", fetcher.Snapshot().SeriesState.Error)
}

func TestWatchFetchReturnsRefusedRefresh(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher(application.CollectionState{})
	fetcher.refreshErr = domain.ErrUnsupportedCollection

	err := awaitProgress(watchFetch(context.Background(), fetcher, domain.Collection("comics")))
	require.ErrorIs(t, err, domain.ErrUnsupportedCollection)
}

func TestWatchFetchStopsWhenContextIsCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fetcher := newFakeFetcher(application.CollectionState{Cursor: domain.NewCursor(20), Loading: true})
	updates := watchFetch(ctx, fetcher, domain.CollectionCharacters)

	<-updates
	cancel()

	select {
	case update, ok := <-updates:
		if ok {
			assert.True(t, update.done)
			assert.ErrorIs(t, update.err, context.Canceled)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestRunWithSpinnerReturnsWorkError(t *testing.T) {
	t.Parallel()

	errWrongPassword := errors.New("wrong email or password")
	var output bytes.Buffer

	err := runWithSpinner(context.Background(), &output, "Signing in...", func(context.Context) error {
		return errWrongPassword
	})
	require.ErrorIs(t, err, errWrongPassword)
}

func TestSpinnerModelKeepsLabelWhenDoneUpdateHasNone(t *testing.T) {
	t.Parallel()

	model := newSpinnerModel(nil)
	updated, _ := model.Update(progressMsg{label: "Fetching series (page 1)..."})
	model = updated.(spinnerModel)
	assert.Contains(t, model.View(), "Fetching series (page 1)...")

	updated, cmd := model.Update(progressMsg{done: true})
	model = updated.(spinnerModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Fetching series (page 1)...", model.current.label)
	assert.Empty(t, model.View())
}
