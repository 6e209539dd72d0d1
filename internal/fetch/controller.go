// Package fetch drives the app list fetch lifecycle.
package fetch

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/appdeck/internal/catalog"
	"github.com/five82/appdeck/internal/state"
)

// UnknownErrorMessage is shown when a failure carries no text.
const UnknownErrorMessage = "Unknown error occurred"

// Controller owns the fetch state machine. It is the only writer of its store.
//
// Overlapping fetches are resolved by cancel-and-replace: each Fetch cancels
// the one in flight, and only the most recent fetch may publish its outcome.
type Controller struct {
	repo  catalog.Repository
	store *state.Store
	log   logrus.FieldLogger

	ctx context.Context

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for fetch lifecycle events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New builds a controller and starts the initial fetch. The store is already
// in the loading state when New returns.
func New(ctx context.Context, repo catalog.Repository, store *state.Store, opts ...Option) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	if store == nil {
		store = &state.Store{}
	}
	c := &Controller{
		repo:  repo,
		store: store,
		log:   discardLogger(),
		ctx:   ctx,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Fetch()
	return c
}

// Store returns the state observed by the presentation layer.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Fetch starts a new fetch and returns immediately. Completion is observed
// through the store.
func (c *Controller) Fetch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.ctx.Err() != nil {
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel

	log := c.log.WithFields(logrus.Fields{
		"fetch_id": uuid.NewString(),
		"gen":      gen,
	})
	c.store.Begin()
	log.Debug("fetch started")

	c.wg.Add(1)
	go c.run(ctx, cancel, gen, log)
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, gen uint64, log logrus.FieldLogger) {
	defer c.wg.Done()
	defer cancel()

	records, err := c.fetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		log.WithField("current_gen", c.gen).Debug("discarding superseded fetch result")
		return
	}
	c.cancel = nil
	if c.closed || c.ctx.Err() != nil {
		log.Debug("discarding fetch result after shutdown")
		return
	}
	if err != nil {
		msg := Message(err)
		log.WithError(err).WithField("kind", catalog.KindOf(err).String()).Warn("fetch failed")
		c.store.Fail(msg)
		return
	}
	log.WithField("records", len(records)).Info("fetch succeeded")
	c.store.Succeed(records)
}

func (c *Controller) fetchAll(ctx context.Context) ([]catalog.Record, error) {
	if c.repo == nil {
		return nil, errors.New("no repository configured")
	}
	return c.repo.FetchAll(ctx)
}

// Wait blocks until no fetch is running.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels any fetch in flight, waits for it to exit and disables
// further fetches. The store keeps its last published state, so observers may
// see a final Loading snapshot that never completes. The same holds when the
// parent context ends mid-fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.wg.Wait()
}

// Message converts a repository error into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return UnknownErrorMessage
	}
	return msg
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
