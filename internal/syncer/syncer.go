// Package syncer keeps an in-memory working copy of the site document in
// sync with the content API. Local mutations are applied immediately and
// persisted in the background after a debounce window, so bursts of edits
// collapse into a single write carrying the latest state.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vikascatering/catering-admin/internal/content"
)

// Syncer holds the working document and the background writer.
type Syncer struct {
	client   *Client
	debounce time.Duration

	// AllowOffline keeps Open from failing when the initial fetch
	// errors; the syncer then starts from the built-in defaults.
	AllowOffline bool

	mu  sync.Mutex
	doc content.Document

	// pending holds at most the latest unsaved snapshot. A newer
	// snapshot replaces an older one that has not been picked up yet.
	pendingMu sync.Mutex
	pending   content.Document
	kick      chan struct{}

	done   chan struct{}
	closed sync.Once
}

// New creates a Syncer over client with the given debounce window.
func New(client *Client, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = time.Second
	}

	return &Syncer{
		client:   client,
		debounce: debounce,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Open fetches the stored document, merges it over the built-in defaults
// and starts the background writer. A missing document yields the plain
// defaults.
func (s *Syncer) Open(ctx context.Context) error {
	doc, err := s.client.FetchDocument(ctx)
	if err != nil {
		if !s.AllowOffline {
			return err
		}

		log.Warn().Err(err).Msg("initial fetch failed, starting from defaults")
		doc = nil
	}

	s.mu.Lock()
	s.doc = content.MergeWithDefaults(doc)
	s.mu.Unlock()

	go s.writeLoop()

	return nil
}

// Verify checks the session's token against the API. A rejected token is
// always an error; a transport failure counts as unauthenticated too,
// unless AllowOffline is set, in which case the session continues as if
// the token were good.
func (s *Syncer) Verify(ctx context.Context) error {
	err := s.client.Verify(ctx)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrUnauthorized) {
		return err
	}

	if s.AllowOffline {
		log.Warn().Err(err).Msg("token verification unreachable, continuing offline")
		return nil
	}

	return err
}

// Document returns a deep copy of the current working document.
func (s *Syncer) Document() content.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return content.MergeWithDefaults(s.doc)
}

// UpdateData shallow-merges the given top-level sections over the working
// document and schedules a save. Sections the partial does not mention keep
// their current state, including earlier unsaved edits.
func (s *Syncer) UpdateData(doc content.Document) {
	s.mu.Lock()
	if s.doc == nil {
		s.doc = content.MergeWithDefaults(nil)
	}
	for name, value := range doc {
		s.doc[name] = value
	}
	snapshot := content.MergeWithDefaults(s.doc)
	s.mu.Unlock()

	s.schedule(snapshot)
}

// UpdateSection replaces one top-level section and schedules a save.
func (s *Syncer) UpdateSection(name string, value any) {
	s.mu.Lock()
	if s.doc == nil {
		s.doc = content.MergeWithDefaults(nil)
	}
	s.doc[name] = value
	snapshot := content.MergeWithDefaults(s.doc)
	s.mu.Unlock()

	s.schedule(snapshot)
}

// ResetToDefaults discards all stored content and schedules a save of the
// built-in defaults.
func (s *Syncer) ResetToDefaults() {
	s.mu.Lock()
	s.doc = content.Defaults()
	snapshot := content.MergeWithDefaults(s.doc)
	s.mu.Unlock()

	s.schedule(snapshot)
}

// schedule stores snapshot as the pending write, replacing any older
// snapshot, and wakes the writer.
func (s *Syncer) schedule(snapshot content.Document) {
	if !s.client.HasToken() {
		// Read-only session, keep local edits in memory only.
		return
	}

	s.pendingMu.Lock()
	s.pending = snapshot
	s.pendingMu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// takePending removes and returns the pending snapshot, if any.
func (s *Syncer) takePending() content.Document {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()

	doc := s.pending
	s.pending = nil

	return doc
}

func (s *Syncer) writeLoop() {
	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-s.done:
			timer.Stop()
			return
		case <-s.kick:
			timer.Reset(s.debounce)
		case <-timer.C:
			s.flushPending()
		}
	}
}

func (s *Syncer) flushPending() {
	doc := s.takePending()
	if doc == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.client.SaveDocument(ctx, doc); err != nil {
		log.Error().Err(err).Msg("background save failed")
	}
}

// Flush writes any pending snapshot immediately, bypassing the debounce
// window.
func (s *Syncer) Flush(ctx context.Context) error {
	doc := s.takePending()
	if doc == nil {
		return nil
	}

	return s.client.SaveDocument(ctx, doc)
}

// Close stops the background writer. Pending edits are not flushed; call
// Flush first when they must be persisted.
func (s *Syncer) Close() {
	s.closed.Do(func() {
		close(s.done)
	})
}
