package portfolio

import (
	"context"
	"sync"

	"github.com/gayathrinuthana/portfolio-api/adapters/event"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

// fakeMirror applies the same shallow-merge rule as the production mirror
// but keeps everything reachable for assertions.
type fakeMirror struct {
	mu   sync.Mutex
	docs map[string]*portfolio.Document
}

func newFakeMirror(docs ...*portfolio.Document) *fakeMirror {
	m := &fakeMirror{docs: make(map[string]*portfolio.Document)}
	for _, d := range docs {
		m.docs[d.OwnerID] = d.Clone()
	}
	return m
}

func (m *fakeMirror) Get(ownerID string) (*portfolio.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID)
	}
	return doc.Clone(), nil
}

func (m *fakeMirror) Put(ownerID string, partial portfolio.Partial) (*portfolio.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.docs[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID)
	}
	merged := partial.Apply(existing)
	m.docs[ownerID] = merged
	return merged.Clone(), nil
}

func (m *fakeMirror) Seed(doc *portfolio.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.OwnerID] = doc.Clone()
}

func (m *fakeMirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

type broadcastRecord struct {
	Room    string
	Event   string
	Payload any
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []broadcastRecord
}

func (b *fakeBroadcaster) BroadcastAll(event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastRecord{Event: event, Payload: payload})
}

func (b *fakeBroadcaster) BroadcastRoom(room string, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastRecord{Room: room, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) records() []broadcastRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]broadcastRecord, len(b.events))
	copy(out, b.events)
	return out
}

func (b *fakeBroadcaster) byEvent(event string) []broadcastRecord {
	var out []broadcastRecord
	for _, r := range b.records() {
		if r.Event == event {
			out = append(out, r)
		}
	}
	return out
}

// fakePublisher hands published payloads to the test over a channel because
// the write-behind publish happens off the request goroutine.
type fakePublisher struct {
	portfolioEvents chan event.PortfolioEventPayload
	mediaEvents     chan event.MediaEventPayload
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		portfolioEvents: make(chan event.PortfolioEventPayload, 16),
		mediaEvents:     make(chan event.MediaEventPayload, 16),
	}
}

func (p *fakePublisher) PublishPortfolioEvent(_ context.Context, payload event.PortfolioEventPayload) error {
	p.portfolioEvents <- payload
	return nil
}

func (p *fakePublisher) PublishMediaEvent(_ context.Context, payload event.MediaEventPayload) error {
	p.mediaEvents <- payload
	return nil
}

// fakePortfolioRepo is an in-memory durable store stand-in.
type fakePortfolioRepo struct {
	mu      sync.Mutex
	docs    map[string]*portfolio.Document
	upserts int
}

func newFakePortfolioRepo(docs ...*portfolio.Document) *fakePortfolioRepo {
	r := &fakePortfolioRepo{docs: make(map[string]*portfolio.Document)}
	for _, d := range docs {
		r.docs[d.OwnerID] = d.Clone()
	}
	return r
}

func (r *fakePortfolioRepo) FindByOwnerID(_ context.Context, ownerID string) (*portfolio.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID)
	}
	return doc.Clone(), nil
}

func (r *fakePortfolioRepo) ListAll(_ context.Context) ([]*portfolio.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*portfolio.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (r *fakePortfolioRepo) Upsert(_ context.Context, doc *portfolio.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.OwnerID] = doc.Clone()
	r.upserts++
	return nil
}

func (r *fakePortfolioRepo) Delete(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[ownerID]; !ok {
		return apperror.NewNotFound("portfolio", ownerID)
	}
	delete(r.docs, ownerID)
	return nil
}

func testDoc(ownerID string) *portfolio.Document {
	return &portfolio.Document{
		OwnerID: ownerID,
		Type:    "customer",
		Profile: portfolio.Profile{Name: "Owner", Bio: "seeded"},
		Skills: []portfolio.Skill{
			{Name: "Go", Level: "Advanced"},
			{Name: "SQL", Level: "Intermediate"},
		},
	}
}
