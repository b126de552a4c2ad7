package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/readupapp/readup-go/internal/bus"
	"github.com/readupapp/readup-go/internal/domain"
)

type fakeRecAPI struct {
	mu        sync.Mutex
	books     []domain.Book
	authors   []domain.Author
	events    []domain.Event
	booksErr  error
	refreshes int

	// notify receives a signal after each completed fetch cycle.
	notify chan struct{}
}

func (f *fakeRecAPI) FetchRecommendedBooks(context.Context) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	return f.books, f.booksErr
}

func (f *fakeRecAPI) FetchRecommendedAuthors(context.Context) ([]domain.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authors, nil
}

func (f *fakeRecAPI) FetchRecommendedEvents(context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	events := f.events
	f.mu.Unlock()
	if f.notify != nil {
		f.notify <- struct{}{}
	}
	return events, nil
}

func TestRecommendationStore_RefreshAll(t *testing.T) {
	api := &fakeRecAPI{
		books:   []domain.Book{{ID: 1, Title: "Dune"}},
		authors: []domain.Author{{ID: 2, Name: "Jane Doe"}},
		events:  []domain.Event{{ID: 3, Title: "Reading"}},
	}
	s := NewRecommendationStore(api, bus.New(), zerolog.Nop())

	if err := s.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}
	if len(s.Books()) != 1 || len(s.Authors()) != 1 || len(s.Events()) != 1 {
		t.Fatalf("caches = %d/%d/%d, want 1/1/1", len(s.Books()), len(s.Authors()), len(s.Events()))
	}
}

func TestRecommendationStore_PartialFailureKeepsSuccessfulLists(t *testing.T) {
	api := &fakeRecAPI{
		authors:  []domain.Author{{ID: 2, Name: "Jane Doe"}},
		booksErr: errors.New("books endpoint down"),
	}
	s := NewRecommendationStore(api, bus.New(), zerolog.Nop())

	err := s.RefreshAll(context.Background())
	if err == nil {
		t.Fatal("expected partial failure to surface")
	}
	if len(s.Authors()) != 1 {
		t.Fatalf("successful author list discarded: %#v", s.Authors())
	}
	if len(s.Books()) != 0 {
		t.Fatalf("failed book list populated: %#v", s.Books())
	}
}

func TestRecommendationStore_RefreshesOnShelfChange(t *testing.T) {
	api := &fakeRecAPI{
		books:  []domain.Book{{ID: 1, Title: "Dune"}},
		notify: make(chan struct{}, 4),
	}
	b := bus.New()
	s := NewRecommendationStore(api, b, zerolog.Nop())

	b.Publish(bus.Message{Topic: bus.TopicShelfChanged, EntityID: 5})

	select {
	case <-api.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("shelf change never triggered a refresh")
	}

	// The refresh goroutine writes the cache after its last fetch returns;
	// poll briefly rather than racing it.
	deadline := time.Now().Add(2 * time.Second)
	for len(s.Books()) != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("cache empty after triggered refresh: %#v", s.Books())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRecommendationStore_RefreshesOnFollowChange(t *testing.T) {
	api := &fakeRecAPI{notify: make(chan struct{}, 4)}
	b := bus.New()
	NewRecommendationStore(api, b, zerolog.Nop())

	b.Publish(bus.Message{Topic: bus.TopicFollowChanged, EntityID: 9})

	select {
	case <-api.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("follow change never triggered a refresh")
	}
}

func TestRecommendationStore_RefreshFailureIsNotSurfacedToPublisher(t *testing.T) {
	api := &fakeRecAPI{
		booksErr: errors.New("backend down"),
		notify:   make(chan struct{}, 4),
	}
	b := bus.New()
	NewRecommendationStore(api, b, zerolog.Nop())

	// Publish must not panic or block even though the refresh will fail.
	b.Publish(bus.Message{Topic: bus.TopicShelfChanged})

	select {
	case <-api.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh never ran")
	}
}
