package youtube

import (
	"context"
	"errors"
	"testing"
	"time"
)

// providerFunc adapts a function to the DetailsProvider interface.
type providerFunc func(ctx context.Context, videoID string) (Details, error)

func (f providerFunc) Details(ctx context.Context, videoID string) (Details, error) {
	return f(ctx, videoID)
}

func TestCachingProvider(t *testing.T) {
	calls := 0
	base := providerFunc(func(ctx context.Context, videoID string) (Details, error) {
		calls++
		return Details{Title: "Test"}, nil
	})

	cache := NewCachingProvider(base, time.Hour)

	if _, err := cache.Details(context.Background(), "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if _, err := cache.Details(context.Background(), "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Details() error = %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected base provider called once, got %d", calls)
	}
}

func TestCachingProviderDoesNotCacheFailures(t *testing.T) {
	calls := 0
	base := providerFunc(func(ctx context.Context, videoID string) (Details, error) {
		calls++
		if calls == 1 {
			return Details{}, ErrVideoNotFound
		}
		return Details{Title: "Recovered"}, nil
	})

	cache := NewCachingProvider(base, time.Hour)

	if _, err := cache.Details(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
	details, err := cache.Details(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if details.Title != "Recovered" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestCachingProviderNilBase(t *testing.T) {
	var cache *CachingProvider
	if _, err := cache.Details(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, ErrClientUnavailable) {
		t.Fatalf("expected ErrClientUnavailable, got %v", err)
	}
}
