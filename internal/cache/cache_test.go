package cache

import (
	"context"
	"errors"
	"testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Read Fetches On Miss", func(t *testing.T) {
		s := NewStore(nil)
		calls := 0

		value, err := s.Read(ctx, Musics(), func(context.Context) (any, error) {
			calls++
			return []string{"a", "b"}, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 fetch, got %d", calls)
		}
		if got := value.([]string); len(got) != 2 {
			t.Errorf("unexpected value: %v", got)
		}
	})

	t.Run("Read Serves Cached Entry", func(t *testing.T) {
		s := NewStore(nil)
		calls := 0
		fetch := func(context.Context) (any, error) {
			calls++
			return calls, nil
		}

		s.Read(ctx, Musics(), fetch)
		value, err := s.Read(ctx, Musics(), fetch)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected second read to be served from cache, fetched %d times", calls)
		}
		if value.(int) != 1 {
			t.Errorf("expected cached value 1, got %v", value)
		}
	})

	t.Run("Invalidate Triggers Refetch", func(t *testing.T) {
		s := NewStore(nil)
		calls := 0
		fetch := func(context.Context) (any, error) {
			calls++
			return calls, nil
		}

		s.Read(ctx, MyPlaylists(), fetch)
		s.Invalidate(MyPlaylists())

		// Invalidation alone must not fetch; only the next read does.
		if calls != 1 {
			t.Fatalf("invalidate should be lazy, got %d fetches", calls)
		}

		value, _ := s.Read(ctx, MyPlaylists(), fetch)
		if calls != 2 {
			t.Errorf("expected refetch after invalidation, got %d fetches", calls)
		}
		if value.(int) != 2 {
			t.Errorf("expected refreshed value 2, got %v", value)
		}
	})

	t.Run("Invalidate Only Touches Named Keys", func(t *testing.T) {
		s := NewStore(nil)
		calls := map[string]int{}
		fetch := func(name string) func(context.Context) (any, error) {
			return func(context.Context) (any, error) {
				calls[name]++
				return name, nil
			}
		}

		s.Read(ctx, Musics(), fetch("musics"))
		s.Read(ctx, LikedMusics(), fetch("liked"))
		s.Invalidate(Musics())

		s.Read(ctx, Musics(), fetch("musics"))
		s.Read(ctx, LikedMusics(), fetch("liked"))

		if calls["musics"] != 2 {
			t.Errorf("expected musics refetch, got %d", calls["musics"])
		}
		if calls["liked"] != 1 {
			t.Errorf("expected liked to stay cached, got %d", calls["liked"])
		}
	})

	t.Run("Fetch Failure Keeps Previous Value", func(t *testing.T) {
		s := NewStore(nil)
		fetchErr := errors.New("network unreachable")

		s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return "original", nil
		})
		s.Invalidate(Musics())

		value, err := s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return nil, fetchErr
		})
		if !errors.Is(err, fetchErr) {
			t.Fatalf("expected fetch error to surface, got %v", err)
		}
		if value != "original" {
			t.Errorf("expected stale value to be served, got %v", value)
		}

		// Entry stays stale: a later successful read replaces it.
		value, err = s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return "refreshed", nil
		})
		if err != nil {
			t.Fatalf("expected recovery, got %v", err)
		}
		if value != "refreshed" {
			t.Errorf("expected refreshed value, got %v", value)
		}
	})

	t.Run("Fetch Failure With No Previous Value", func(t *testing.T) {
		s := NewStore(nil)
		fetchErr := errors.New("boom")

		value, err := s.Read(ctx, Playlist(1), func(context.Context) (any, error) {
			return nil, fetchErr
		})
		if !errors.Is(err, fetchErr) {
			t.Fatalf("expected error, got %v", err)
		}
		if value != nil {
			t.Errorf("expected nil value, got %v", value)
		}
	})

	t.Run("Scoped Keys Are Distinct", func(t *testing.T) {
		if Playlist(1) == Playlist(2) {
			t.Error("expected distinct keys for distinct playlists")
		}
		if Playlist(1) != Playlist(1) {
			t.Error("expected identical keys for the same playlist")
		}
		if got := Playlist(42).String(); got != "playlist(42)" {
			t.Errorf("unexpected key string: %s", got)
		}
		if got := Musics().String(); got != "musics" {
			t.Errorf("unexpected key string: %s", got)
		}
	})

	t.Run("Drop Removes Entry", func(t *testing.T) {
		s := NewStore(nil)
		s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return "v", nil
		})

		s.Drop(Musics())

		if _, ok := s.Peek(Musics()); ok {
			t.Error("expected entry to be gone after drop")
		}

		_, err := s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return nil, errors.New("down")
		})
		if err == nil {
			t.Error("expected error with no stale fallback after drop")
		}
	})

	t.Run("Invalidate During In-Flight Fetch Keeps Entry Stale", func(t *testing.T) {
		s := NewStore(nil)
		fetch := func(context.Context) (any, error) {
			return "seed", nil
		}

		s.Read(ctx, Musics(), fetch)
		s.Invalidate(Musics())

		// The refetch blocks until released, modeling a mutation that
		// completes on another goroutine while the fetch is outstanding.
		fetchStarted := make(chan struct{})
		releaseFetch := make(chan struct{})
		done := make(chan struct{})

		go func() {
			defer close(done)
			s.Read(ctx, Musics(), func(context.Context) (any, error) {
				close(fetchStarted)
				<-releaseFetch
				return "pre-mutation", nil
			})
		}()

		<-fetchStarted
		s.Invalidate(Musics())
		close(releaseFetch)
		<-done

		if _, fresh := s.Peek(Musics()); fresh {
			t.Fatal("expected entry to stay stale when invalidated during the fetch")
		}

		value, err := s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return "post-mutation", nil
		})
		if err != nil {
			t.Fatalf("expected refetch to succeed, got %v", err)
		}
		if value != "post-mutation" {
			t.Errorf("expected the next read to refetch, got %v", value)
		}
	})

	t.Run("Invalidate Before First Entry Lands", func(t *testing.T) {
		s := NewStore(nil)

		fetchStarted := make(chan struct{})
		releaseFetch := make(chan struct{})
		done := make(chan struct{})

		go func() {
			defer close(done)
			s.Read(ctx, Musics(), func(context.Context) (any, error) {
				close(fetchStarted)
				<-releaseFetch
				return "first", nil
			})
		}()

		<-fetchStarted
		s.InvalidateAll()
		close(releaseFetch)
		<-done

		if _, fresh := s.Peek(Musics()); fresh {
			t.Fatal("expected first entry to land stale after a blanket invalidation")
		}
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		s := NewStore(nil)
		calls := 0
		fetch := func(context.Context) (any, error) {
			calls++
			return calls, nil
		}

		s.Read(ctx, Musics(), fetch)
		s.Read(ctx, MyPlaylists(), fetch)
		s.InvalidateAll()
		s.Read(ctx, Musics(), fetch)
		s.Read(ctx, MyPlaylists(), fetch)

		if calls != 4 {
			t.Errorf("expected all entries refetched, got %d fetches", calls)
		}
	})
}

func TestReadAs(t *testing.T) {
	ctx := context.Background()

	t.Run("Typed Read", func(t *testing.T) {
		s := NewStore(nil)

		values, err := ReadAs(ctx, s, Musics(), func(context.Context) ([]string, error) {
			return []string{"x"}, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(values) != 1 || values[0] != "x" {
			t.Errorf("unexpected values: %v", values)
		}
	})

	t.Run("Type Mismatch", func(t *testing.T) {
		s := NewStore(nil)
		s.Read(ctx, Musics(), func(context.Context) (any, error) {
			return 42, nil
		})

		_, err := ReadAs(ctx, s, Musics(), func(context.Context) ([]string, error) {
			return nil, nil
		})
		if err == nil {
			t.Error("expected type mismatch error")
		}
	})
}
