package ranking

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	model "github.com/vinayw02/StepQuest/internal/models"
	"github.com/vinayw02/StepQuest/internal/period"
)

type fakeMembers struct {
	ids []string
	err error
}

func (f *fakeMembers) Members(context.Context, model.Scope) ([]string, error) {
	return f.ids, f.err
}

type fakeSummer struct {
	sums map[string]int
	err  error
}

func (f *fakeSummer) SumRange(context.Context, []string, time.Time, time.Time) (map[string]int, error) {
	return f.sums, f.err
}

type fakeCache struct {
	rows map[string][]model.LeaderboardEntry // "periodKey|2006-01-02" -> snapshot
	err  error
	puts int
}

func cacheKey(periodKey string, day time.Time) string {
	return periodKey + "|" + day.Format("2006-01-02")
}

func (f *fakeCache) Get(_ context.Context, _ model.Scope, periodKey string, day time.Time) ([]model.LeaderboardEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[cacheKey(periodKey, day)], nil
}

func (f *fakeCache) Put(_ context.Context, _ model.Scope, periodKey string, day time.Time, entries []model.LeaderboardEntry) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = map[string][]model.LeaderboardEntry{}
	}
	f.rows[cacheKey(periodKey, day)] = entries
	f.puts++
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDirectSourceFetch(t *testing.T) {
	direct := NewDirectSource(
		&fakeMembers{ids: []string{"bob", "alice"}},
		&fakeSummer{sums: map[string]int{"alice": 30000, "bob": 45000}},
	)

	entries, err := direct.Fetch(context.Background(), model.GlobalScope(), period.Weekly, day("2026-08-26"), "alice", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].UserID != "bob" || entries[1].UserID != "alice" {
		t.Fatalf("unexpected ordering: %+v", entries)
	}
	if !entries[1].IsCaller {
		t.Error("caller not annotated")
	}
}

func TestDirectSourceEmptyScope(t *testing.T) {
	direct := NewDirectSource(&fakeMembers{ids: []string{}}, &fakeSummer{})
	entries, err := direct.Fetch(context.Background(), model.GroupScope("g1"), period.Daily, day("2026-08-26"), "x", 0)
	if err != nil {
		t.Fatalf("empty scope must not error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %+v", entries)
	}
}

func TestDirectSourcePropagatesStoreError(t *testing.T) {
	direct := NewDirectSource(&fakeMembers{err: model.ErrStoreUnavailable}, &fakeSummer{})
	_, err := direct.Fetch(context.Background(), model.GlobalScope(), period.Daily, day("2026-08-26"), "x", 0)
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCachedSourceMissRecomputesAndStores(t *testing.T) {
	cache := &fakeCache{}
	direct := NewDirectSource(
		&fakeMembers{ids: []string{"alice", "bob"}},
		&fakeSummer{sums: map[string]int{"alice": 100, "bob": 200}},
	)
	src := NewCachedSource(cache, direct)

	ref := day("2026-08-26")
	entries, err := src.Fetch(context.Background(), model.GlobalScope(), period.Daily, ref, "bob", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("miss should write the cache once, wrote %d times", cache.puts)
	}
	if entries[0].UserID != "bob" || !entries[0].IsCaller {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}

	// Deuxième lecture le même jour : servie du cache, pas de réécriture
	if _, err := src.Fetch(context.Background(), model.GlobalScope(), period.Daily, ref, "alice", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("same-day read should hit the cache, wrote %d times", cache.puts)
	}
}

// Une ligne écrite la veille n'est jamais servie : la lecture du lendemain
// fait un miss et recalcule.
func TestCachedSourceStaleDayRecomputes(t *testing.T) {
	cache := &fakeCache{}
	direct := NewDirectSource(
		&fakeMembers{ids: []string{"alice"}},
		&fakeSummer{sums: map[string]int{"alice": 100}},
	)
	src := NewCachedSource(cache, direct)

	if _, err := src.Fetch(context.Background(), model.GlobalScope(), period.Monthly, day("2026-08-25"), "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := src.Fetch(context.Background(), model.GlobalScope(), period.Monthly, day("2026-08-26"), "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 2 {
		t.Fatalf("next-day read should recompute, wrote %d times", cache.puts)
	}
}

// Les deux chemins (cache et agrégation directe) produisent le même ordre :
// le cache est une optimisation, pas une variante sémantique.
func TestCachedAndDirectAgree(t *testing.T) {
	members := &fakeMembers{ids: []string{"u2", "u1", "u3"}}
	summer := &fakeSummer{sums: map[string]int{"u1": 500, "u2": 500, "u3": 900}}
	direct := NewDirectSource(members, summer)
	cached := NewCachedSource(&fakeCache{}, direct)

	ref := day("2026-08-26")
	fromDirect, err := direct.Fetch(context.Background(), model.GlobalScope(), period.Weekly, ref, "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromCache, err := cached.Fetch(context.Background(), model.GlobalScope(), period.Weekly, ref, "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fromDirect, fromCache) {
		t.Fatalf("paths diverged:\ndirect: %+v\ncached: %+v", fromDirect, fromCache)
	}
}

func TestCachedSourceLimitAfterCache(t *testing.T) {
	cache := &fakeCache{}
	direct := NewDirectSource(
		&fakeMembers{ids: []string{"a", "b", "c", "d"}},
		&fakeSummer{sums: map[string]int{"a": 4, "b": 3, "c": 2, "d": 1}},
	)
	src := NewCachedSource(cache, direct)

	entries, err := src.Fetch(context.Background(), model.GlobalScope(), period.Daily, day("2026-08-26"), "d", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("limit not applied, got %d entries", len(entries))
	}
	// Le snapshot caché reste complet même pour une lecture tronquée
	key := cacheKey(period.Key(period.Daily, period.Resolve(period.Daily, day("2026-08-26"))), day("2026-08-26"))
	if got := len(cache.rows[key]); got != 4 {
		t.Fatalf("cache snapshot truncated to %d entries", got)
	}
}

func TestFallbackSourceUsesSecondaryOnError(t *testing.T) {
	direct := NewDirectSource(
		&fakeMembers{ids: []string{"alice"}},
		&fakeSummer{sums: map[string]int{"alice": 100}},
	)
	src := NewFallbackSource(NewCachedSource(&fakeCache{err: model.ErrStoreUnavailable}, direct), direct)

	entries, err := src.Fetch(context.Background(), model.GlobalScope(), period.Daily, day("2026-08-26"), "alice", 0)
	if err != nil {
		t.Fatalf("fallback should have served the ranking: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != "alice" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
