package g2p

import (
	"context"
	"reflect"
	"testing"
)

func TestHeuristicUsesDemoLexicon(t *testing.T) {
	got := Heuristic([]string{"cat"})
	want := []string{"K", "AE", "T"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHeuristicFallsBackLetterByLetter(t *testing.T) {
	got := Heuristic([]string{"zap"})
	want := []string{"Z", "AH", "P"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPersianMapsKnownCharacters(t *testing.T) {
	got := Persian([]string{"باد"})
	want := []string{"B", "AA", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGermanExpandsUmlauts(t *testing.T) {
	got := German([]string{"über"})
	want := []string{"UH", "EH", "B", "EH", "R"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

type fakeCache struct {
	data map[string][]string
}

func (f *fakeCache) key(childID, word string) string { return childID + "/" + word }

func (f *fakeCache) CacheLookup(_ context.Context, childID, word string) ([]string, bool, error) {
	ph, ok := f.data[f.key(childID, word)]
	return ph, ok, nil
}

func (f *fakeCache) CacheStore(_ context.Context, childID, word string, phonemes []string) error {
	if f.data == nil {
		f.data = map[string][]string{}
	}
	f.data[f.key(childID, word)] = phonemes
	return nil
}

func TestResolverUsesLanguageOverrideBeforeCache(t *testing.T) {
	r := &Resolver{Backend: HeuristicBackend{}, Language: "fa", Cache: &fakeCache{}}
	got, err := r.Resolve(context.Background(), []string{"باد"}, "child-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"B", "AA", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolverForChildCachesMisses(t *testing.T) {
	cache := &fakeCache{}
	r := &Resolver{Backend: HeuristicBackend{}, Cache: cache}

	got, err := r.Resolve(context.Background(), []string{"cat"}, "child-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"K", "AE", "T"}) {
		t.Fatalf("got %v", got)
	}

	cached, ok, err := cache.CacheLookup(context.Background(), "child-1", "cat")
	if err != nil || !ok {
		t.Fatalf("expected cache entry for 'cat', ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(cached, []string{"K", "AE", "T"}) {
		t.Fatalf("unexpected cached entry: %v", cached)
	}

	// second resolve for the same child+word must hit the cache, not the backend.
	cache.data["child-1/cat"] = []string{"OVERRIDDEN"}
	got, err = r.Resolve(context.Background(), []string{"cat"}, "child-1")
	if err != nil {
		t.Fatalf("Resolve (cached): %v", err)
	}
	if !reflect.DeepEqual(got, []string{"OVERRIDDEN"}) {
		t.Fatalf("expected cache hit to short-circuit backend, got %v", got)
	}
}

type fixedBackend struct {
	phonemes []string
}

func (f fixedBackend) Phonemes(_ context.Context, words []string) ([]string, error) {
	return f.phonemes, nil
}

func TestResolverForChildDistributesUnevenSplitWithRemainderOnLastWord(t *testing.T) {
	cache := &fakeCache{}
	r := &Resolver{Backend: fixedBackend{phonemes: []string{"A", "B", "C", "D", "E"}}, Cache: cache}

	got, err := r.Resolve(context.Background(), []string{"one", "two"}, "child-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E"}) {
		t.Fatalf("got %v", got)
	}

	first, ok, err := cache.CacheLookup(context.Background(), "child-1", "one")
	if err != nil || !ok {
		t.Fatalf("expected cache entry for 'one', ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(first, []string{"A", "B", "C"}) {
		t.Fatalf("expected first word to take ceil(5/2)=3 phonemes, got %v", first)
	}

	second, ok, err := cache.CacheLookup(context.Background(), "child-1", "two")
	if err != nil || !ok {
		t.Fatalf("expected cache entry for 'two', ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(second, []string{"D", "E"}) {
		t.Fatalf("expected last word to absorb the remainder, got %v", second)
	}
}

func TestResolverNoChildSkipsCache(t *testing.T) {
	r := &Resolver{Backend: HeuristicBackend{}}
	got, err := r.Resolve(context.Background(), []string{"cat"}, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"K", "AE", "T"}) {
		t.Fatalf("got %v", got)
	}
}
