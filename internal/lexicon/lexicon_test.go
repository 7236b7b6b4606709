package lexicon

import (
	"context"
	"reflect"
	"testing"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/store"
)

type fakeStore struct {
	rows map[string]*store.ChildLexiconRow
}

func (f *fakeStore) FetchChildLexicon(_ context.Context, childID string) (*store.ChildLexiconRow, error) {
	return f.rows[childID], nil
}

type fakeWords struct {
	out []string
}

func (f *fakeWords) Resolve(_ context.Context, _ []string, _ string) ([]string, error) {
	return f.out, nil
}

func TestResolvePrefersChildPhonemes(t *testing.T) {
	src := &Source{
		Store: &fakeStore{rows: map[string]*store.ChildLexiconRow{
			"child-1": {Phonemes: []string{"K", "AE", "T"}},
		}},
		DefaultLexicon: "R,S",
	}
	got, err := src.Resolve(context.Background(), "child-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"K", "AE", "T"}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveFallsBackToWordsThenG2P(t *testing.T) {
	src := &Source{
		Store: &fakeStore{rows: map[string]*store.ChildLexiconRow{
			"child-1": {Words: []string{"cat"}},
		}},
		Words: &fakeWords{out: []string{"K", "AE", "T"}},
	}
	got, err := src.Resolve(context.Background(), "child-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"K", "AE", "T"}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveFallsBackToDefaultLexicon(t *testing.T) {
	src := &Source{
		Store:          &fakeStore{rows: map[string]*store.ChildLexiconRow{}},
		DefaultLexicon: "R, S, TH",
	}
	got, err := src.Resolve(context.Background(), "child-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"R", "S", "TH"}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveNoLexiconReturnsNil(t *testing.T) {
	src := &Source{}
	got, err := src.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
