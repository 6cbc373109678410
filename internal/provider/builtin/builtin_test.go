package builtin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry(t *testing.T) {
	r := Registry()

	want := []string{"omdb", "tmdb", "tvdb", "tvmaze"}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if !r.Has(DefaultProvider) {
		t.Errorf("default provider %q not registered", DefaultProvider)
	}
	if r.RequiresKey(DefaultProvider) {
		t.Errorf("default provider %q should work without an api key", DefaultProvider)
	}

	p, err := r.New("tvmaze", map[string]interface{}{})
	if err != nil {
		t.Fatalf("New(tvmaze) error = %v", err)
	}
	if p.Name() != "tvmaze" {
		t.Errorf("New(tvmaze).Name() = %q", p.Name())
	}

	if _, err := r.New("tmdb", map[string]interface{}{}); err == nil {
		t.Error("New(tmdb) without api_key succeeded, want error")
	}
}
