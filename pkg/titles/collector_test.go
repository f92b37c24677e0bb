package titles

import (
	"errors"
	"iter"
	"sort"
	"testing"

	"github.com/pyhub-apps/cookbook-pdf/pkg/layout"
)

func seq(spans []layout.Span, err error) iter.Seq2[layout.Span, error] {
	return func(yield func(layout.Span, error) bool) {
		for _, s := range spans {
			if !yield(s, nil) {
				return
			}
		}
		if err != nil {
			yield(layout.Span{}, err)
		}
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[string]int)
	for _, s := range a {
		count[s]++
	}
	for _, s := range b {
		count[s]--
	}
	for _, n := range count {
		if n != 0 {
			return false
		}
	}
	return true
}

func TestCollectorDeduplicates(t *testing.T) {
	c := NewCollector(SizeBased)
	for _, text := range []string{"Tourtière", "Cretons", "Tourtière", "tourtière", "Tourtière "} {
		c.Add(text)
	}

	want := []string{"Tourtière", "Cretons", "tourtière", "Tourtière "}
	got := c.Result()
	if len(got) != len(want) {
		t.Fatalf("Result() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Result()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}

func TestCollectorAddReportsFirstSighting(t *testing.T) {
	c := NewCollector(StyleBased)
	if !c.Add("Cretons") {
		t.Error("first Add should report true")
	}
	if c.Add("Cretons") {
		t.Error("second Add should report false")
	}
}

func TestCollectorSortedForStyleBased(t *testing.T) {
	c := NewCollector(StyleBased)
	for _, text := range []string{"Tourtière", "Cretons", "Pouding Chômeur", "Beignes", "Cipaille"} {
		c.Add(text)
	}

	got := c.Result()
	if !sort.StringsAreSorted(got) {
		t.Errorf("Result() not sorted: %q", got)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 titles, got %d", len(got))
	}
}

func TestCollectorEmptyResultIsNotNil(t *testing.T) {
	for _, p := range Policies() {
		if got := NewCollector(p).Result(); got == nil || len(got) != 0 {
			t.Errorf("%s: Result() = %#v, want empty non-nil slice", p, got)
		}
	}
}

func TestCollectorResultIsACopy(t *testing.T) {
	c := NewCollector(SizeBased)
	c.Add("Cretons")
	c.Result()[0] = "changed"
	if c.Result()[0] != "Cretons" {
		t.Error("Result() exposed internal state")
	}
}

func TestCollectSyntheticDocument(t *testing.T) {
	spans := []layout.Span{
		bold("Tourtière", 14),
		bold("Chapter 3", 14),
		plain("ingredients", 9),
		plain("Poutine Royale", 12),
	}

	tests := []struct {
		policy Policy
		want   []string
	}{
		{SizeBased, []string{"Tourtière", "Poutine Royale"}},
		{StyleBased, []string{"Tourtière"}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.Name, func(t *testing.T) {
			got, err := Collect(seq(spans, nil), tt.policy)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sameSet(got, tt.want) {
				t.Errorf("Collect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollectRepeatedTitles(t *testing.T) {
	spans := []layout.Span{
		bold("Tourtière", 14),
		bold("Sugar Pie", 14),
		bold("Tourtière", 14),
		bold("Sugar Pie", 14),
		bold("Baked Beans", 14),
	}

	for _, p := range Policies() {
		got, err := Collect(seq(spans, nil), p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if !sameSet(got, []string{"Tourtière", "Sugar Pie", "Baked Beans"}) {
			t.Errorf("%s: Collect() = %q", p, got)
		}
		again, _ := Collect(seq(spans, nil), p)
		if !sameSet(got, again) {
			t.Errorf("%s: second run = %q, first = %q", p, again, got)
		}
	}

	sorted, _ := Collect(seq(spans, nil), StyleBased)
	want := []string{"Baked Beans", "Sugar Pie", "Tourtière"}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("StyleBased result = %q, want %q", sorted, want)
			break
		}
	}
}

func TestCollectStopsOnError(t *testing.T) {
	scanErr := errors.New("page 2: broken")
	got, err := Collect(seq([]layout.Span{bold("Tourtière", 14)}, scanErr), SizeBased)
	if !errors.Is(err, scanErr) {
		t.Fatalf("expected scan error, got %v", err)
	}
	if len(got) != 1 || got[0] != "Tourtière" {
		t.Errorf("expected partial result, got %q", got)
	}
}
