package renderer

import (
	"testing"

	"github.com/orbitlab/shipview/internal/engine/segment"
)

func TestGroupByRegionOrdersFaces(t *testing.T) {
	labels := []segment.Region{
		segment.RegionSaucer,
		segment.RegionNacelle,
		segment.RegionSaucer,
		segment.RegionBridge,
		segment.RegionNacelle,
	}

	order, spans := groupByRegion(labels)

	wantOrder := []int{0, 2, 3, 1, 4}
	if len(order) != len(wantOrder) {
		t.Fatalf("order length = %d, want %d", len(order), len(wantOrder))
	}
	for i, fi := range wantOrder {
		if order[i] != fi {
			t.Errorf("order[%d] = %d, want %d", i, order[i], fi)
		}
	}

	wantSpans := []regionSpan{
		{region: segment.RegionSaucer, first: 0, count: 6},
		{region: segment.RegionBridge, first: 6, count: 3},
		{region: segment.RegionNacelle, first: 9, count: 6},
	}
	if len(spans) != len(wantSpans) {
		t.Fatalf("got %d spans, want %d: %+v", len(spans), len(wantSpans), spans)
	}
	for i, w := range wantSpans {
		if spans[i] != w {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], w)
		}
	}
}

func TestGroupByRegionSpansCoverAllVertices(t *testing.T) {
	labels := []segment.Region{
		segment.RegionPylon,
		segment.RegionEngineering,
		segment.RegionPylon,
		segment.RegionSaucer,
	}

	order, spans := groupByRegion(labels)

	seen := make(map[int]bool, len(order))
	for _, fi := range order {
		if seen[fi] {
			t.Fatalf("face %d appears twice in the permutation", fi)
		}
		seen[fi] = true
	}
	if len(seen) != len(labels) {
		t.Errorf("permutation covers %d of %d faces", len(seen), len(labels))
	}

	var next int32
	var total int32
	for _, s := range spans {
		if s.first != next {
			t.Errorf("span for %v starts at %d, want %d", s.region, s.first, next)
		}
		next = s.first + s.count
		total += s.count
	}
	if total != int32(len(labels)*3) {
		t.Errorf("spans cover %d vertices, want %d", total, len(labels)*3)
	}
}

func TestGroupByRegionDropsUnknownLabels(t *testing.T) {
	labels := []segment.Region{segment.RegionSaucer, segment.Region(99)}

	order, spans := groupByRegion(labels)
	if len(order) != 1 {
		t.Errorf("permutation kept %d faces, want 1", len(order))
	}
	if len(spans) != 1 || spans[0].region != segment.RegionSaucer {
		t.Errorf("spans = %+v, want a single saucer span", spans)
	}
}
