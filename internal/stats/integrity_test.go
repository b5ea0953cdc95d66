package stats

import (
	"reflect"
	"testing"

	"mmpstats/internal/models"
)

func TestUnresolvedReferences(t *testing.T) {
	ds := testDataset()

	if refs := UnresolvedReferences(ds); len(refs) != 0 {
		t.Errorf("Expected no unresolved references, got %v", refs)
	}

	ds.Events = append(ds.Events,
		models.Event{ID: 4, HostIDs: []int{1, 50}, LocationID: 99, Cast: []models.CastEntry{cast(60, "X"), {Role: "anon"}}},
		models.Event{ID: 5},
	)

	expected := []Reference{
		{Kind: RefHost, EventID: 4, ID: 50},
		{Kind: RefCast, EventID: 4, ID: 60},
		{Kind: RefLocation, EventID: 4, ID: 99},
	}

	if got := UnresolvedReferences(ds); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
