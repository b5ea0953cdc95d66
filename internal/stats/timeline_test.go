package stats

import (
	"testing"

	"mmpstats/internal/models"
)

func TestTimeline(t *testing.T) {
	ds := testDataset()
	ds.Events = append(ds.Events, models.Event{
		ID: 4, Code: "MMP4", HostID: models.IntPtr(77), LocationID: 99,
		Cast: []models.CastEntry{cast(88, "Stranger")},
	})

	calls := 0
	gallery := func(e models.Event) []models.MediaItem {
		calls++
		if e.ID == 1 {
			return []models.MediaItem{{URL: "img/1/a.jpg", Type: models.MediaImage}}
		}

		return nil
	}

	entries := Timeline(ds, gallery)

	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}

	if calls != 4 {
		t.Errorf("Expected gallery called 4 times, got %d", calls)
	}

	for i, want := range []int{4, 3, 2, 1} {
		if entries[i].ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, entries[i].ID)
		}
	}

	unknown := entries[0]
	if unknown.LocationName != UnknownLocation {
		t.Errorf("Expected unknown location, got %s", unknown.LocationName)
	}

	if len(unknown.HostNames) != 1 || unknown.HostNames[0] != UnknownHost {
		t.Errorf("Expected unknown host, got %v", unknown.HostNames)
	}

	if len(unknown.Cast) != 1 || unknown.Cast[0].Name != "#88" {
		t.Errorf("Expected cast fallback #88, got %+v", unknown.Cast)
	}

	first := entries[3]
	if first.LocationName != "Cellar" || first.HostNames[0] != "Ada" {
		t.Errorf("Unexpected names for first event: %+v", first)
	}

	if len(first.Media) != 1 {
		t.Errorf("Expected 1 media item, got %d", len(first.Media))
	}

	if entries[1].Media == nil {
		t.Error("Expected empty, non-nil media slice")
	}
}

func TestTimeline_NilGallery(t *testing.T) {
	entries := Timeline(testDataset(), nil)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
}
