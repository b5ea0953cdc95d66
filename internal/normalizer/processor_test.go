package normalizer

import (
	"errors"
	"testing"

	"mmpstats/internal/models"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor()
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_Events(t *testing.T) {
	p := NewProcessor()

	events, err := p.Events([]models.Event{{ID: 1, HostIDs: []int{2}}})
	if err != nil {
		t.Fatalf("Events returned unexpected error: %v", err)
	}

	if events[0].HostID == nil || *events[0].HostID != 2 {
		t.Errorf("Expected HostID reconciled to 2, got %v", events[0].HostID)
	}
}

func TestProcessor_ValidationError(t *testing.T) {
	p := NewProcessor()

	events, err := p.Events([]models.Event{{ID: 0}})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Expected ErrInvalidRecord, got %v", err)
	}

	if events != nil {
		t.Error("Expected nil result for invalid input")
	}

	if _, err := p.People([]models.Person{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}

	if _, err := p.Locations([]models.Location{{ID: -1, Name: "X"}}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Expected ErrInvalidRecord, got %v", err)
	}
}

func TestProcessor_BlankNameRejected(t *testing.T) {
	p := NewProcessor()

	if _, err := p.People([]models.Person{{ID: 1, Name: "   "}}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Expected ErrInvalidRecord for blank person name, got %v", err)
	}

	if _, err := p.Locations([]models.Location{{ID: 1, Name: "\t\n"}}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("Expected ErrInvalidRecord for blank location name, got %v", err)
	}

	people, err := p.People([]models.Person{{ID: 1, Name: "  Ada   Moretti "}})
	if err != nil {
		t.Fatalf("People returned unexpected error: %v", err)
	}

	if people[0].Name != "Ada Moretti" {
		t.Errorf("Expected normalized name, got %q", people[0].Name)
	}
}
