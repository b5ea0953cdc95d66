package models

// Person is a participant or host.
type Person struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
}

// Location is where an event took place.
type Location struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
}

// Dataset holds the three collections of one page view. It is never mutated after loading.
type Dataset struct {
	Events    []Event
	People    []Person
	Locations []Location
}

// PersonName returns the name for id, or ok=false when no such person exists.
func (d *Dataset) PersonName(id int) (string, bool) {
	for _, p := range d.People {
		if p.ID == id {
			return p.Name, true
		}
	}

	return "", false
}

// LocationName returns the name for id, or ok=false when no such location exists.
func (d *Dataset) LocationName(id int) (string, bool) {
	for _, l := range d.Locations {
		if l.ID == id {
			return l.Name, true
		}
	}

	return "", false
}
