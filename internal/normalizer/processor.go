package normalizer

import (
	"fmt"

	"mmpstats/internal/models"
)

// Processor normalizes then validates each collection, so checks see the
// values that will be used.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Events validates and reconciles the events collection.
func (p *Processor) Events(raw []models.Event) ([]models.Event, error) {
	out := p.transformer.TransformEvents(raw)
	if err := p.validator.ValidateEvents(out); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return out, nil
}

// People validates and normalizes the people collection.
func (p *Processor) People(raw []models.Person) ([]models.Person, error) {
	out := p.transformer.TransformPeople(raw)
	if err := p.validator.ValidatePeople(out); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return out, nil
}

// Locations validates and normalizes the locations collection.
func (p *Processor) Locations(raw []models.Location) ([]models.Location, error) {
	out := p.transformer.TransformLocations(raw)
	if err := p.validator.ValidateLocations(out); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return out, nil
}
