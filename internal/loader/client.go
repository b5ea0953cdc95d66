package loader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mmpstats/internal/config"
	"mmpstats/internal/logger"
	"mmpstats/internal/models"
	"mmpstats/internal/normalizer"
	"mmpstats/pkg/metadata"
)

// Sources locates the three collections.
type Sources struct {
	Events    string
	People    string
	Locations string
}

// Client loads and normalizes the collections.
type Client struct {
	fetcher   *Fetcher
	processor *normalizer.Processor
	logger    *logger.Logger
	sources   Sources
}

// NewClient creates a client for the sources and limits in cfg.
func NewClient(cfg *config.DataConfig, log *logger.Logger) *Client {
	return NewClientWithDeps(
		NewFetcherWithConfig(cfg.Timeout(), cfg.MaxBodyBytes()),
		normalizer.NewProcessor(),
		Sources{Events: cfg.Events, People: cfg.People, Locations: cfg.Locations},
		log,
	)
}

// NewClientWithDeps creates a client with injected dependencies.
func NewClientWithDeps(fetcher *Fetcher, processor *normalizer.Processor, sources Sources, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		fetcher:   fetcher,
		processor: processor,
		logger:    log,
		sources:   sources,
	}
}

// Sources returns the configured sources.
func (c *Client) Sources() Sources {
	return c.sources
}

// Events loads all events.
func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	events, _, err := load(ctx, c, ResourceEvents, c.sources.Events, c.processor.Events)

	return events, err
}

// People loads all people.
func (c *Client) People(ctx context.Context) ([]models.Person, error) {
	people, _, err := load(ctx, c, ResourcePeople, c.sources.People, c.processor.People)

	return people, err
}

// Locations loads all locations.
func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	locations, _, err := load(ctx, c, ResourceLocations, c.sources.Locations, c.processor.Locations)

	return locations, err
}

// LoadAll loads the three collections concurrently. It fails as a whole
// when any one of them fails; there is no partial dataset.
func (c *Client) LoadAll(ctx context.Context) (*models.Dataset, *metadata.Metadata, error) {
	var (
		ds       models.Dataset
		payloads = make([][]byte, 3)
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		ds.Events, payloads[0], err = load(gctx, c, ResourceEvents, c.sources.Events, c.processor.Events)

		return err
	})

	g.Go(func() error {
		var err error
		ds.People, payloads[1], err = load(gctx, c, ResourcePeople, c.sources.People, c.processor.People)

		return err
	})

	g.Go(func() error {
		var err error
		ds.Locations, payloads[2], err = load(gctx, c, ResourceLocations, c.sources.Locations, c.processor.Locations)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	meta := metadata.New([]string{ResourceEvents, ResourcePeople, ResourceLocations}, payloads)

	c.logger.Debug("dataset loaded",
		"events", len(ds.Events),
		"people", len(ds.People),
		"locations", len(ds.Locations),
		"hash", meta.Hash,
	)

	return &ds, meta, nil
}

// load fetches, decodes and normalizes one collection, returning the raw payload alongside.
func load[T any](
	ctx context.Context,
	c *Client,
	resource, source string,
	process func([]T) ([]T, error),
) ([]T, []byte, error) {
	fail := func(err error) ([]T, []byte, error) {
		return nil, nil, &FetchError{Err: err, Resource: resource, Source: source}
	}

	data, info, err := c.fetcher.Fetch(ctx, source)
	if err != nil {
		c.logger.Warn("fetch failed", "resource", resource, "source", source, "status", info.StatusCode, "error", err)

		return fail(err)
	}

	records, err := decodeArray[T](data)
	if err != nil {
		return fail(err)
	}

	records, err = process(records)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrMalformedRecord, err))
	}

	c.logger.Debug("fetched",
		"resource", resource,
		"source", source,
		"bytes", info.Size,
		"records", len(records),
		"duration", info.Duration,
	)

	return records, data, nil
}
