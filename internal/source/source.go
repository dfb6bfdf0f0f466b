// Package source loads card collections from the cards API or from
// snapshot files.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/card"
	"github.com/arcanaland/grimoire/internal/config"
)

// Source supplies one ordered collection of card records per Load
type Source interface {
	Load(ctx context.Context) ([]card.Card, error)
	Name() string
}

// ErrCardNotFound is returned by Find when no record has the requested id
var ErrCardNotFound = errors.New("card not found")

// Finder is implemented by sources that can look up one record by id
// without reading the whole collection
type Finder interface {
	Find(ctx context.Context, id string) (card.Card, error)
}

// Find returns the record with the given id. Sources implementing Finder
// are asked directly; others are read in full and searched.
func Find(ctx context.Context, src Source, id string) (card.Card, error) {
	if f, ok := src.(Finder); ok {
		c, err := f.Find(ctx, id)
		if err != nil && !errors.Is(err, ErrCardNotFound) {
			return card.Card{}, fmt.Errorf("loading card from %s: %w", src.Name(), err)
		}
		return c, err
	}

	res := Fetch(ctx, src)
	if res.Canceled {
		return card.Card{}, ctx.Err()
	}
	if res.Err != nil {
		return card.Card{}, res.Err
	}
	for _, c := range res.Cards {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return card.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// New returns the source selected by cfg
func New(cfg *config.Config, logger *zap.Logger) (Source, error) {
	switch cfg.Source {
	case config.SourceAPI:
		return NewAPI(cfg.APIURL, nil, logger), nil
	case config.SourceSnapshot:
		return NewSnapshot(cfg.SnapshotPath, logger), nil
	}
	return nil, fmt.Errorf("unknown card source: %s", cfg.Source)
}

// Result is the outcome of a Fetch. When Canceled is set the consumer has
// gone away and Cards and Err must be ignored.
type Result struct {
	Cards    []card.Card
	Err      error
	Canceled bool
}

// Fetch performs one read from src. The result is marked canceled when ctx
// is done, whether that happened before the read started or while it ran.
func Fetch(ctx context.Context, src Source) Result {
	if ctx.Err() != nil {
		return Result{Canceled: true}
	}
	cards, err := src.Load(ctx)
	if ctx.Err() != nil {
		return Result{Canceled: true}
	}
	if err != nil {
		return Result{Err: fmt.Errorf("loading cards from %s: %w", src.Name(), err)}
	}
	return Result{Cards: Normalize(cards)}
}

// Normalize gives every record without an identifier a generated one
func Normalize(cards []card.Card) []card.Card {
	for i := range cards {
		if cards[i].ID == "" {
			cards[i].ID = uuid.NewString()
		}
	}
	return cards
}
