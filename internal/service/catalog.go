package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/model/cache"
)

// catalogTTL bounds how long a catalog edit takes to show up without a purge.
const catalogTTL = time.Hour

type CardSource interface {
	GetCards(ctx context.Context) ([]*model.Card, error)
}

type Catalog struct {
	Cards  CardSource
	Caches *cache.Registry
}

func NewCatalog(cards CardSource, caches *cache.Registry) *Catalog {
	return &Catalog{
		Cards:  cards,
		Caches: caches,
	}
}

// Cache: (singular) catalog, 1 hr
func (s *Catalog) GetCatalog(ctx context.Context) (*model.Catalog, error) {
	return s.Caches.Catalog.MutexGetSet(ctx, func(ctx context.Context) (*model.Catalog, error) {
		cards, err := s.Cards.GetCards(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load card catalog")
		}
		catalog := model.NewCatalog(cards)
		log.Info().
			Str("evt.name", "catalog.loaded").
			Int("cards", catalog.Len()).
			Str("fingerprint", catalog.Fingerprint()).
			Msg("card catalog loaded")
		return catalog, nil
	}, catalogTTL)
}
