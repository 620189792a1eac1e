package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

var _ service.Store = (*Store)(nil)

// Store bundles the Postgres repositories into the full data-access contract.
type Store struct {
	*UserRepo
	*AdRepo
	*BlocklistRepo
	*PreferenceRepo
	*FeedbackRepo
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		UserRepo:       NewUserRepo(pool),
		AdRepo:         NewAdRepo(pool),
		BlocklistRepo:  NewBlocklistRepo(pool),
		PreferenceRepo: NewPreferenceRepo(pool),
		FeedbackRepo:   NewFeedbackRepo(pool),
	}
}
