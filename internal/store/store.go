package store

import (
	"context"
	"errors"

	"github.com/sujalbistaa/minigramm/internal/models"
)

// Sentinel errors for client-caused failures. Anything else coming out of a
// FeedStore means the store itself is unavailable and is reported to callers
// as a generic server error.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("post not found")
)

// FeedStore is the owner of all posts and the single source of truth for the
// feed. Both realizations (in-memory and database-backed) satisfy the same
// contract:
//
//   - List returns every post newest-first; an empty feed is an empty slice,
//     never an error.
//   - Create rejects an empty imageURL or caption with ErrInvalidInput,
//     otherwise allocates a fresh unique id and persists the post with all
//     counters at zero.
//   - React rejects an unknown kind with ErrInvalidInput and an unknown id
//     with ErrNotFound, otherwise increments exactly one counter by one and
//     returns the updated post. Concurrent reacts to the same post must not
//     lose increments.
//   - Seed bulk-loads demo posts, the only path that accepts preset counters.
type FeedStore interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, imageURL, caption string) (models.Post, error)
	React(ctx context.Context, id string, kind models.ReactionKind) (models.Post, error)
	Seed(ctx context.Context, posts []models.Post) error
}
