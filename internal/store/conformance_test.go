package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/minigramm/internal/models"
)

// runConformance exercises the FeedStore contract. Both implementations must
// pass it unchanged.
func runConformance(t *testing.T, newStore func(t *testing.T) FeedStore) {
	ctx := context.Background()

	t.Run("list on empty store returns empty slice", func(t *testing.T) {
		s := newStore(t)
		posts, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("create then list includes post with zero counters", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "https://x/a.png", "hello")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, models.Reactions{}, created.Reactions())

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, created.ID, posts[0].ID)
		assert.Equal(t, "https://x/a.png", posts[0].ImageURL)
		assert.Equal(t, "hello", posts[0].Caption)
		assert.Equal(t, models.Reactions{}, posts[0].Reactions())
	})

	t.Run("create with empty field fails and mutates nothing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Create(ctx, "", "caption")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = s.Create(ctx, "https://x/a.png", "")
		assert.ErrorIs(t, err, ErrInvalidInput)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := newStore(t)
		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			post, err := s.Create(ctx, "https://x/a.png", "hello")
			require.NoError(t, err)
			assert.False(t, seen[post.ID], "duplicate id %q", post.ID)
			seen[post.ID] = true
		}
	})

	t.Run("react increments exactly one counter", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "https://x/a.png", "hello")
		require.NoError(t, err)

		post, err := s.React(ctx, created.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, created.ID, post.ID)
		assert.Equal(t, models.Reactions{Like: 1}, post.Reactions())

		post, err = s.React(ctx, created.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, models.Reactions{Like: 2}, post.Reactions())

		post, err = s.React(ctx, created.ID, models.ReactionWow)
		require.NoError(t, err)
		assert.Equal(t, models.Reactions{Like: 2, Wow: 1}, post.Reactions())
	})

	t.Run("react is not idempotent", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "https://x/a.png", "hello")
		require.NoError(t, err)

		const n = 7
		var post models.Post
		for i := 0; i < n; i++ {
			post, err = s.React(ctx, created.ID, models.ReactionLaugh)
			require.NoError(t, err)
		}
		assert.Equal(t, models.Reactions{Laugh: n}, post.Reactions())
	})

	t.Run("react on unknown id fails with not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, "https://x/a.png", "hello")
		require.NoError(t, err)

		_, err = s.React(ctx, "unknown-id", models.ReactionLike)
		assert.ErrorIs(t, err, ErrNotFound)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, models.Reactions{}, posts[0].Reactions())
	})

	t.Run("react with unknown kind fails and mutates nothing", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, "https://x/a.png", "hello")
		require.NoError(t, err)

		_, err = s.React(ctx, created.ID, "love")
		assert.ErrorIs(t, err, ErrInvalidInput)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, models.Reactions{}, posts[0].Reactions())
	})

	t.Run("list orders newest first", func(t *testing.T) {
		s := newStore(t)
		first, err := s.Create(ctx, "https://x/1.png", "first")
		require.NoError(t, err)
		second, err := s.Create(ctx, "https://x/2.png", "second")
		require.NoError(t, err)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, second.ID, posts[0].ID)
		assert.Equal(t, first.ID, posts[1].ID)
	})

	t.Run("seed loads posts with preset counters", func(t *testing.T) {
		s := newStore(t)
		err := s.Seed(ctx, []models.Post{
			{ImageURL: "https://x/seed.png", Caption: "seeded", LikeCount: 4, WowCount: 1},
		})
		require.NoError(t, err)

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.NotEmpty(t, posts[0].ID)
		assert.Equal(t, models.Reactions{Like: 4, Wow: 1}, posts[0].Reactions())
	})

	t.Run("seed rejects posts with empty fields", func(t *testing.T) {
		s := newStore(t)
		err := s.Seed(ctx, []models.Post{{ImageURL: "", Caption: "seeded"}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
