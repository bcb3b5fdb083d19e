package store

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sujalbistaa/minigramm/internal/models"
)

// MemoryStore keeps the feed in an ordered in-process slice, newest first.
// It is used by tests and demos; a mutex makes it safe to share between
// handlers. Each instance owns its own id sequence, starting at 1.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int
	posts  []models.Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, imageURL, caption string) (models.Post, error) {
	if imageURL == "" || caption == "" {
		return models.Post{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:        strconv.Itoa(s.nextID),
		ImageURL:  imageURL,
		Caption:   caption,
		CreatedAt: time.Now(),
	}
	s.nextID++
	// Newest first.
	s.posts = append([]models.Post{post}, s.posts...)
	return post, nil
}

func (s *MemoryStore) React(ctx context.Context, id string, kind models.ReactionKind) (models.Post, error) {
	if _, ok := models.ParseReactionKind(string(kind)); !ok {
		return models.Post{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].ApplyReaction(kind)
			return s.posts[i], nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *MemoryStore) Seed(ctx context.Context, posts []models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range posts {
		if post.ImageURL == "" || post.Caption == "" {
			return ErrInvalidInput
		}
		if post.ID == "" {
			post.ID = strconv.Itoa(s.nextID)
			s.nextID++
		}
		if post.CreatedAt.IsZero() {
			post.CreatedAt = time.Now()
		}
		s.posts = append([]models.Post{post}, s.posts...)
	}
	return nil
}
