package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sujalbistaa/minigramm/internal/models"
)

// GormStore persists the feed in a SQL database through GORM. Ids are UUIDs
// assigned at creation time. Reaction counters are incremented with a single
// atomic UPDATE so concurrent reacts to the same post never lose increments.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the posts table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Post{})
}

func (s *GormStore) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	// Explicit order: creation time descending, id as a tiebreaker. We never
	// rely on the database's natural row order.
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *GormStore) Create(ctx context.Context, imageURL, caption string) (models.Post, error) {
	if imageURL == "" || caption == "" {
		return models.Post{}, ErrInvalidInput
	}

	post := models.Post{
		ID:       uuid.NewString(),
		ImageURL: imageURL,
		Caption:  caption,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *GormStore) React(ctx context.Context, id string, kind models.ReactionKind) (models.Post, error) {
	if _, ok := models.ParseReactionKind(string(kind)); !ok {
		return models.Post{}, ErrInvalidInput
	}

	var post models.Post
	column := kind.Column()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Single UPDATE against the counter column. The database serializes
		// concurrent increments; no read-modify-write on our side.
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn(column, gorm.Expr(column+" + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&post, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func (s *GormStore) Seed(ctx context.Context, posts []models.Post) error {
	for i := range posts {
		if posts[i].ImageURL == "" || posts[i].Caption == "" {
			return ErrInvalidInput
		}
		if posts[i].ID == "" {
			posts[i].ID = uuid.NewString()
		}
	}
	if len(posts) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&posts).Error
}
