package models

import (
	"time"
)

// ReactionKind is one of the three fixed reactions a post can receive.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionWow   ReactionKind = "wow"
	ReactionLaugh ReactionKind = "laugh"
)

// ReactionKinds lists every valid kind, in display order.
var ReactionKinds = []ReactionKind{ReactionLike, ReactionWow, ReactionLaugh}

// ParseReactionKind validates a free-form string (e.g. from a request body)
// against the closed set of kinds.
func ParseReactionKind(s string) (ReactionKind, bool) {
	switch ReactionKind(s) {
	case ReactionLike, ReactionWow, ReactionLaugh:
		return ReactionKind(s), true
	}
	return "", false
}

// Column returns the database column holding this kind's counter.
func (k ReactionKind) Column() string {
	switch k {
	case ReactionLike:
		return "like_count"
	case ReactionWow:
		return "wow_count"
	case ReactionLaugh:
		return "laugh_count"
	}
	return ""
}

// Reactions is the fixed-shape counter set. Every post carries all three
// keys at all times; counts never decrease.
type Reactions struct {
	Like  int `json:"like"`
	Wow   int `json:"wow"`
	Laugh int `json:"laugh"`
}

// Post represents a single feed entry: an image URL with a caption and
// per-kind reaction counters.
type Post struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	ImageURL   string    `gorm:"not null" json:"imageUrl"`
	Caption    string    `gorm:"not null" json:"caption"`
	LikeCount  int       `gorm:"not null;default:0" json:"-"`
	WowCount   int       `gorm:"not null;default:0" json:"-"`
	LaughCount int       `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time `json:"-"`
}

// Reactions assembles the counter columns into the fixed-shape set.
func (p *Post) Reactions() Reactions {
	return Reactions{Like: p.LikeCount, Wow: p.WowCount, Laugh: p.LaughCount}
}

// ApplyReaction increments exactly one counter by one. Callers must have
// validated kind already; an unknown kind is a no-op and returns false.
func (p *Post) ApplyReaction(kind ReactionKind) bool {
	switch kind {
	case ReactionLike:
		p.LikeCount++
	case ReactionWow:
		p.WowCount++
	case ReactionLaugh:
		p.LaughCount++
	default:
		return false
	}
	return true
}

// PostDTO is the flat shape a post takes when crossing the API boundary.
// Nothing else about a post (timestamps, store bookkeeping) is part of the
// contract.
type PostDTO struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption"`
	Reactions Reactions `json:"reactions"`
}

// DTO converts a post to its boundary representation.
func (p *Post) DTO() PostDTO {
	return PostDTO{
		ID:        p.ID,
		ImageURL:  p.ImageURL,
		Caption:   p.Caption,
		Reactions: p.Reactions(),
	}
}

// DTOs converts a slice of posts, preserving order. It always returns a
// non-nil slice so an empty feed serializes as [] rather than null.
func DTOs(posts []Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].DTO())
	}
	return out
}
