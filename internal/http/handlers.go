package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/minigramm/internal/models"
	"github.com/sujalbistaa/minigramm/internal/store"
	"github.com/sujalbistaa/minigramm/internal/ws"
)

// --- Configuration Constants ---
const (
	rateLimitRPS   = 1.0 / 3.0 // 1 post every 3 seconds per IP
	rateLimitBurst = 1
)

// --- Structs for request binding ---
type CreatePostInput struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	Caption  string `json:"caption" binding:"required"`
}
type ReactInput struct {
	Reaction string `json:"reaction" binding:"required"`
}
type SeedPostInput struct {
	ImageURL  string           `json:"imageUrl" binding:"required"`
	Caption   string           `json:"caption" binding:"required"`
	Reactions models.Reactions `json:"reactions"`
}

// WsMessage defines the JSON structure pushed to connected frontends.
type WsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// --- Rate Limiter ---
type IPRateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.RWMutex
	rps      rate.Limit
	burst    int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		mu:       sync.RWMutex{},
		rps:      r,
		burst:    b,
	}
}

func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[ip] = limiter
	}
	return limiter
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many posts. Please wait."})
			return
		}
		c.Next()
	}
}

// --- Handlers ---

// Env holds the handlers' dependencies. The store is the single source of
// truth; handlers never keep post state between requests.
type Env struct {
	Store store.FeedStore
	Hub   *ws.Hub
}

func (e *Env) GetPosts(c *gin.Context) {
	posts, err := e.Store.List(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, models.DTOs(posts))
}

func (e *Env) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageUrl and caption are required"})
		return
	}

	post, err := e.Store.Create(c.Request.Context(), input.ImageURL, input.Caption)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "imageUrl and caption are required"})
			return
		}
		log.Printf("Error creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	dto := post.DTO()
	e.broadcastMessage(WsMessage{Type: "new_post", Data: dto})

	c.JSON(http.StatusCreated, dto)
}

func (e *Env) ReactToPost(c *gin.Context) {
	var input ReactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "reaction is required"})
		return
	}

	// Validate the free-form payload against the closed set before it gets
	// anywhere near the store.
	kind, ok := models.ParseReactionKind(input.Reaction)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "reaction must be one of: like, wow, laugh"})
		return
	}

	post, err := e.Store.React(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		case errors.Is(err, store.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": "reaction must be one of: like, wow, laugh"})
		default:
			log.Printf("Error reacting to post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to react to post"})
		}
		return
	}

	dto := post.DTO()
	e.broadcastMessage(WsMessage{Type: "reaction", Data: dto})

	c.JSON(http.StatusOK, dto)
}

// SeedPosts bulk-loads demo posts, the only path allowed to set counters
// explicitly. Gated behind the admin token middleware.
func (e *Env) SeedPosts(c *gin.Context) {
	var inputs []SeedPostInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "expected an array of {imageUrl, caption, reactions}"})
		return
	}

	posts := make([]models.Post, 0, len(inputs))
	for _, in := range inputs {
		posts = append(posts, models.Post{
			ImageURL:   in.ImageURL,
			Caption:    in.Caption,
			LikeCount:  in.Reactions.Like,
			WowCount:   in.Reactions.Wow,
			LaughCount: in.Reactions.Laugh,
		})
	}

	if err := e.Store.Seed(c.Request.Context(), posts); err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "imageUrl and caption are required for every seed post"})
			return
		}
		log.Printf("Error seeding posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to seed posts"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Seeded", "count": len(posts)})
}

func (e *Env) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (e *Env) broadcastMessage(msg WsMessage) {
	if e.Hub == nil {
		return
	}
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshalling WS message: %v", err)
		return
	}
	e.Hub.Broadcast <- jsonMsg
}
