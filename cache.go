package soundfolio

import (
	"sync"
	"time"
)

// ContentCache is an in-memory TTL cache over the post list and the
// profile. Every successful write invalidates it, so a read issued after a
// save always reflects the new state.
type ContentCache struct {
	mu      sync.RWMutex
	posts   []Post
	profile *Profile
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.posts != nil && c.profile != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.profile = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	profile, err := c.store.GetProfile()
	if err != nil {
		return err
	}
	c.posts = posts
	c.profile = &profile
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and profile after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock if a reload is
// needed.
func (c *ContentCache) ensureLoaded() ([]Post, *Profile, error) {
	c.mu.RLock()
	if c.valid() {
		posts, profile := c.posts, c.profile
		c.mu.RUnlock()
		return posts, profile, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.profile, nil
}

// ListPosts returns the cached post list, newest first.
func (c *ContentCache) ListPosts() ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	return posts, err
}

// GetProfile returns the cached profile.
func (c *ContentCache) GetProfile() (Profile, error) {
	_, profile, err := c.ensureLoaded()
	if err != nil {
		return Profile{}, err
	}
	return *profile, nil
}
