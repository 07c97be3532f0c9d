// Package appcache holds the per-session mirror of a user's application
// list. Callers of the HTTP API keep one Cache per signed-in session:
// authoritative loads replace the whole list, mutations apply optimistically,
// and search runs locally without touching the store.
package appcache

import (
	"sort"
	"strings"
	"sync"

	"github.com/resumeready/backend/internal/model"
)

type Cache struct {
	mu   sync.RWMutex
	apps []model.Application
}

func New() *Cache {
	return &Cache{}
}

// Load replaces the cached list with the authoritative copy from the store,
// sorted most recent first. Used after sign-in and after an append refetch.
func (c *Cache) Load(apps []model.Application) {
	sorted := make([]model.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateCreated.After(sorted[j].DateCreated)
	})

	c.mu.Lock()
	c.apps = sorted
	c.mu.Unlock()
}

// Append optimistically prepends a freshly created application. The caller
// should follow up with a Load from the user-fetch endpoint to pick up any
// server-side defaulting.
func (c *Cache) Append(app model.Application) {
	c.mu.Lock()
	c.apps = append([]model.Application{app}, c.apps...)
	c.mu.Unlock()
}

// SetStatus updates the status of the cached entry in place. No refetch is
// required for single-field mutations.
func (c *Cache) SetStatus(applicationID, status string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.apps {
		if c.apps[i].ID == applicationID {
			c.apps[i].Status = status
			return true
		}
	}
	return false
}

// AppendQuestions grows the cached entry's question list after a successful
// generate call.
func (c *Cache) AppendQuestions(applicationID string, questions []model.InterviewQuestion) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.apps {
		if c.apps[i].ID == applicationID {
			c.apps[i].InterviewQuestions = append(c.apps[i].InterviewQuestions, questions...)
			return true
		}
	}
	return false
}

// Remove drops the cached entry.
func (c *Cache) Remove(applicationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.apps {
		if c.apps[i].ID == applicationID {
			c.apps = append(c.apps[:i], c.apps[i+1:]...)
			return true
		}
	}
	return false
}

// Search filters by case-insensitive substring match on company, position,
// and location. An empty query returns everything.
func (c *Cache) Search(query string) []model.Application {
	query = strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	if query == "" {
		return c.copyLocked()
	}

	var matched []model.Application
	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.CompanyName), query) ||
			strings.Contains(strings.ToLower(app.Position), query) ||
			strings.Contains(strings.ToLower(app.Location), query) {
			matched = append(matched, app)
		}
	}
	return matched
}

// Snapshot returns a consistent copy of the cached list.
func (c *Cache) Snapshot() []model.Application {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyLocked()
}

// Reset clears everything. Called on sign-out or when no authenticated
// session remains.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.apps = nil
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.apps)
}

func (c *Cache) copyLocked() []model.Application {
	out := make([]model.Application, len(c.apps))
	copy(out, c.apps)
	return out
}
