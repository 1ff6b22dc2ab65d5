package main

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RobotsRules represents the robots.txt rules that apply to every user agent
type RobotsRules struct {
	Disallow    []string
	LastChecked time.Time
}

// Allowed reports whether path may be fetched
func (r *RobotsRules) Allowed(path string) bool {
	if path == "" {
		path = "/"
	}
	for _, prefix := range r.Disallow {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// RobotsCache manages robots.txt caching per site root
type RobotsCache struct {
	cache     map[string]*RobotsRules
	ttl       time.Duration
	userAgent string
	mutex     sync.RWMutex
}

// NewRobotsCache creates a new robots cache
func NewRobotsCache(ttl time.Duration, userAgent string) *RobotsCache {
	return &RobotsCache{
		cache:     make(map[string]*RobotsRules),
		ttl:       ttl,
		userAgent: userAgent,
	}
}

// GetRules gets robots.txt rules for a site root. A missing or unreadable
// robots.txt allows everything.
func (rc *RobotsCache) GetRules(ctx context.Context, root string, client *http.Client) *RobotsRules {
	rc.mutex.RLock()
	if rules, exists := rc.cache[root]; exists && time.Since(rules.LastChecked) < rc.ttl {
		rc.mutex.RUnlock()
		return rules
	}
	rc.mutex.RUnlock()

	rules := &RobotsRules{LastChecked: time.Now()}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/robots.txt", nil)
	if err == nil {
		req.Header.Set("User-Agent", rc.userAgent)
		resp, err := client.Do(req)
		if err == nil {
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
				if err == nil {
					rules = parseRobotsTxt(string(body))
				}
			}
		}
	}

	rc.mutex.Lock()
	rc.cache[root] = rules
	rc.mutex.Unlock()

	return rules
}

// parseRobotsTxt parses robots.txt content (simplified: only the "*" group)
func parseRobotsTxt(content string) *RobotsRules {
	rules := &RobotsRules{LastChecked: time.Now()}

	lines := strings.Split(content, "\n")
	var currentUserAgent string

	for _, line := range lines {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		field := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch field {
		case "user-agent":
			currentUserAgent = value
		case "disallow":
			if currentUserAgent == "*" && value != "" {
				rules.Disallow = append(rules.Disallow, value)
			}
		}
	}

	return rules
}

// Size returns the cache size
func (rc *RobotsCache) Size() int {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()
	return len(rc.cache)
}
