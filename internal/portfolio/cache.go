package portfolio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
)

func cacheKey(resource, query string, args ...any) string {
	key := resource + ":" + query
	for _, a := range args {
		key += fmt.Sprintf(":%v", a)
	}
	return key
}

// cachedRead serves key from the cache, calling fetch on a miss. Errors are
// never cached.
//
// Entries hold the encoded value, so every caller gets its own copy. A fetch
// that overlaps a write to the same resource is returned but not stored.
func cachedRead[T any](s *Service, op, key string, fetch func() (T, error)) (T, error) {
	if s.cache == nil {
		v, err := fetch()
		if err != nil {
			return v, s.fail(op, err)
		}
		return v, nil
	}

	if raw, ok := s.cache.Get(key); ok {
		var v T
		if err := json.Unmarshal(raw.([]byte), &v); err == nil {
			return v, nil
		}
		s.cache.Delete(key)
	}

	resource, _, _ := strings.Cut(key, ":")
	gen := s.generation(resource)

	v, err := fetch()
	if err != nil {
		return v, s.fail(op, err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("value not cached", "op", op, "error", err)
		return v, nil
	}

	s.cacheMu.Lock()
	if s.generations[resource] == gen {
		s.cache.Set(key, raw, cache.DefaultExpiration)
	}
	s.cacheMu.Unlock()
	return v, nil
}

func (s *Service) generation(resource string) uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generations[resource]
}

// invalidate drops every entry of resource and fences out reads that started
// before the write.
func (s *Service) invalidate(resource string) {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generations[resource]++
	prefix := resource + ":"
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}
