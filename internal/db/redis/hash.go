package redis

import (
	"context"

	"github.com/bizradar/planfinder/internal/db"
)

// HGetAll returns all fields of a hash. A missing key yields an empty map
// (Redis semantics); transport errors come back classified, never silently
// collapsed into "absent".
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: classify(err)}
	}
	return m, nil
}

// Exists checks if a key exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	cmd := s.b().Exists().Key(key).Build()
	count, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: classify(err)}
	}
	return count > 0, nil
}
