package config

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

const metaExtraPrefix = "meta.extra."

// FromRedis builds a Store from the Redis hash stored at key.
// Hash fields are flat config keys:
//
//	HSET site:config app.env prod theme.name default theme.layoutPath layouts \
//	    meta.title Acme meta.description "Widgets" meta.extra.keywords widgets
//
// meta.* fields are folded into a single Meta value; every other field is
// stored as a string under its own name.
func FromRedis(ctx context.Context, client redis.Cmdable, key string) (*Store, error) {
	if client == nil {
		return nil, ErrSourceUnavailable
	}

	fields, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.Join(ErrSourceUnavailable, err)
	}

	return fromFlat(fields), nil
}

// fromFlat converts flat string fields into a Store.
func fromFlat(fields map[string]string) *Store {
	s := New()

	var (
		meta    Meta
		hasMeta bool
	)
	for k, v := range fields {
		switch {
		case k == "meta.title":
			meta.Title, hasMeta = v, true
		case k == "meta.description":
			meta.Description, hasMeta = v, true
		case strings.HasPrefix(k, metaExtraPrefix):
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[strings.TrimPrefix(k, metaExtraPrefix)] = v
			hasMeta = true
		default:
			s.Add(k, v)
		}
	}
	if hasMeta {
		s.Add(KeyMeta, meta)
	}
	return s
}
