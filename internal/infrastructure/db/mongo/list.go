package mongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// findOptions translates a list query into mongo find options: skip/limit for
// the page window, a sort document built from "-"-prefixed keys, and a
// projection when specific fields were selected.
func findOptions(q ports.ListQuery) *options.FindOptions {
	q = q.Normalize()
	opts := options.Find().
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))

	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, key := range q.Sort {
			order := 1
			if strings.HasPrefix(key, "-") {
				order = -1
				key = strings.TrimPrefix(key, "-")
			}
			if key == "" {
				continue
			}
			sort = append(sort, bson.E{Key: key, Value: order})
		}
		if len(sort) > 0 {
			opts.SetSort(sort)
		}
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	if len(q.Select) > 0 {
		projection := bson.M{}
		for _, field := range q.Select {
			if field != "" {
				projection[field] = 1
			}
		}
		if len(projection) > 0 {
			opts.SetProjection(projection)
		}
	}
	return opts
}
