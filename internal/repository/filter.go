package repository

import (
	"regexp"
	"time"

	"github.com/anyonghua/onektips-server/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// The date filter covers the calendar day of the deployment timezone
// (UTC+8): a half-open 24h window anchored at parsed date -8h.
const (
	dateWindowBack    = 8 * time.Hour
	dateWindowForward = 16 * time.Hour
)

var filterDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// BuildArticleQuery translates an article filter into a store predicate.
// Unset fields contribute no clause.
func BuildArticleQuery(f domain.ArticleFilter) bson.M {
	query := bson.M{}

	if f.State != nil {
		query["state"] = *f.State
	}
	if f.Pub != nil {
		query["pub"] = *f.Pub
	}

	if f.Keyword != "" {
		re := keywordPattern(f.Keyword)
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
			bson.M{"description": re},
		}
	}

	if f.Tag != "" {
		query["tag"] = referenceID(f.Tag)
	}
	if f.Category != "" {
		query["category"] = referenceID(f.Category)
	}

	if f.Date != "" {
		if d, ok := parseFilterDate(f.Date); ok {
			query["create_at"] = bson.M{
				"$gte": d.Add(-dateWindowBack),
				"$lt":  d.Add(dateWindowForward),
			}
		}
	}

	return query
}

// ArticleSort returns the sort directive for a filter: hot listings
// order by comment count then like count with insertion-order
// tie-break, everything else by newest first.
func ArticleSort(f domain.ArticleFilter) bson.D {
	if f.Hot {
		return bson.D{
			{Key: "meta.comments", Value: -1},
			{Key: "meta.likes", Value: -1},
			{Key: "_id", Value: 1},
		}
	}
	return bson.D{{Key: "create_at", Value: -1}}
}

// BuildTagQuery matches tags whose name or description contains the
// keyword. An empty keyword matches everything.
func BuildTagQuery(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	re := keywordPattern(keyword)
	return bson.M{
		"$or": bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		},
	}
}

// keywordPattern treats the keyword as a regular expression; if it
// does not compile, it degrades to a literal substring match instead
// of failing the request.
func keywordPattern(keyword string) bson.Regex {
	pattern := keyword
	if _, err := regexp.Compile(pattern); err != nil {
		pattern = regexp.QuoteMeta(keyword)
	}
	return bson.Regex{Pattern: pattern}
}

// referenceID resolves a raw id filter value. Values that are not valid
// object ids are kept as-is, which matches no reference field.
func referenceID(raw string) interface{} {
	if oid, err := bson.ObjectIDFromHex(raw); err == nil {
		return oid
	}
	return raw
}

// parseFilterDate tries the supported layouts in order; an unparseable
// date reports ok=false and the caller skips the clause.
func parseFilterDate(raw string) (time.Time, bool) {
	for _, layout := range filterDateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ObjectIDsFromHex converts raw id strings, dropping malformed entries.
// Ids absent from the store simply match nothing, so batch calls stay
// valid even when some entries are garbage.
func ObjectIDsFromHex(raw []string) []bson.ObjectID {
	ids := make([]bson.ObjectID, 0, len(raw))
	for _, s := range raw {
		if oid, err := bson.ObjectIDFromHex(s); err == nil {
			ids = append(ids, oid)
		}
	}
	return ids
}
