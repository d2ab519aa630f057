// Package filter restricts loaded records to one country's medal entries.
package filter

import "github.com/okian/medalhist/internal/domain/model"

// Records returns the rows whose team equals country and whose medal is
// not medalSentinel, in input order. The input slice is not modified.
func Records(rows []model.Record, country, medalSentinel string) []model.Record {
	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if Match(r, country, medalSentinel) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether a single record passes the filter.
func Match(r model.Record, country, medalSentinel string) bool {
	return r.Team == country && r.Medal != medalSentinel
}
