// File: autolot/handlers/params.go
package handlers

import (
	"net/url"
	"strconv"
	"strings"

	listingRepo "autolot/database/repository/listing"
	"autolot/models"
)

// categoryFromReferer extracts the storefront category from the Referer
// header. The first path segment names the category; a missing or
// unparseable referer falls back to the whole-inventory category.
func categoryFromReferer(referer string) string {
	u, err := url.Parse(referer)
	if err != nil {
		return models.CategoryAll
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return models.CategoryAll
	}
	return strings.Split(path, "/")[0]
}

// resolveCategory maps a storefront category to its listing domain.
// The whole-inventory category resolves to an empty domain (no filter).
func resolveCategory(category string) (string, bool) {
	if category == models.CategoryAll {
		return "", true
	}
	domain, ok := models.CategoryDomains[category]
	return domain, ok
}

// parseDetailFilters parses "Color:Red,Blue;Transmission:Manual" into
// detail filter groups. Groups without a name or without any value are
// dropped.
func parseDetailFilters(raw string) []listingRepo.DetailFilter {
	var filters []listingRepo.DetailFilter
	for _, group := range strings.Split(raw, ";") {
		name, rest, found := strings.Cut(group, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}
		var values []string
		for _, v := range strings.Split(rest, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		filters = append(filters, listingRepo.DetailFilter{Name: name, Values: values})
	}
	return filters
}

// parseFeatureFilter parses a comma separated feature-name list.
func parseFeatureFilter(raw string) []string {
	var features []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			features = append(features, f)
		}
	}
	return features
}

// parseSortSpec parses "price:asc,date:desc" into sort keys. Direction
// defaults to ascending; unknown fields are left for the repository to
// drop.
func parseSortSpec(raw string) []listingRepo.SortKey {
	var keys []listingRepo.SortKey
	for _, entry := range strings.Split(raw, ",") {
		field, dir, _ := strings.Cut(entry, ":")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		keys = append(keys, listingRepo.SortKey{
			Field: field,
			Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	return keys
}

func parseIntDefault(raw string, def int64) int64 {
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func parseFloatDefault(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}
