package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// fromRemote fetches and parses the remote catalog document. One
// attempt; any failure falls through to the built-in list.
func (c *Catalog) fromRemote(ctx context.Context) ([]string, error) {
	body, err := c.fetcher.Get(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	zones, err := parseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return dedupe(zones), nil
}

// parseDocument tries each known document shape in order, each decode
// either matching fully or signalling no-match, instead of probing
// fields at runtime.
func parseDocument(body []byte) ([]string, error) {
	parsers := []func([]byte) ([]string, bool){
		parseStringArray,
		parseValueObjects,
		parseTzidObjects,
		parseObjectValues,
	}
	for _, parse := range parsers {
		if zones, ok := parse(body); ok {
			return zones, nil
		}
	}
	return nil, fmt.Errorf("unrecognized catalog document shape")
}

// parseStringArray matches ["America/New_York", ...].
func parseStringArray(body []byte) ([]string, bool) {
	var zones []string
	if err := json.Unmarshal(body, &zones); err != nil || len(zones) == 0 {
		return nil, false
	}
	return zones, true
}

// parseValueObjects matches [{"value": "America/New_York", ...}, ...].
func parseValueObjects(body []byte) ([]string, bool) {
	var items []struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	zones := make([]string, 0, len(items))
	for _, it := range items {
		if it.Value != "" {
			zones = append(zones, it.Value)
		}
	}
	return zones, len(zones) > 0
}

// parseTzidObjects matches [{"tzid": "America/New_York", ...}, ...].
func parseTzidObjects(body []byte) ([]string, bool) {
	var items []struct {
		Tzid string `json:"tzid"`
	}
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	zones := make([]string, 0, len(items))
	for _, it := range items {
		if it.Tzid != "" {
			zones = append(zones, it.Tzid)
		}
	}
	return zones, len(zones) > 0
}

// parseObjectValues flattens a top-level object's string values, e.g.
// {"Eastern": "America/New_York", ...}.
func parseObjectValues(body []byte) ([]string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || len(obj) == 0 {
		return nil, false
	}
	var zones []string
	for _, v := range obj {
		if s, ok := v.(string); ok && s != "" {
			zones = append(zones, s)
		}
	}
	slices.Sort(zones) // map iteration order is random
	return zones, len(zones) > 0
}
