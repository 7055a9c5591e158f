package domain

import "fmt"

// RouteMetrics is the raw distance and duration read from a directions
// response, in the routing service's units.
type RouteMetrics struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// ExtractRouteMetrics reads distance and duration out of a directions
// payload. Two shapes are accepted:
//
//   - GeoJSON: features[0].properties.summary
//   - JSON:    routes[0].summary
//
// The routes shape is only consulted when features is absent or empty; a
// non-empty features list that does not lead to a summary is rejected.
// A missing distance or duration key inside the summary counts as 0, but a
// present non-numeric value is rejected. An empty payload, or one matching
// neither shape, returns an *ExternalServiceError carrying the payload.
func ExtractRouteMetrics(payload map[string]any) (RouteMetrics, error) {
	if len(payload) == 0 {
		return RouteMetrics{}, &ExternalServiceError{Message: "no response from the routing API"}
	}

	for _, shape := range []struct {
		list string
		path []string
	}{
		{list: "features", path: []string{"properties"}},
		{list: "routes"},
	} {
		items, ok := payload[shape.list].([]any)
		if !ok || len(items) == 0 {
			continue
		}
		summary, ok := summaryAt(items[0], shape.path...)
		if !ok {
			break
		}
		return metricsFrom(summary, payload)
	}

	return RouteMetrics{}, &ExternalServiceError{
		Message: "no valid route found from the routing API",
		Payload: payload,
	}
}

// summaryAt walks item[path...]["summary"] and returns the summary object
// if every step is present and of the right type.
func summaryAt(item any, path ...string) (map[string]any, bool) {
	node, ok := item.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range append(path, "summary") {
		node, ok = node[key].(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func metricsFrom(summary, payload map[string]any) (RouteMetrics, error) {
	var m RouteMetrics
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"distance", &m.DistanceMeters},
		{"duration", &m.DurationSeconds},
	} {
		raw, present := summary[f.key]
		if !present {
			continue
		}
		v, ok := raw.(float64)
		if !ok {
			return RouteMetrics{}, &ExternalServiceError{
				Message: fmt.Sprintf("routing API returned a non-numeric %s", f.key),
				Payload: payload,
			}
		}
		*f.dst = v
	}
	return m, nil
}
