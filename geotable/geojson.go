package geotable

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

type geoJSONFeature struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// ReadGeoJSON loads the attribute table of a GeoJSON FeatureCollection.
// Geometry is ignored; only feature properties become columns. Column
// order is the sorted union of all property names. Object IDs come
// from the oidField property when present (DefaultOIDField if empty),
// then from the feature id, and fall back to sequential assignment.
func ReadGeoJSON(path, oidField string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewTableError("ReadGeoJSON", path, err)
	}

	var collection geoJSONCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, errors.NewTableError("ReadGeoJSON", path, err)
	}
	if collection.Type != "FeatureCollection" {
		return nil, errors.NewTableError("ReadGeoJSON", path,
			errors.Newf("geolearn: expected a FeatureCollection, got %q", collection.Type))
	}
	if len(collection.Features) == 0 {
		return nil, errors.NewTableError("ReadGeoJSON", path, errors.ErrEmptyData)
	}

	t := NewTable(oidField)

	fieldSet := make(map[string]struct{})
	for _, feature := range collection.Features {
		for name := range feature.Properties {
			if name != t.oidField {
				fieldSet[name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(fieldSet))
	for name := range fieldSet {
		names = append(names, name)
	}
	sort.Strings(names)

	t.oids = make([]int64, len(collection.Features))
	for i, feature := range collection.Features {
		t.oids[i] = featureOID(feature, t.oidField, int64(i+1))
	}

	for _, name := range names {
		column := make([]string, len(collection.Features))
		for i, feature := range collection.Features {
			column[i] = propertyCell(feature.Properties[name])
		}
		if err := t.addColumn(name, column); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// featureOID resolves the object ID of one feature.
func featureOID(feature geoJSONFeature, oidField string, fallback int64) int64 {
	if raw, ok := feature.Properties[oidField]; ok {
		switch v := raw.(type) {
		case float64:
			return int64(v)
		case string:
			if oid, err := strconv.ParseInt(v, 10, 64); err == nil {
				return oid
			}
		}
	}
	switch id := feature.ID.(type) {
	case float64:
		return int64(id)
	case string:
		if oid, err := strconv.ParseInt(id, 10, 64); err == nil {
			return oid
		}
	}
	return fallback
}

// propertyCell renders a GeoJSON property value as a raw table cell.
// JSON null becomes the empty cell, which Column later coerces to 0.
func propertyCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
