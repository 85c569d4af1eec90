package geotable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSVWithOIDColumn(t *testing.T) {
	path := writeTempFile(t, "parcels.csv",
		"OID,POP,AREA\n10,100,1.5\n20,200,2.5\n30,,3.5\n")

	tbl, err := ReadCSV(path, "")
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []int64{10, 20, 30}, tbl.OIDs())
	assert.Equal(t, []string{"POP", "AREA"}, tbl.Fields())
}

func TestReadCSVWithoutOIDColumn(t *testing.T) {
	path := writeTempFile(t, "parcels.csv",
		"POP,AREA\n100,1.5\n200,2.5\n")

	tbl, err := ReadCSV(path, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, tbl.OIDs(), "sequential OIDs are assigned")
}

func TestReadCSVErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), "")
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, "empty.csv", "")
		_, err := ReadCSV(path, "")
		assert.Error(t, err)
	})

	t.Run("bad object ID", func(t *testing.T) {
		path := writeTempFile(t, "bad.csv", "OID,POP\nabc,100\n")
		_, err := ReadCSV(path, "")
		assert.Error(t, err)
	})
}

func TestWriteCSVRoundTrip(t *testing.T) {
	src := writeTempFile(t, "in.csv",
		"OID,POP,AREA\n1,100,1.5\n2,200,2.5\n")

	tbl, err := ReadCSV(src, "")
	require.NoError(t, err)
	require.NoError(t, tbl.ExtendTable("NPIndexJoin", "PredictedValues",
		[]int64{1, 2}, []float64{110, 190}))

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, tbl.WriteCSV(out))

	reread, err := ReadCSV(out, "")
	require.NoError(t, err)
	assert.Equal(t, tbl.OIDs(), reread.OIDs())
	assert.Equal(t, []string{"POP", "AREA", "NPIndexJoin", "PredictedValues"}, reread.Fields())

	pred, err := reread.Column("PredictedValues")
	require.NoError(t, err)
	assert.Equal(t, []float64{110, 190}, pred.RawVector().Data)
}

func TestReadGeoJSON(t *testing.T) {
	path := writeTempFile(t, "parcels.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "id": 1, "geometry": null,
			 "properties": {"POP": 100, "AREA": 1.5, "NAME": "a"}},
			{"type": "Feature", "id": 2, "geometry": null,
			 "properties": {"POP": null, "AREA": 2.5, "NAME": "b"}}
		]
	}`)

	tbl, err := ReadGeoJSON(path, "")
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []int64{1, 2}, tbl.OIDs())
	assert.Equal(t, []string{"AREA", "NAME", "POP"}, tbl.Fields(), "sorted union of property names")

	pop, err := tbl.Column("POP")
	require.NoError(t, err)
	assert.Equal(t, 100.0, pop.AtVec(0))
	assert.Equal(t, 0.0, pop.AtVec(1), "JSON null coerces to zero")
}

func TestReadGeoJSONOIDProperty(t *testing.T) {
	path := writeTempFile(t, "parcels.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"OID": 7, "POP": 1}},
			{"type": "Feature", "properties": {"OID": 9, "POP": 2}}
		]
	}`)

	tbl, err := ReadGeoJSON(path, "OID")
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, tbl.OIDs())
	assert.Equal(t, []string{"POP"}, tbl.Fields(), "OID property is not duplicated as a column")
}

func TestReadGeoJSONNotACollection(t *testing.T) {
	path := writeTempFile(t, "point.geojson",
		`{"type": "Point", "coordinates": [0, 0]}`)

	_, err := ReadGeoJSON(path, "")
	assert.Error(t, err)
}
