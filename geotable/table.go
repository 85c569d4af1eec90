// Package geotable bridges feature-class attribute tables and the
// numeric types the estimators consume. A Table holds ordered records
// keyed by a sequential object ID, loads from CSV or GeoJSON, and
// extends in place with prediction columns joined back by OID.
package geotable

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
	"github.com/Holisticnature/GeoLearn/pkg/log"
)

// DefaultOIDField is the object ID column name used when the source
// has none of its own.
const DefaultOIDField = "OID"

// Table is an attribute table with an int64 object ID per record and
// named columns of raw cell values. Numeric access goes through Column
// and Columns, which coerce missing or unparsable cells to zero.
type Table struct {
	oidField string
	oids     []int64
	fields   []string
	cells    map[string][]string

	logger log.Logger
}

// NewTable creates an empty table using the given object ID field
// name, or DefaultOIDField when empty.
func NewTable(oidField string) *Table {
	if oidField == "" {
		oidField = DefaultOIDField
	}
	return &Table{
		oidField: oidField,
		cells:    make(map[string][]string),
		logger:   log.GetLogger(),
	}
}

// OIDField returns the object ID column name.
func (t *Table) OIDField() string { return t.oidField }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.oids) }

// Fields returns the attribute column names in order, without the
// object ID column.
func (t *Table) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// OIDs returns a copy of the object IDs in record order.
func (t *Table) OIDs() []int64 {
	out := make([]int64, len(t.oids))
	copy(out, t.oids)
	return out
}

// HasField reports whether name is the object ID column or an
// attribute column.
func (t *Table) HasField(name string) bool {
	if name == t.oidField {
		return true
	}
	_, ok := t.cells[name]
	return ok
}

// addColumn appends an attribute column. The value count must match
// the record count of a non-empty table.
func (t *Table) addColumn(name string, values []string) error {
	if t.HasField(name) {
		return errors.NewTableError("AddColumn", name,
			errors.Newf("geolearn: field %q already exists", name))
	}
	if len(t.oids) > 0 && len(values) != len(t.oids) {
		return errors.NewTableError("AddColumn", name,
			errors.NewDimensionError("geotable.AddColumn", len(t.oids), len(values), 0))
	}
	t.fields = append(t.fields, name)
	t.cells[name] = values
	return nil
}

// isNullCell reports whether a raw cell represents a missing value.
func isNullCell(cell string) bool {
	switch strings.TrimSpace(strings.ToLower(cell)) {
	case "", "null", "<null>", "nan", "none", "na":
		return true
	}
	return false
}

// Column returns the named column as a dense vector. Null or
// unparsable cells coerce to 0; the coercion count is logged once per
// call together with a DataConversionWarning.
func (t *Table) Column(name string) (*mat.VecDense, error) {
	raw, ok := t.cells[name]
	if !ok {
		return nil, errors.NewTableError("Column", name, errors.ErrFieldNotFound)
	}

	values := make([]float64, len(raw))
	coerced := 0
	for i, cell := range raw {
		if isNullCell(cell) {
			coerced++
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			coerced++
			continue
		}
		values[i] = v
	}

	if coerced > 0 {
		errors.Warn(errors.NewDataConversionWarning("null", "float64",
			fmt.Sprintf("field %q: %d cells treated as zero", name, coerced)))
		t.logger.Warn("Null cells coerced to zero",
			log.FieldNameKey, name,
			log.CoercedNullsKey, coerced,
			log.TableRecordsKey, len(raw),
		)
	}

	return mat.NewVecDense(len(values), values), nil
}

// Columns assembles the named columns into an n×len(names) matrix in
// the given order, applying the same null coercion as Column.
func (t *Table) Columns(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewTableError("Columns", "", errors.ErrEmptyData)
	}

	n := t.Len()
	out := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out.Set(i, j, col.AtVec(i))
		}
	}
	return out, nil
}

// ValidateFieldName returns a column name that does not collide with
// any existing field, appending _1, _2, ... to the candidate until it
// is unique.
func (t *Table) ValidateFieldName(candidate string) string {
	if !t.HasField(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s_%d", candidate, i)
		if !t.HasField(name) {
			return name
		}
	}
}

// ExtendTable joins predicted values back onto the table by object ID.
// Two columns are appended: joinField holds the record's own OID and
// predField the prediction for that OID, or 0 when the OID has no
// prediction. Columns are append-only; a failure after extension does
// not roll them back.
func (t *Table) ExtendTable(joinField, predField string, oids []int64, values []float64) error {
	if len(oids) != len(values) {
		return errors.NewTableError("ExtendTable", predField,
			errors.NewDimensionError("geotable.ExtendTable", len(oids), len(values), 0))
	}

	byOID := make(map[int64]float64, len(oids))
	for i, oid := range oids {
		byOID[oid] = values[i]
	}

	joinCells := make([]string, t.Len())
	predCells := make([]string, t.Len())
	matched := 0
	for i, oid := range t.oids {
		joinCells[i] = strconv.FormatInt(oid, 10)
		if v, ok := byOID[oid]; ok {
			predCells[i] = strconv.FormatFloat(v, 'g', -1, 64)
			matched++
		} else {
			predCells[i] = "0"
		}
	}

	if err := t.addColumn(joinField, joinCells); err != nil {
		return err
	}
	if err := t.addColumn(predField, predCells); err != nil {
		return err
	}

	t.logger.Info("Predictions joined onto table",
		log.FieldNameKey, predField,
		log.TableRecordsKey, t.Len(),
		log.SamplesKey, matched,
	)
	return nil
}
