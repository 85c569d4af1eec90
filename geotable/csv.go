package geotable

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// ReadCSV loads an attribute table from a CSV file with a header row.
// When the header contains oidField (DefaultOIDField if empty) that
// column supplies the object IDs; otherwise sequential IDs starting at
// 1 are assigned in record order.
func ReadCSV(path, oidField string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTableError("ReadCSV", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewTableError("ReadCSV", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewTableError("ReadCSV", path, errors.ErrEmptyData)
	}

	header := rows[0]
	records := rows[1:]

	t := NewTable(oidField)

	oidIndex := -1
	for i, name := range header {
		if name == t.oidField {
			oidIndex = i
			break
		}
	}

	t.oids = make([]int64, len(records))
	for i, row := range records {
		if oidIndex >= 0 && oidIndex < len(row) {
			oid, err := strconv.ParseInt(row[oidIndex], 10, 64)
			if err != nil {
				return nil, errors.NewTableError("ReadCSV", path,
					errors.Wrapf(err, "geolearn: invalid object ID in record %d", i+1))
			}
			t.oids[i] = oid
		} else {
			t.oids[i] = int64(i + 1)
		}
	}

	for j, name := range header {
		if j == oidIndex {
			continue
		}
		column := make([]string, len(records))
		for i, row := range records {
			if j < len(row) {
				column[i] = row[j]
			}
		}
		if err := t.addColumn(name, column); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// WriteCSV writes the table to path, overwriting any existing file.
// The object ID column comes first, then the attribute columns in
// table order.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewTableError("WriteCSV", path, err)
	}

	writer := csv.NewWriter(f)

	header := append([]string{t.oidField}, t.fields...)
	if err := writer.Write(header); err != nil {
		_ = f.Close()
		return errors.NewTableError("WriteCSV", path, err)
	}

	row := make([]string, len(header))
	for i, oid := range t.oids {
		row[0] = strconv.FormatInt(oid, 10)
		for j, name := range t.fields {
			row[j+1] = t.cells[name][i]
		}
		if err := writer.Write(row); err != nil {
			_ = f.Close()
			return errors.NewTableError("WriteCSV", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return errors.NewTableError("WriteCSV", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewTableError("WriteCSV", path, err)
	}
	return nil
}
