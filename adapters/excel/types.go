package excel

// RawRowData represents a row of raw spreadsheet data as header -> cell pairs
type RawRowData map[string]string

// ExcelData represents the complete dataset read from a csv or xlsx file
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Column returns the values of one column in row order
func (d *ExcelData) Column(name string) []string {
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[name]
	}
	return values
}

// HasColumns reports whether every named column is present in the header row
func (d *ExcelData) HasColumns(names ...string) bool {
	present := make(map[string]bool, len(d.Headers))
	for _, h := range d.Headers {
		present[h] = true
	}
	for _, n := range names {
		if !present[n] {
			return false
		}
	}
	return true
}
