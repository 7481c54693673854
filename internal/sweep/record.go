package sweep

import "fmt"

// Record is a combination annotated with its computed result.
type Record struct {
	combo  Combination
	result any
}

// NewRecord pairs a combination with a result. The combination is copied.
func NewRecord(c Combination, result any) Record {
	values := make([]any, len(c.values))
	for i, v := range c.values {
		values[i] = cloneValue(v)
	}
	return Record{combo: Combination{names: c.names, values: values}, result: result}
}

// Combination returns the evaluated combination.
func (r Record) Combination() Combination { return r.combo }

// Result returns the computed result.
func (r Record) Result() any { return r.result }

// Names returns the field names: axis names in order, then ResultField.
func (r Record) Names() []string {
	return append(r.combo.Names(), ResultField)
}

// Values returns the field values in the order of Names.
func (r Record) Values() []any {
	return append(r.combo.Values(), r.result)
}

// Get returns the named field, including ResultField.
func (r Record) Get(name string) (any, bool) {
	if name == ResultField {
		return r.result, true
	}
	return r.combo.Get(name)
}

// Map returns the record as a map with the result under ResultField.
func (r Record) Map() map[string]any {
	m := r.combo.Map()
	m[ResultField] = r.result
	return m
}

func (r Record) String() string {
	return fmt.Sprintf("%s -> %v", r.combo, r.result)
}

// Assemble zips each combination with the result at the same position.
// It panics if the lengths differ, which indicates a bug in the caller.
func Assemble(space []Combination, results []any) []Record {
	if len(space) != len(results) {
		panic(fmt.Sprintf("sweep: assembling %d combinations with %d results", len(space), len(results)))
	}
	records := make([]Record, len(space))
	for i, c := range space {
		records[i] = NewRecord(c, results[i])
	}
	return records
}
