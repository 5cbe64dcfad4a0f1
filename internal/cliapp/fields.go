package cliapp

import (
	"bytes"
	"encoding/json"

	"github.com/technicalpickles/envsense/internal/registry"
	"github.com/technicalpickles/envsense/internal/report"
)

// fieldValue is one entry of a --fields-filtered `info --json` payload.
type fieldValue struct {
	Path  string
	Value any
}

// orderedFields marshals a slice of fieldValue as a JSON object whose
// key order matches the slice order (the requested --fields order),
// not alphabetical — consistent with the Report's own insertion-order
// JSON discipline.
type orderedFields []fieldValue

func (o orderedFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fv.Path)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func fieldJSONValue(rep *report.Report, path string) any {
	f, ok := registry.Lookup(path)
	if !ok {
		return nil
	}
	if f.Type == registry.TypeObject {
		return registry.HasContext(rep, path)
	}
	v, present := f.Read(rep)
	if !present {
		return nil
	}
	return v
}
