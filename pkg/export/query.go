package export

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/itchyny/gojq"

	"vizex/pkg/common"
)

// ParseQuery compiles a jq expression for WithQuery. Callers use it to
// reject a bad expression before sampling anything.
func ParseQuery(expr string) (*gojq.Code, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, &common.ConfigError{Field: "jq", Value: expr, Reason: err.Error()}
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, &common.ConfigError{Field: "jq", Value: expr, Reason: err.Error()}
	}
	return code, nil
}

var errQueryShape = errors.New("jq result must be an array of objects")

// apply runs code over the records as an array of objects and returns the
// resulting records. Known columns keep their position; new keys follow in
// name order.
func apply(code *gojq.Code, t table) (table, error) {
	input := make([]any, len(t.rows))
	for i, row := range t.rows {
		obj := make(map[string]any, len(t.columns))
		for j, col := range t.columns {
			obj[col] = jqValue(row[j])
		}
		input[i] = obj
	}

	var results []any
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return table{}, fmt.Errorf("running jq: %w", err)
		}
		results = append(results, v)
	}
	if len(results) != 1 {
		return table{}, errQueryShape
	}
	arr, ok := results[0].([]any)
	if !ok {
		return table{}, errQueryShape
	}

	objs := make([]map[string]any, len(arr))
	for i, v := range arr {
		obj, ok := v.(map[string]any)
		if !ok {
			return table{}, errQueryShape
		}
		objs[i] = obj
	}

	out := table{columns: columnsOf(objs, t.columns)}
	for _, obj := range objs {
		row := make([]any, len(out.columns))
		for j, col := range out.columns {
			row[j] = obj[col]
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

func columnsOf(objs []map[string]any, known []string) []string {
	if len(objs) == 0 {
		return slices.Clone(known)
	}
	present := make(map[string]bool)
	for _, obj := range objs {
		for k := range obj {
			present[k] = true
		}
	}

	var cols []string
	for _, c := range known {
		if present[c] {
			cols = append(cols, c)
			delete(present, c)
		}
	}
	extra := make([]string, 0, len(present))
	for k := range present {
		extra = append(extra, k)
	}
	slices.Sort(extra)
	return append(cols, extra...)
}

// jqValue converts a field value into one of the types gojq operates on.
func jqValue(v any) any {
	switch n := v.(type) {
	case uint64:
		if n <= math.MaxInt {
			return int(n)
		}
		return float64(n)
	case int64:
		return int(n)
	default:
		return v
	}
}
