package extract

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tsawler/trackgeom/records"
)

func stringParam(name, value string) records.AlgorithmParam {
	return records.AlgorithmParam{Kind: records.StringParam, Name: name, Value: value}
}

func numericParam(name, value string) records.AlgorithmParam {
	return records.AlgorithmParam{Kind: records.NumericParam, Name: name, Value: value}
}

func vectorParam(x, y, z float64) records.AlgorithmParam {
	return records.AlgorithmParam{
		Kind:  records.VectorParam,
		Name:  "Center",
		Value: fmt.Sprintf("%g, %g, %g", x, y, z),
	}
}

func degrees(v float64) string {
	return fmt.Sprintf("%g*deg", v)
}

func millimeters(v float64) string {
	return fmt.Sprintf("%g*mm", v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func boolInt(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// sortedRingKeys returns a ring-info map's keys in ascending ring order,
// keeping emission deterministic.
func sortedRingKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
