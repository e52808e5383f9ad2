package bff

import "errors"

// InvertMap swaps the keys and values of m. When several keys share a
// value only one of them survives, and which one is unspecified, so the
// result can be smaller than the input.
func InvertMap[K, V comparable](m map[K]V) map[V]K {
	inverted := make(map[V]K, len(m))
	for key, value := range m {
		inverted[value] = key
	}
	return inverted
}

// AverageMaps builds the key-wise mean of the given maps. A key missing
// from some of the maps still divides by the total number of maps, so
// sparse keys are averaged against zero rather than over the maps that
// carry them.
func AverageMaps[K comparable](maps ...map[K]float64) (map[K]float64, error) {
	if len(maps) == 0 {
		return nil, errors.New("at least one map is required")
	}

	averaged := make(map[K]float64)
	for _, m := range maps {
		for key, value := range m {
			averaged[key] += value
		}
	}
	for key := range averaged {
		averaged[key] /= float64(len(maps))
	}
	return averaged, nil
}
