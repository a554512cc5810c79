package config

// deepMerge merges overlay into base, right-biased: when both sides hold a
// map at the same key the merge recurses, otherwise the overlay value
// replaces the base value. Neither input map is mutated.
//
// This applies uniformly at every depth, so an overlay can add one framework
// under an existing language without restating the language's other fields.
func deepMerge(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, ov := range overlay {
		bm, baseIsMap := merged[k].(map[string]any)
		om, overlayIsMap := ov.(map[string]any)
		if baseIsMap && overlayIsMap {
			merged[k] = deepMerge(bm, om)
			continue
		}
		merged[k] = ov
	}
	return merged
}
