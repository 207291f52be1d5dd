package settings

// Merge overlays src onto dst and returns a new document.
// Nested objects merge key by key; any other value in src replaces the one in dst.
// Neither input is modified.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for k, sv := range src {
		srcMap, srcIsMap := sv.(map[string]interface{})
		dstMap, dstIsMap := out[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			out[k] = Merge(dstMap, srcMap)
			continue
		}
		out[k] = sv
	}

	return out
}
