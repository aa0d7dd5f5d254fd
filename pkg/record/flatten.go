package record

// Flatten returns the fields of r with every nested record replaced by its own
// flattened fields, inlined at the point of nesting (depth first, left to right).
// A nested record field that is unset stays as a single nil-valued field.
func Flatten(r Record) []Field {
	var out []Field
	for _, f := range r.Fields() {
		if nested, ok := f.Value.(Record); ok {
			out = append(out, Flatten(nested)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// AsTuple returns the field values of r in order. Without flattening, each
// nested record becomes a nested []any.
func AsTuple(r Record, flatten bool) []any {
	if flatten {
		fields := Flatten(r)
		values := make([]any, len(fields))
		for i, f := range fields {
			values[i] = f.Value
		}
		return values
	}

	fields := r.Fields()
	values := make([]any, len(fields))
	for i, f := range fields {
		if nested, ok := f.Value.(Record); ok {
			values[i] = AsTuple(nested, false)
			continue
		}
		values[i] = f.Value
	}
	return values
}

// AsDict returns the fields of r keyed by name. Without flattening, each
// nested record becomes a nested map. When flattening inlines two fields with
// the same name, the later one wins.
func AsDict(r Record, flatten bool) map[string]any {
	if flatten {
		fields := Flatten(r)
		dict := make(map[string]any, len(fields))
		for _, f := range fields {
			dict[f.Name] = f.Value
		}
		return dict
	}

	fields := r.Fields()
	dict := make(map[string]any, len(fields))
	for _, f := range fields {
		if nested, ok := f.Value.(Record); ok {
			dict[f.Name] = AsDict(nested, false)
			continue
		}
		dict[f.Name] = f.Value
	}
	return dict
}
