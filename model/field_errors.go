package model

// FieldErrors maps a form field to the first problem found with it.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

func (f FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		f.Add(k, v)
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}
