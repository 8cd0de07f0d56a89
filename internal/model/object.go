package model

// Record is the generic structured form every stored entity serializes to.
// Records round-trip through JSON, so numbers decode as float64.
type Record map[string]any

// Object is the contract every key-value stored entity implements.
// StorageKey is the entity-type tag used for key namespacing and must be
// callable on a nil receiver; PrimaryKey identifies the entity instance;
// ToRecord is the structured form the store serializes.
type Object interface {
	StorageKey() string
	PrimaryKey() string
	ToRecord() Record
}

func recordString(rec Record, field string) (string, bool) {
	v, ok := rec[field].(string)
	return v, ok
}

func recordInt(rec Record, field string) (int, bool) {
	switch v := rec[field].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func recordBool(rec Record, field string) (bool, bool) {
	v, ok := rec[field].(bool)
	return v, ok
}

func recordStrings(rec Record, field string) ([]string, bool) {
	raw, ok := rec[field].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
