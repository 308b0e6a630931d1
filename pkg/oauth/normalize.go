package oauth

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Normalizer maps a raw user payload to a canonical User.
// Implementations must be pure: no I/O, no shared mutable state.
type Normalizer interface {
	Normalize(payload []byte) (User, error)
}

// NormalizerFunc adapts a function to Normalizer.
type NormalizerFunc func(payload []byte) (User, error)

// Normalize calls f.
func (f NormalizerFunc) Normalize(payload []byte) (User, error) {
	return f(payload)
}

// FieldMap is a Normalizer mapping canonical keys to gjson paths in the
// payload, e.g. {"uid": "id", "email": "emails.0.value"}.
// Missing or non-scalar fields are omitted; the "uid" path must resolve.
type FieldMap map[string]string

// Normalize implements Normalizer.
func (m FieldMap) Normalize(payload []byte) (User, error) {
	doc, err := parseObject(payload)
	if err != nil {
		return nil, err
	}

	user := make(User, len(m))
	for key, path := range m {
		if v, ok := scalar(doc.Get(path)); ok {
			user[key] = v
		}
	}
	return requireUID(user, payload)
}

// passThrough copies every top-level scalar field and derives "uid" from
// the first of uidFields present.
func passThrough(payload []byte, uidFields ...string) (User, error) {
	doc, err := parseObject(payload)
	if err != nil {
		return nil, err
	}

	user := make(User)
	doc.ForEach(func(key, value gjson.Result) bool {
		if v, ok := scalar(value); ok {
			user[key.String()] = v
		}
		return true
	})

	for _, field := range uidFields {
		if v, ok := scalar(doc.Get(gjson.Escape(field))); ok && v != "" {
			user[UIDKey] = v
			break
		}
	}
	return requireUID(user, payload)
}

func parseObject(payload []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, errUnexpectedResponse(payload, errors.New("user payload is not valid JSON"))
	}
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return gjson.Result{}, errUnexpectedResponse(payload, errors.New("user payload is not a JSON object"))
	}
	return doc, nil
}

func requireUID(user User, payload []byte) (User, error) {
	if user.UID() == "" {
		return nil, errUnexpectedResponse(payload, errors.New("user payload has no identifier"))
	}
	return user, nil
}

// scalar stringifies strings, numbers and booleans. Numbers keep their raw
// form so large integer IDs are not rounded.
func scalar(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		return r.Str, true
	case gjson.Number:
		return r.Raw, true
	case gjson.True, gjson.False:
		return r.String(), true
	default:
		return "", false
	}
}
