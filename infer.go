package betterwpdb

import "fmt"

// TypeTag classifies a bind value for wire encoding, mirroring the
// one-character codes used by MySQL client bindings.
type TypeTag byte

const (
	TagInteger TypeTag = 'i'
	TagFloat   TypeTag = 'd'
	TagString  TypeTag = 's'
)

// normalizeBindings validates that every binding is a primitive scalar or
// nil and returns the normalized values alongside their inferred tag
// sequence. Booleans become int64 1/0 before inference (there is no
// native boolean bind type) and take the string tag, as does text. nil
// values pass through as SQL NULL and contribute no tag. Tags are
// computed fresh from the runtime values on every call; nothing here
// consults schema information.
func normalizeBindings(bindings []any) (values []any, tags []TypeTag, err error) {
	if len(bindings) == 0 {
		return nil, nil, nil
	}
	values = make([]any, len(bindings))
	tags = make([]TypeTag, 0, len(bindings))
	for i, v := range bindings {
		switch x := v.(type) {
		case nil:
			values[i] = nil
		case bool:
			if x {
				values[i] = int64(1)
			} else {
				values[i] = int64(0)
			}
			tags = append(tags, TagString)
		case float32, float64:
			values[i] = v
			tags = append(tags, TagFloat)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			values[i] = v
			tags = append(tags, TagInteger)
		case string:
			values[i] = v
			tags = append(tags, TagString)
		default:
			return nil, nil, fmt.Errorf("%w: binding %d has unsupported type %T", ErrInvalidBinding, i+1, v)
		}
	}
	return values, tags, nil
}

// tagString renders a tag sequence the way it appears in error messages.
func tagString(tags []TypeTag) string {
	b := make([]byte, len(tags))
	for i, t := range tags {
		b[i] = byte(t)
	}
	return string(b)
}
