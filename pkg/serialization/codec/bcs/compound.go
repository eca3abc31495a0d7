package bcs

import "fmt"

// EncodeFunc writes one value of type T. Method expressions such as
// (*Encoder).WriteU64 satisfy it directly.
type EncodeFunc[T any] func(e *Encoder, v T) error

// DecodeFunc reads one value of type T, e.g. (*Decoder).ReadU64.
type DecodeFunc[T any] func(d *Decoder) (T, error)

// Marshaler is implemented by types that write their own BCS layout.
type Marshaler interface {
	MarshalBCS(e *Encoder) error
}

// Unmarshaler is implemented by types that read their own BCS layout.
type Unmarshaler interface {
	UnmarshalBCS(d *Decoder) error
}

// WriteVector writes the ULEB128 element count and then every element.
func WriteVector[T any](e *Encoder, elems []T, f EncodeFunc[T]) error {
	return writeSequence(e, elems, f, true)
}

// WriteUnprefixed writes the elements without a count. The reader has to know
// the length, see ReadVectorN.
func WriteUnprefixed[T any](e *Encoder, elems []T, f EncodeFunc[T]) error {
	return writeSequence(e, elems, f, false)
}

func writeSequence[T any](e *Encoder, elems []T, f EncodeFunc[T], prefix bool) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.checkLength(len(elems)); err != nil {
		return err
	}
	if prefix {
		if err := e.WriteULEB128(uint32(len(elems))); err != nil {
			return err
		}
	}
	for i, v := range elems {
		if err := f(e, v); err != nil {
			return fmt.Errorf(errEncodingElement, i, err)
		}
	}
	return nil
}

// ReadVector reads a ULEB128 element count and then that many elements.
func ReadVector[T any](d *Decoder, f DecodeFunc[T]) ([]T, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	n, err := d.ReadLength()
	if err != nil {
		return nil, err
	}
	return readElements(d, n, f)
}

// ReadVectorN reads n elements that were written without a count.
func ReadVectorN[T any](d *Decoder, n int, f DecodeFunc[T]) ([]T, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	if err := d.checkLength(n); err != nil {
		return nil, err
	}
	return readElements(d, n, f)
}

func readElements[T any](d *Decoder, n int, f DecodeFunc[T]) ([]T, error) {
	// Every element takes at least one byte except empty structs, so the
	// remaining input bounds a sane preallocation.
	out := make([]T, 0, min(n, d.Remaining()))
	for i := 0; i < n; i++ {
		v, err := f(d)
		if err != nil {
			return nil, fmt.Errorf(errDecodingElement, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteOption writes tag 0 for a nil v, otherwise tag 1 and the value.
func WriteOption[T any](e *Encoder, v *T, f EncodeFunc[T]) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if v == nil {
		return e.WriteOptionTag(false)
	}
	if err := e.WriteOptionTag(true); err != nil {
		return err
	}
	if err := f(e, *v); err != nil {
		return fmt.Errorf(errEncodingOptionVal, err)
	}
	return nil
}

// ReadOption returns nil for tag 0 and the decoded value for tag 1.
func ReadOption[T any](d *Decoder, f DecodeFunc[T]) (*T, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	present, err := d.ReadOptionTag()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := f(d)
	if err != nil {
		return nil, fmt.Errorf(errDecodingOptionVal, err)
	}
	return &v, nil
}

// FieldEncoder writes one struct field.
type FieldEncoder func(e *Encoder) error

// Field binds a value to the function that encodes it.
func Field[T any](v T, f EncodeFunc[T]) FieldEncoder {
	return func(e *Encoder) error {
		return f(e, v)
	}
}

// FieldDecoder reads one struct field.
type FieldDecoder func(d *Decoder) error

// Into binds a destination to the function that decodes it.
func Into[T any](dst *T, f DecodeFunc[T]) FieldDecoder {
	return func(d *Decoder) error {
		v, err := f(d)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Erase adapts a typed encoder to take an untyped value, for struct fields
// listed as []any. A value of the wrong type fails with ErrInvalidInput.
func Erase[T any](f EncodeFunc[T]) EncodeFunc[any] {
	return func(e *Encoder, v any) error {
		t, ok := v.(T)
		if !ok {
			return fmt.Errorf("%w: expected %T, got %T", ErrInvalidInput, *new(T), v)
		}
		return f(e, t)
	}
}

// WriteValue encodes a Marshaler. It is an EncodeFunc for any Marshaler type.
func WriteValue[T Marshaler](e *Encoder, v T) error {
	return v.MarshalBCS(e)
}

// ReadValue decodes into a fresh T whose pointer implements Unmarshaler.
func ReadValue[T any, PT interface {
	*T
	Unmarshaler
}](d *Decoder) (T, error) {
	var v T
	if err := PT(&v).UnmarshalBCS(d); err != nil {
		return v, err
	}
	return v, nil
}
