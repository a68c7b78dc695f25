package command

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
)

var ErrEncodeOptions = errors.New("error while encoding options")

// Discord caps component custom IDs at this many characters.
const maxCustomIDLength = 100

type (
	action interface {
		Name() byte
	}

	followUp[T any] struct {
		Options T
	}

	paginator[T any] struct {
		Options T
		Page    Page
	}
)

func (paginator[T]) Name() byte {
	return 'p'
}

func (followUp[T]) Name() byte {
	return 'f'
}

// ButtonPress is a decoded button ID: the command it targets, the action
// and the still encoded action state.
type ButtonPress struct {
	Command string
	action  byte
	state   *bytes.Reader
}

// customID packs the target command, the action and its options into a
// button ID. Layout: command name, action byte, state, 4 byte nonce, all
// base64url encoded. The nonce keeps IDs unique within a message.
func customID(a action, cmdName string) (string, error) {
	b := appendString(nil, cmdName)
	b = append(b, a.Name())

	b, err := appendState(b, reflect.ValueOf(a))
	if err != nil {
		return "", fmt.Errorf("error while encoding button for command %q: %w", cmdName, err)
	}

	var nonce [4]byte
	_, _ = rand.Read(nonce[:])
	b = append(b, nonce[:]...)

	id := base64.RawURLEncoding.EncodeToString(b)
	if len(id) > maxCustomIDLength {
		return "", fmt.Errorf("custom id for command %q is %d characters: %w", cmdName, len(id), ErrEncodeOptions)
	}
	return id, nil
}

// DecodeButton reads the command and action out of a button ID.
func DecodeButton(id string) (ButtonPress, error) {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return ButtonPress{}, fmt.Errorf("malformed custom id: %w", ErrUnrecognizedInteraction)
	}

	r := bytes.NewReader(raw)
	name, err := readString(r)
	if err != nil {
		return ButtonPress{}, fmt.Errorf("custom id has no command: %w", ErrUnrecognizedInteraction)
	}
	act, err := r.ReadByte()
	if err != nil {
		return ButtonPress{}, fmt.Errorf("custom id has no action: %w", ErrUnrecognizedInteraction)
	}

	return ButtonPress{Command: name, action: act, state: r}, nil
}

func pressState[T any](press ButtonPress) (T, error) {
	var state T
	if err := readState(press.state, reflect.ValueOf(&state).Elem()); err != nil {
		return state, fmt.Errorf("error while reading button state: %w", err)
	}
	return state, nil
}

// appendState encodes ints as varints, strings with a length prefix,
// pointers behind a presence byte and structs field by field. Entity
// references keep only their text.
func appendState(b []byte, v reflect.Value) ([]byte, error) {
	if v.Type() == refFieldType {
		return appendString(b, v.FieldByName("Text").String()), nil
	}

	switch v.Kind() {
	case reflect.Int:
		return binary.AppendVarint(b, v.Int()), nil
	case reflect.Bool:
		if v.Bool() {
			return append(b, 1), nil
		}
		return append(b, 0), nil
	case reflect.String:
		return appendString(b, v.String()), nil
	case reflect.Pointer:
		if v.IsNil() {
			return append(b, 0), nil
		}
		return appendState(append(b, 1), v.Elem())
	case reflect.Struct:
		var err error
		for i := range v.NumField() {
			if b, err = appendState(b, v.Field(i)); err != nil {
				return nil, err
			}
		}
		return b, nil
	default:
		return nil, fmt.Errorf("cannot encode %s: %w", v.Type(), ErrEncodeOptions)
	}
}

func readState(r *bytes.Reader, v reflect.Value) error {
	if v.Type() == refFieldType {
		s, err := readString(r)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(refOf(s)))
		return nil
	}

	switch v.Kind() {
	case reflect.Int:
		n, err := binary.ReadVarint(r)
		if err != nil {
			return fmt.Errorf("truncated int: %w", ErrDecodeOption)
		}
		v.SetInt(n)
	case reflect.Bool:
		c, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("truncated bool: %w", ErrDecodeOption)
		}
		v.SetBool(c != 0)
	case reflect.String:
		s, err := readString(r)
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Pointer:
		c, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("truncated pointer: %w", ErrDecodeOption)
		}
		if c == 0 {
			v.SetZero()
			return nil
		}
		ptr := reflect.New(v.Type().Elem())
		if err := readState(r, ptr.Elem()); err != nil {
			return err
		}
		v.Set(ptr)
	case reflect.Struct:
		for i := range v.NumField() {
			if err := readState(r, v.Field(i)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("cannot decode %s: %w", v.Type(), ErrDecodeOption)
	}
	return nil
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil || n > uint64(r.Len()) {
		return "", fmt.Errorf("truncated string: %w", ErrDecodeOption)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("truncated string: %w", ErrDecodeOption)
	}
	return string(buf), nil
}
