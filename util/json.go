// util/json.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalJSON unmarshals b into out, reporting the line and character
// of syntax and type errors.
func UnmarshalJSON[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	switch jerr := err.(type) {
	case *json.SyntaxError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("line %d, character %d: %w", line, char, jerr)

	case *json.UnmarshalTypeError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("line %d, character %d: %s value for %s invalid for type %s: %w",
			line, char, jerr.Value, jerr.Field, jerr.Type, jerr)

	default:
		return err
	}
}

// DuplicateJSONKey is a key that appears more than once in the same
// object; Path is the dot-separated path to that object.
type DuplicateJSONKey struct {
	Path string
	Key  string
}

// FindDuplicateJSONKeys returns the duplicated keys in data, in the order
// they appear. Invalid JSON is scanned up to the first error.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))
	var dups []DuplicateJSONKey

	// value consumes one value whose first token is tok.
	var value func(tok json.Token, path []string) bool
	value = func(tok json.Token, path []string) bool {
		delim, ok := tok.(json.Delim)
		if !ok {
			return true
		}

		seen := make(map[string]bool)
		for dec.More() {
			t, err := dec.Token()
			if err != nil {
				return false
			}
			p := path
			if delim == '{' {
				key := t.(string)
				if seen[key] {
					dups = append(dups, DuplicateJSONKey{Path: strings.Join(path, "."), Key: key})
				}
				seen[key] = true
				p = append(path[:len(path):len(path)], key)

				if t, err = dec.Token(); err != nil {
					return false
				}
			}
			if !value(t, p) {
				return false
			}
		}
		_, err := dec.Token() // closing delimiter
		return err == nil
	}

	if tok, err := dec.Token(); err == nil {
		value(tok, nil)
	}
	return dups
}
