// File: lazyconf/type.go
package lazyconf

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// getTyped fetches key for the typed getters. Unlike GetOr, a missing key or
// a stored nil is an error here: typed access has no meaningful zero-value
// fallback of its own.
func (s *Store) getTyped(key string) (any, error) {
	val, ok := s.Get(key)
	if !ok || val == nil {
		return nil, fmt.Errorf("no value for key %q", key)
	}
	return val, nil
}

// String retrieves the value at key as a string.
// Attempts conversion from common types if the stored value isn't already a string.
func (s *Store) String(key string) (string, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return "", err
	}
	str, err := cast.ToStringE(val)
	if err != nil {
		return "", fmt.Errorf("cannot convert value of type %T to string for key %q", val, key)
	}
	return str, nil
}

// Int retrieves the value at key as an int.
func (s *Store) Int(key string) (int, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return 0, err
	}
	i, err := cast.ToIntE(val)
	if err != nil {
		return 0, fmt.Errorf("cannot convert value of type %T to int for key %q", val, key)
	}
	return i, nil
}

// Int64 retrieves the value at key as an int64.
// Attempts conversion from numeric types, parsable strings, and booleans.
func (s *Store) Int64(key string) (int64, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return 0, err
	}
	i, err := cast.ToInt64E(val)
	if err != nil {
		return 0, fmt.Errorf("cannot convert value of type %T to int64 for key %q", val, key)
	}
	return i, nil
}

// Bool retrieves the value at key as a boolean.
// Attempts conversion from numeric types and parsable strings.
func (s *Store) Bool(key string) (bool, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return false, err
	}
	b, err := cast.ToBoolE(val)
	if err != nil {
		return false, fmt.Errorf("cannot convert value of type %T to bool for key %q", val, key)
	}
	return b, nil
}

// Float64 retrieves the value at key as a float64.
func (s *Store) Float64(key string) (float64, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return 0.0, err
	}
	f, err := cast.ToFloat64E(val)
	if err != nil {
		return 0.0, fmt.Errorf("cannot convert value of type %T to float64 for key %q", val, key)
	}
	return f, nil
}

// Duration retrieves the value at key as a time.Duration. Strings parse in
// time.ParseDuration notation ("1m30s").
func (s *Store) Duration(key string) (time.Duration, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return 0, err
	}
	d, err := cast.ToDurationE(val)
	if err != nil {
		return 0, fmt.Errorf("cannot convert value of type %T to duration for key %q", val, key)
	}
	return d, nil
}

// StringSlice retrieves the value at key as a slice of strings.
func (s *Store) StringSlice(key string) ([]string, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return nil, err
	}
	slice, err := cast.ToStringSliceE(val)
	if err != nil {
		return nil, fmt.Errorf("cannot convert value of type %T to string slice for key %q", val, key)
	}
	return slice, nil
}

// StringMap retrieves the value at key as a map[string]any.
func (s *Store) StringMap(key string) (map[string]any, error) {
	val, err := s.getTyped(key)
	if err != nil {
		return nil, err
	}
	m, err := cast.ToStringMapE(val)
	if err != nil {
		return nil, fmt.Errorf("cannot convert value of type %T to map for key %q", val, key)
	}
	return m, nil
}
