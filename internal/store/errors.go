package store

import (
	"errors"
	"fmt"
)

// ErrNoSchema marks operations against a market whose schema has not
// been created yet. Read paths translate this into empty results;
// Stats reports it as a sentinel state instead of failing.
var ErrNoSchema = errors.New("market schema does not exist")

// SchemaError is a structural failure: expected tables or columns are
// missing and migration could not repair them. It is fatal for its
// market only; other markets are unaffected.
type SchemaError struct {
	Market string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema for market %s: %v", e.Market, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IOError is an underlying storage read/write failure. Write paths
// surface it loudly; read paths may degrade to empty results where
// that is semantically safe.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
