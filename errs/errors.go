// Package errs defines the sentinel errors shared by the fame packages.
//
// Stage errors fall into three kinds:
//   - Schema errors: a required column is missing or has an incompatible type.
//     They are reported as *SchemaError carrying the column name.
//   - Data errors: a required per-row value is null. They are reported as
//     *DataError carrying the row index and the field path.
//   - Snapshot errors: malformed or corrupted snapshot payloads.
//
// Domain errors (NaN or infinity where a finite value is required) are never
// reported as errors; stages emit a null cell instead.
package errs

import (
	"errors"
	"fmt"
)

// Schema and data errors.
var (
	ErrMissingColumn    = errors.New("missing required column")
	ErrColumnType       = errors.New("incompatible column type")
	ErrColumnLength     = errors.New("column length mismatch")
	ErrDuplicateColumn  = errors.New("duplicate column")
	ErrNullValue        = errors.New("required value is null")
	ErrInvalidFattyAcid = errors.New("invalid fatty acid")
)

// Settings errors.
var (
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrInvalidDdof        = errors.New("invalid delta degrees of freedom")
	ErrUnimplementedAxes  = errors.New("unimplemented plot axes")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrInvalidCapacity    = errors.New("invalid cache capacity")
)

// Snapshot errors.
var (
	ErrInvalidHeaderSize   = errors.New("invalid snapshot header size")
	ErrInvalidMagicNumber  = errors.New("invalid snapshot magic number")
	ErrUnsupportedVersion  = errors.New("unsupported snapshot version")
	ErrUnexpectedTableKind = errors.New("unexpected snapshot table kind")
	ErrChecksumMismatch    = errors.New("snapshot checksum mismatch")
	ErrCorruptedColumn     = errors.New("corrupted snapshot column")
	ErrInvalidMetadata     = errors.New("invalid snapshot metadata")
)

// SchemaError reports a missing or incompatible column.
type SchemaError struct {
	Column string
	Err    error
}

// NewSchemaError returns a SchemaError for column wrapping err.
func NewSchemaError(column string, err error) *SchemaError {
	return &SchemaError{Column: column, Err: err}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: column %q: %v", e.Column, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// DataError reports a required value that is null or invalid at a given row.
//
// Field is a slash separated path into the nested row shape, for example
// "FattyAcid/From" or "RetentionTime/Absolute/Mean".
type DataError struct {
	Row   int
	Field string
	Err   error
}

// NewDataError returns a DataError for the given row and field path.
func NewDataError(row int, field string, err error) *DataError {
	return &DataError{Row: row, Field: field, Err: err}
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data: row %d: %s: %v", e.Row, e.Field, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
