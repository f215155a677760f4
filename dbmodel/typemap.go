package dbmodel

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lib/pq"
)

// nullableTypes maps SQL nullable wrapper column types to the plain Go
// value type they carry. Model fields for these columns become pointers
// to the plain type.
var nullableTypes = map[reflect.Type]reflect.Type{
	reflect.TypeOf(sql.NullString{}):     reflect.TypeOf(""),
	reflect.TypeOf(sql.NullInt16{}):      reflect.TypeOf(int16(0)),
	reflect.TypeOf(sql.NullInt32{}):      reflect.TypeOf(int32(0)),
	reflect.TypeOf(sql.NullInt64{}):      reflect.TypeOf(int64(0)),
	reflect.TypeOf(sql.NullByte{}):       reflect.TypeOf(byte(0)),
	reflect.TypeOf(sql.NullFloat64{}):    reflect.TypeOf(float64(0)),
	reflect.TypeOf(sql.NullBool{}):       reflect.TypeOf(false),
	reflect.TypeOf(sql.NullTime{}):       reflect.TypeOf(time.Time{}),
	reflect.TypeOf(pgtype.Text{}):        reflect.TypeOf(""),
	reflect.TypeOf(pgtype.Int2{}):        reflect.TypeOf(int16(0)),
	reflect.TypeOf(pgtype.Int4{}):        reflect.TypeOf(int32(0)),
	reflect.TypeOf(pgtype.Int8{}):        reflect.TypeOf(int64(0)),
	reflect.TypeOf(pgtype.Float4{}):      reflect.TypeOf(float32(0)),
	reflect.TypeOf(pgtype.Float8{}):      reflect.TypeOf(float64(0)),
	reflect.TypeOf(pgtype.Bool{}):        reflect.TypeOf(false),
	reflect.TypeOf(pgtype.Timestamp{}):   reflect.TypeOf(time.Time{}),
	reflect.TypeOf(pgtype.Timestamptz{}): reflect.TypeOf(time.Time{}),
	reflect.TypeOf(pgtype.Date{}):        reflect.TypeOf(time.Time{}),
	reflect.TypeOf(pgtype.UUID{}):        reflect.TypeOf(uuid.UUID{}),
}

// arrayTypes maps Postgres array column types to plain slices. A nil
// slice represents a NULL column, so these stay non-pointer.
var arrayTypes = map[reflect.Type]reflect.Type{
	reflect.TypeOf(pq.StringArray{}):  reflect.TypeOf([]string(nil)),
	reflect.TypeOf(pq.Int32Array{}):   reflect.TypeOf([]int32(nil)),
	reflect.TypeOf(pq.Int64Array{}):   reflect.TypeOf([]int64(nil)),
	reflect.TypeOf(pq.Float64Array{}): reflect.TypeOf([]float64(nil)),
	reflect.TypeOf(pq.BoolArray{}):    reflect.TypeOf([]bool(nil)),
	reflect.TypeOf(pq.ByteaArray{}):   reflect.TypeOf([][]byte(nil)),
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	valuerType  = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
)

// modelType returns the view-model field type for a column field type.
// Nullable wrappers flatten to pointers, arrays to plain slices, and a
// pointer column keeps pointer-ness around the mapped element type.
func modelType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return reflect.PointerTo(modelType(t.Elem()))
	}

	if plain, ok := nullableTypes[t]; ok {
		return reflect.PointerTo(plain)
	}

	if plain, ok := arrayTypes[t]; ok {
		return plain
	}

	return t
}

// isLeafStruct reports whether a struct type is a column value rather
// than a relationship target: time.Time, the known wrapper types, and
// anything implementing sql.Scanner or driver.Valuer.
func isLeafStruct(t reflect.Type) bool {
	if t == timeType {
		return true
	}

	if _, ok := nullableTypes[t]; ok {
		return true
	}

	if t.Implements(valuerType) || reflect.PointerTo(t).Implements(scannerType) {
		return true
	}

	return false
}

// isRelationship reports whether a field type points at another row
// struct: a struct or struct pointer (to-one), or a slice of structs or
// struct pointers (to-many).
func isRelationship(t reflect.Type) bool {
	t = derefType(t)

	if t.Kind() == reflect.Slice {
		elem := derefType(t.Elem())
		return elem.Kind() == reflect.Struct && !isLeafStruct(elem)
	}

	return t.Kind() == reflect.Struct && !isLeafStruct(t)
}

// relationshipElem returns the row struct a relationship field points
// at, and whether the relationship is to-many.
func relationshipElem(t reflect.Type) (reflect.Type, bool) {
	t = derefType(t)

	if t.Kind() == reflect.Slice {
		return derefType(t.Elem()), true
	}

	return t, false
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
