package dbmodel

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx/reflectx"
)

// Converter builds flat view-model struct types and column selections
// from a DB row struct. Configure it once with options, then call
// Build, Columns or Select as needed; a Converter is read-only after
// construction and safe for concurrent use.
type Converter struct {
	rowType         reflect.Type
	mapper          *reflectx.Mapper
	include         []Pattern
	exclude         []Pattern
	skipForeignKeys bool
	joins           []string
}

// ConverterOption defines a functional option for configuring a Converter.
type ConverterOption func(*Converter) error

// WithInclude restricts the selection to columns matching at least one
// pattern. Without it every column is selected.
func WithInclude(patterns ...Pattern) ConverterOption {
	return func(c *Converter) error {
		c.include = append(c.include, patterns...)
		return nil
	}
}

// WithExclude drops columns matching any pattern. Exclusion wins over
// inclusion.
func WithExclude(patterns ...Pattern) ConverterOption {
	return func(c *Converter) error {
		c.exclude = append(c.exclude, patterns...)
		return nil
	}
}

// SkipForeignKeys drops columns carrying the `fk` tag option.
func SkipForeignKeys() ConverterOption {
	return func(c *Converter) error {
		c.skipForeignKeys = true
		return nil
	}
}

// WithJoins expands the named relationship fields into nested model
// structs. Nested relationships are addressed with dots: "posts",
// "posts.author". Join selection applies only at the level it names;
// include/exclude and SkipForeignKeys apply to the top-level row only.
func WithJoins(joins ...string) ConverterOption {
	return func(c *Converter) error {
		c.joins = append(c.joins, joins...)
		return nil
	}
}

// NewConverter creates a Converter for the row struct the prototype
// value (or pointer) is an instance of.
func NewConverter(prototype any, opts ...ConverterOption) (*Converter, error) {
	typ := reflect.TypeOf(prototype)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, ErrNotAStruct
	}

	c := &Converter{
		rowType: typ,
		mapper:  reflectx.NewMapperFunc("db", strings.ToLower),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// column is one selected column of a row struct.
type column struct {
	name  string
	field reflect.StructField
}

// columns returns the selected columns of typ in struct field order.
// The filters apply only when filtered is true (the top-level row).
func (c *Converter) columns(typ reflect.Type, filtered bool) []column {
	tm := c.mapper.TypeMap(typ)

	var cols []column
	for _, fi := range tm.Index {
		if strings.Contains(fi.Path, ".") || fi.Embedded {
			continue
		}

		if isRelationship(fi.Field.Type) {
			continue
		}

		if filtered {
			if matchesAny(fi.Name, c.exclude) {
				continue
			}

			if len(c.include) > 0 && !matchesAny(fi.Name, c.include) {
				continue
			}

			if c.skipForeignKeys {
				if _, fk := fi.Options["fk"]; fk {
					continue
				}
			}
		}

		cols = append(cols, column{name: fi.Name, field: fi.Field})
	}

	return cols
}

// Build constructs the view-model struct type: one field per selected
// column with the flattened type and a `json` tag naming the column,
// plus one field per joined relationship holding the nested model
// (pointer for to-one, slice for to-many).
func (c *Converter) Build() (reflect.Type, error) {
	return c.buildModel(c.rowType, c.joins, true)
}

func (c *Converter) buildModel(typ reflect.Type, joins []string, filtered bool) (reflect.Type, error) {
	var fields []reflect.StructField

	for _, col := range c.columns(typ, filtered) {
		fields = append(fields, reflect.StructField{
			Name: col.field.Name,
			Type: modelType(col.field.Type),
			Tag:  reflect.StructTag(fmt.Sprintf("json:%q", col.name)),
		})
	}

	direct, nested := splitJoins(joins)
	for _, join := range direct {
		field, ok := c.relationshipField(typ, join)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrInvalidJoin, join, typ)
		}

		elem, many := relationshipElem(field.Type)

		nestedModel, err := c.buildModel(elem, nested[join], false)
		if err != nil {
			return nil, err
		}

		fieldType := reflect.PointerTo(nestedModel)
		if many {
			fieldType = reflect.SliceOf(nestedModel)
		}

		fields = append(fields, reflect.StructField{
			Name: field.Name,
			Type: fieldType,
			Tag:  reflect.StructTag(fmt.Sprintf("json:%q", join)),
		})
	}

	return reflect.StructOf(fields), nil
}

// splitJoins separates the joins addressing this level from the ones
// addressing a named relationship's nested levels.
func splitJoins(joins []string) ([]string, map[string][]string) {
	var direct []string
	nested := make(map[string][]string)

	for _, join := range joins {
		head, rest, found := strings.Cut(join, ".")
		if found {
			nested[head] = append(nested[head], rest)
			continue
		}

		direct = append(direct, head)
	}

	return direct, nested
}

// relationshipField resolves a join name against the relationship
// fields of typ. Relationship fields answer to their mapped name: the
// `db` tag when present, the lowercased field name otherwise.
func (c *Converter) relationshipField(typ reflect.Type, name string) (reflect.StructField, bool) {
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" || !isRelationship(field.Type) {
			continue
		}

		mapped := strings.ToLower(field.Name)
		if tag, _, _ := strings.Cut(field.Tag.Get("db"), ","); tag != "" && tag != "-" {
			mapped = tag
		}

		if mapped == name {
			return field, true
		}
	}

	return reflect.StructField{}, false
}

// Columns returns the selected top-level column names in struct field
// order.
func (c *Converter) Columns() []string {
	cols := c.columns(c.rowType, true)

	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
	}

	return names
}

// Select builds a goqu dataset selecting exactly the converted columns
// from table. The dataset is a query description only; executing it is
// the caller's business.
func (c *Converter) Select(table string) *goqu.SelectDataset {
	cols := c.Columns()

	selects := make([]any, len(cols))
	for i, col := range cols {
		selects[i] = goqu.C(col)
	}

	return goqu.From(table).Select(selects...)
}
