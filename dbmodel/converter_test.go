package dbmodel_test

import (
	"database/sql"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosmorg/gosmorg/dbmodel"
)

type authorRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type postRow struct {
	ID       int64          `db:"id"`
	AuthorID int64          `db:"author_id,fk"`
	Title    sql.NullString `db:"title"`
	Tags     pq.StringArray `db:"tags"`
	Author   *authorRow
}

type userRow struct {
	ID        int64              `db:"id"`
	Name      string             `db:"name"`
	Email     pgtype.Text        `db:"email"`
	Scores    pq.Int64Array      `db:"scores"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	TeamID    sql.NullInt64      `db:"team_id,fk"`
	Secret    string             `db:"internal_secret"`
	Scratch   string             `db:"-"`
	Posts     []postRow
}

func fieldTypes(t *testing.T, model reflect.Type) map[string]reflect.Type {
	t.Helper()

	require.Equal(t, reflect.Struct, model.Kind())

	types := make(map[string]reflect.Type, model.NumField())
	for i := range model.NumField() {
		field := model.Field(i)
		types[field.Name] = field.Type
	}

	return types
}

func Test_Converter_BuildFlattensColumnTypes(t *testing.T) {
	conv, err := dbmodel.NewConverter(userRow{})
	require.NoError(t, err)

	model, err := conv.Build()
	require.NoError(t, err)

	types := fieldTypes(t, model)
	assert.Equal(t, reflect.TypeOf(int64(0)), types["ID"])
	assert.Equal(t, reflect.TypeOf(""), types["Name"])
	assert.Equal(t, reflect.TypeOf((*string)(nil)), types["Email"])
	assert.Equal(t, reflect.TypeOf([]int64(nil)), types["Scores"])
	assert.Equal(t, reflect.TypeOf((*time.Time)(nil)), types["CreatedAt"])
	assert.Equal(t, reflect.TypeOf((*int64)(nil)), types["TeamID"])
	assert.Equal(t, reflect.TypeOf(""), types["Secret"])

	_, hasScratch := types["Scratch"]
	assert.False(t, hasScratch, "db:\"-\" fields are not columns")
	_, hasPosts := types["Posts"]
	assert.False(t, hasPosts, "relationships are only expanded via joins")
}

func Test_Converter_BuildTagsFieldsWithColumnNames(t *testing.T) {
	conv, err := dbmodel.NewConverter(&userRow{})
	require.NoError(t, err)

	model, err := conv.Build()
	require.NoError(t, err)

	byName := make(map[string]string)
	for i := range model.NumField() {
		field := model.Field(i)
		byName[field.Name] = field.Tag.Get("json")
	}

	assert.Equal(t, "id", byName["ID"])
	assert.Equal(t, "created_at", byName["CreatedAt"])
	assert.Equal(t, "internal_secret", byName["Secret"])
}

func Test_Converter_IncludeExcludeAndForeignKeys(t *testing.T) {
	tests := []struct {
		name     string
		opts     []dbmodel.ConverterOption
		expected []string
	}{
		{
			name:     "no_filters_selects_everything_in_field_order",
			expected: []string{"id", "name", "email", "scores", "created_at", "team_id", "internal_secret"},
		},
		{
			name: "include_exact",
			opts: []dbmodel.ConverterOption{
				dbmodel.WithInclude(dbmodel.Exact("id"), dbmodel.Exact("name")),
			},
			expected: []string{"id", "name"},
		},
		{
			name: "exclude_regex",
			opts: []dbmodel.ConverterOption{
				dbmodel.WithExclude(dbmodel.Regex(regexp.MustCompile(`^internal_`))),
			},
			expected: []string{"id", "name", "email", "scores", "created_at", "team_id"},
		},
		{
			name: "exclude_wins_over_include",
			opts: []dbmodel.ConverterOption{
				dbmodel.WithInclude(dbmodel.Exact("id"), dbmodel.Exact("name")),
				dbmodel.WithExclude(dbmodel.Exact("name")),
			},
			expected: []string{"id"},
		},
		{
			name: "skip_foreign_keys",
			opts: []dbmodel.ConverterOption{
				dbmodel.SkipForeignKeys(),
				dbmodel.WithExclude(dbmodel.Exact("internal_secret")),
			},
			expected: []string{"id", "name", "email", "scores", "created_at"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv, err := dbmodel.NewConverter(userRow{}, tc.opts...)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, conv.Columns())
		})
	}
}

func Test_Converter_JoinsExpandRelationships(t *testing.T) {
	conv, err := dbmodel.NewConverter(userRow{},
		dbmodel.WithJoins("posts", "posts.author"),
	)
	require.NoError(t, err)

	model, err := conv.Build()
	require.NoError(t, err)

	types := fieldTypes(t, model)

	postsType, ok := types["Posts"]
	require.True(t, ok, "joined to-many relationship becomes a slice field")
	require.Equal(t, reflect.Slice, postsType.Kind())

	postModel := postsType.Elem()
	postTypes := fieldTypes(t, postModel)
	assert.Equal(t, reflect.TypeOf((*string)(nil)), postTypes["Title"])
	assert.Equal(t, reflect.TypeOf([]string(nil)), postTypes["Tags"])
	assert.Equal(t, reflect.TypeOf(int64(0)), postTypes["AuthorID"],
		"top-level filters do not apply to nested models")

	authorType, ok := postTypes["Author"]
	require.True(t, ok, "nested join expands the to-one relationship")
	require.Equal(t, reflect.Pointer, authorType.Kind())
	assert.Equal(t, reflect.TypeOf(""), fieldTypes(t, authorType.Elem())["Name"])
}

func Test_Converter_UnjoinedNestedPathIsIgnored(t *testing.T) {
	conv, err := dbmodel.NewConverter(userRow{}, dbmodel.WithJoins("posts.author"))
	require.NoError(t, err)

	model, err := conv.Build()
	require.NoError(t, err)

	_, hasPosts := fieldTypes(t, model)["Posts"]
	assert.False(t, hasPosts, "nested joins without the parent join expand nothing")
}

func Test_Converter_InvalidJoins(t *testing.T) {
	tests := []struct {
		name string
		join string
	}{
		{name: "column_is_not_a_relationship", join: "name"},
		{name: "unknown_field", join: "followers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv, err := dbmodel.NewConverter(userRow{}, dbmodel.WithJoins(tc.join))
			require.NoError(t, err)

			_, err = conv.Build()
			assert.ErrorIs(t, err, dbmodel.ErrInvalidJoin)
			assert.ErrorContains(t, err, tc.join)
		})
	}
}

func Test_Converter_RejectsNonStructPrototypes(t *testing.T) {
	_, err := dbmodel.NewConverter(42)
	assert.ErrorIs(t, err, dbmodel.ErrNotAStruct)

	_, err = dbmodel.NewConverter(nil)
	assert.ErrorIs(t, err, dbmodel.ErrNotAStruct)
}

func Test_Converter_SelectBuildsColumnExactQuery(t *testing.T) {
	conv, err := dbmodel.NewConverter(userRow{},
		dbmodel.WithInclude(dbmodel.Exact("id"), dbmodel.Exact("name")),
	)
	require.NoError(t, err)

	query, args, err := conv.Select("users").ToSQL()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t, `SELECT "id", "name" FROM "users"`, query)
}

func Test_Converter_ModelInstancesMarshalWithColumnNames(t *testing.T) {
	conv, err := dbmodel.NewConverter(userRow{},
		dbmodel.WithInclude(dbmodel.Exact("id"), dbmodel.Exact("name"), dbmodel.Exact("email")),
	)
	require.NoError(t, err)

	model, err := conv.Build()
	require.NoError(t, err)

	instance := reflect.New(model).Elem()
	instance.FieldByName("ID").SetInt(7)
	instance.FieldByName("Name").SetString("ada")

	data, err := jsoniter.ConfigFastest.Marshal(instance.Interface())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"ada","email":null}`, string(data))
}

func Test_ModelTypeMapping_UUIDColumns(t *testing.T) {
	type keyRow struct {
		ID pgtype.UUID `db:"id"`
	}

	conv, err := dbmodel.NewConverter(keyRow{})
	require.NoError(t, err)

	model, err := conv.Build()
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf((*uuid.UUID)(nil)), fieldTypes(t, model)["ID"])
}
