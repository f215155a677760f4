// Package dbmodel converts database row structs into flat view-model
// struct types suitable for serialization and validation at API
// boundaries.
//
// A row struct maps columns with sqlx `db` tags; a foreign-key column
// carries the `fk` tag option; a relationship is an untagged field
// whose type is a pointer to another row struct (to-one) or a slice of
// row structs (to-many):
//
//	type PostRow struct {
//		ID       int64          `db:"id"`
//		AuthorID int64          `db:"author_id,fk"`
//		Title    sql.NullString `db:"title"`
//		Tags     pq.StringArray `db:"tags"`
//	}
//
//	type UserRow struct {
//		ID    int64       `db:"id"`
//		Name  string      `db:"name"`
//		Email pgtype.Text `db:"email"`
//		Posts []PostRow
//	}
//
// The converter builds the model type with reflect.StructOf, flattening
// nullable wrapper columns (sql.Null*, pgtype.*) to pointers and
// Postgres array columns (pq.*Array) to plain slices, and tagging every
// model field with the column name for JSON:
//
//	conv, err := dbmodel.NewConverter(UserRow{},
//		dbmodel.WithExclude(dbmodel.Regex(regexp.MustCompile(`^internal_`))),
//		dbmodel.WithJoins("posts"),
//	)
//	modelType, err := conv.Build()
//
// The converter also derives column lists and goqu select datasets from
// the same include/exclude selection:
//
//	ds := conv.Select("users")
//	sql, _, err := ds.ToSQL() // SELECT "id", "name", "email" FROM "users"
//
// No database connection is involved anywhere: the package only
// reflects over types and builds query descriptions.
package dbmodel
