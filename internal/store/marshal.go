package store

import (
	"database/sql"

	"github.com/roach88/socialgraph/internal/model"
)

// Posts store absent parent/target references as NULL so the foreign keys
// only constrain real references. In memory the zero id means absent.

func nullPostID(id model.PostID) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}

func postIDOf(n sql.NullInt64) model.PostID {
	if !n.Valid {
		return 0
	}
	return model.PostID(n.Int64)
}
