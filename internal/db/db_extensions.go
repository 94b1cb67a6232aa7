package db

// GetDBTX exposes the underlying connection or transaction, used by callers
// that need to open a transaction around several queries.
func (q *Queries) GetDBTX() DBTX {
	return q.db
}
