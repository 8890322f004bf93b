package query

/*
	Description:
		Package `query` provides interface for querying mongo db
		This pachage is basicly nothing but wrap https://github.com/mongodb/mongo-go-driver
		so please read document at following link for any detail
		https://godoc.org/go.mongodb.org/mongo-driver/mongo

	Use Case:
		Please Read the testcases for usage of each method
*/

import (
	"fmt"

	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

//Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne finds the first matched document from the table
	// returns ErrNotFound if no document matched
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count counts matched documents in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert replaces the first matched document or inserts a new one
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search finds matched documents with pagination and sorting
	// `sort` is a field name, prefix with `-` for descending
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes the first matched document from the table
	// returns ErrNotFound if no document matched
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll removes all matched documents from the table
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)
}
