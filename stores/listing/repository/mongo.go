package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/listing"
	"github.com/vibemarket/goapi/service/query"
)

// mongoRepo is the production backend. Documents are stored with lower-cased
// field names (the bson tags on listing.Listing); the tag layer is the only
// place that mapping lives.
type mongoRepo struct {
	q query.Mongo
}

func NewMongoRepo(q query.Mongo) listing.Repo {
	return &mongoRepo{q: q}
}

// Load returns the whole collection keyed by listing key. A failed query
// yields an empty map so read paths stay up while the database is down.
func (r *mongoRepo) Load(ctx bCtx.Ctx) (map[string]listing.Listing, error) {
	rows := []listing.Listing{}
	if err := r.q.Search(ctx, domain.TableListings, 0, 0, "", bson.M{}, &rows); err != nil {
		ctx.WithField("err", err).Error("q.Search failed, serving empty store")
		return map[string]listing.Listing{}, nil
	}
	res := make(map[string]listing.Listing, len(rows))
	for _, row := range rows {
		res[row.Key] = row
	}
	return res, nil
}

// SaveAll replaces the whole collection with delete-all plus reinsert. The
// two steps are not wrapped in a transaction, so a crash between them can
// lose the snapshot until the next reconcile rewrites it.
func (r *mongoRepo) SaveAll(ctx bCtx.Ctx, listings map[string]listing.Listing) error {
	if _, err := r.q.RemoveAll(ctx, domain.TableListings, bson.M{}); err != nil && err != query.ErrNotFound {
		ctx.WithField("err", err).Error("q.RemoveAll failed")
		return err
	}
	for _, l := range listings {
		if err := r.q.Insert(ctx, domain.TableListings, l); err != nil {
			ctx.WithFields(log.Fields{
				"key": l.Key,
				"err": err,
			}).Error("q.Insert failed")
			return err
		}
	}
	return nil
}

func (r *mongoRepo) Upsert(ctx bCtx.Ctx, l listing.Listing) error {
	if err := r.q.Upsert(ctx, domain.TableListings, bson.M{"key": l.Key}, l); err != nil {
		ctx.WithFields(log.Fields{
			"key": l.Key,
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *mongoRepo) Remove(ctx bCtx.Ctx, key string) error {
	if err := r.q.Remove(ctx, domain.TableListings, bson.M{"key": key}); err != nil {
		if err == query.ErrNotFound {
			return nil
		}
		ctx.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
