package repository

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	bCtx "github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/domain/listing"
)

// fileRepo persists the listings map as a single JSON object keyed by listing
// key, rewritten wholesale on every save. Development backend.
type fileRepo struct {
	path string
	mu   sync.Mutex
}

func NewFileRepo(path string) listing.Repo {
	return &fileRepo{path: path}
}

func (r *fileRepo) Load(ctx bCtx.Ctx) (map[string]listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx), nil
}

// load never fails: a missing or unreadable file is an empty store.
func (r *fileRepo) load(ctx bCtx.Ctx) map[string]listing.Listing {
	res := map[string]listing.Listing{}
	data, err := ioutil.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			ctx.WithFields(log.Fields{
				"path": r.path,
				"err":  err,
			}).Error("ReadFile failed")
		}
		return res
	}
	if err := json.Unmarshal(data, &res); err != nil {
		ctx.WithFields(log.Fields{
			"path": r.path,
			"err":  err,
		}).Error("json.Unmarshal failed, starting from empty store")
		return map[string]listing.Listing{}
	}
	return res
}

func (r *fileRepo) SaveAll(ctx bCtx.Ctx, listings map[string]listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveAll(ctx, listings)
}

func (r *fileRepo) saveAll(ctx bCtx.Ctx, listings map[string]listing.Listing) error {
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		ctx.WithField("err", err).Error("json.MarshalIndent failed")
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			ctx.WithField("err", err).Error("MkdirAll failed")
			return err
		}
	}
	// write-then-rename so readers never observe a half-written file
	tmp := r.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o644); err != nil {
		ctx.WithFields(log.Fields{
			"path": tmp,
			"err":  err,
		}).Error("WriteFile failed")
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		ctx.WithField("err", err).Error("Rename failed")
		return err
	}
	return nil
}

func (r *fileRepo) Upsert(ctx bCtx.Ctx, l listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listings := r.load(ctx)
	listings[l.Key] = l
	return r.saveAll(ctx, listings)
}

func (r *fileRepo) Remove(ctx bCtx.Ctx, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listings := r.load(ctx)
	if _, ok := listings[key]; !ok {
		return nil
	}
	delete(listings, key)
	return r.saveAll(ctx, listings)
}
