package dal

import (
	"context"
	"fmt"
	"time"

	"orders-hertz/biz/dal/db"
	"orders-hertz/conf"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Init opens the datastore, creates the orders table if missing and
// checks the connection once.
func Init(cfg conf.Database) (*db.Store, error) {
	store, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	hlog.Infof("[dal] %s datastore ready", cfg.Driver)
	return store, nil
}
