package memory

import (
	"strconv"
	"time"

	"stylista-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ShopperCache keeps catalog shopper rows between turns of the same user so
// every chat message does not hit the users table.
type ShopperCache struct {
	cache *cache.Cache
}

func NewShopperCache(ttl time.Duration) *ShopperCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ShopperCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *ShopperCache) Save(shopper *entity.Shopper) {
	if shopper == nil {
		return
	}
	r.cache.Set(key(shopper.Id), shopper, cache.DefaultExpiration)
}

func (r *ShopperCache) Get(id int64) (*entity.Shopper, bool) {
	if x, found := r.cache.Get(key(id)); found {
		return x.(*entity.Shopper), true
	}
	return nil, false
}

func (r *ShopperCache) Delete(id int64) {
	r.cache.Delete(key(id))
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
