package initializers

import (
	"adl-ops-backend/config"
	"adl-ops-backend/lib/cache"
)

func InitCache() {
	cache.Init(config.Conf.Redis.Addr)
}
