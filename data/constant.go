package data

const (
	DateTimePattern = "2006-01-02 15:04:05"

	RunModeDev     = "dev"
	RunModeTest    = "test"
	RunModeRelease = "release"

	//本地缓存存储方式
	StoreModeMemory   = "memory"
	StoreModeSqlite   = "sqlite"
	StoreModePostgres = "postgres"
	StoreModeRedis    = "redis"

	//binlist要求的协议版本
	HeaderAcceptVersion = "Accept-Version"
	AcceptVersion       = "3"
	HeaderRequestId     = "X-Request-ID"
)
