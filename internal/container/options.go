package container

// Options holds the CLI and environment configuration for the service.
type Options struct {
	Port          int      `default:"8888"                 help:"Port to listen on"                                 short:"p"`
	RedisAddr     string   `default:"localhost:6379"       help:"Redis server address"                              short:"r"`
	StoreBackend  string   `default:"redis"                help:"Record store backend: redis, postgres or memory"`
	PostgresDSN   string   `default:""                     help:"PostgreSQL connection string (postgres backend)"`
	Prefix        string   `default:"ratelimit"            help:"Namespace prefix for storage keys"`
	Limits        string   `default:"5/1m,100/24h"         help:"Comma-separated rate limit rules as max/window, e.g. 5/1m,100/24h"`
	Analytics     bool     `help:"Publish deny events to the Redis stream"`
	ConsumerGroup string   `default:"ratewindow-analytics" help:"Consumer group for deny event processing"`
	LogFormat     string   `default:"console"              help:"Log output format: console or json"`
}
