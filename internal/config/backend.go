package config

import "time"

type Backend struct {
	BaseURL        string        `env:"BACKEND_BASE_URL,required"`
	APIToken       string        `env:"BACKEND_API_TOKEN"`
	RequestTimeout time.Duration `env:"BACKEND_REQUEST_TIMEOUT" envDefault:"15s"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`
	ReferenceTTL   time.Duration `env:"REFERENCE_CACHE_TTL" envDefault:"5m"`
}
