package config

type Cart struct {
	// MinimumValue and BonusRateBps are defaults; a successful settings fetch
	// at startup overrides them.
	MinimumValue int64  `env:"CART_MINIMUM_VALUE" envDefault:"500"`
	BonusRateBps int64  `env:"CART_BONUS_RATE_BPS" envDefault:"1000"`
	KeyPrefix    string `env:"CART_KEY_PREFIX" envDefault:"tradein:cart"`
}
