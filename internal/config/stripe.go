package config

import (
	"os"
	"sync"
)

type StripeConfig struct {
	SecretKey string
}

var (
	stripeConfig *StripeConfig
	stripeOnce   sync.Once
)

func LoadStripeConfig() *StripeConfig {
	stripeOnce.Do(func() {
		stripeConfig = &StripeConfig{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		}
	})
	return stripeConfig
}
