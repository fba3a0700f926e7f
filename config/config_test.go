package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomslot/config"
)

func valid() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.App.SlotExpiryScope = "available"
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "unknown env", mutate: func(cfg *config.Config) { cfg.Server.Env = "qa" }, wantErr: true},
		{name: "unknown expiry scope", mutate: func(cfg *config.Config) { cfg.App.SlotExpiryScope = "pending" }, wantErr: true},
		{name: "expire all", mutate: func(cfg *config.Config) { cfg.App.SlotExpiryScope = "all" }},
		{name: "refresh shorter than access", mutate: func(cfg *config.Config) { cfg.JWT.RefreshExpireMin = 10 }, wantErr: true},
		{name: "missing secret in production", mutate: func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" }, wantErr: true},
		{
			name: "missing secret in development",
			mutate: func(cfg *config.Config) {
				cfg.Server.Env = "development"
				cfg.JWT.AccessSecret = ""
			},
		},
		{name: "limiter on without budget", mutate: func(cfg *config.Config) { cfg.App.RateLimiter.Enable = true }, wantErr: true},
		{
			name: "limiter on with budget",
			mutate: func(cfg *config.Config) {
				cfg.App.RateLimiter.Enable = true
				cfg.App.RateLimiter.MaxRequests = 100
				cfg.App.RateLimiter.WindowSeconds = 60
			},
		},
		{name: "kafka on without brokers", mutate: func(cfg *config.Config) { cfg.Kafka.Enable = true }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
