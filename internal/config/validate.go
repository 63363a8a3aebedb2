package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Chat.validate(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

func (c ChatConfig) validate() error {
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be >= 1 (got %d)", c.MaxPageSize)
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size must be in [1, %d] (got %d)", c.MaxPageSize, c.DefaultPageSize)
	}
	if c.MaxMessageLength < 1 {
		return fmt.Errorf("max_message_length must be >= 1 (got %d)", c.MaxMessageLength)
	}
	return nil
}

func (n NotifyConfig) validate() error {
	switch n.Driver {
	case NotifyDriverLog:
	case NotifyDriverAlimtalk:
		if n.Alimtalk.APIKey == "" {
			return fmt.Errorf("alimtalk.api_key is required for driver %q", n.Driver)
		}
	case NotifyDriverRedis:
		if n.Redis.Addr == "" || n.Redis.Stream == "" {
			return fmt.Errorf("redis.addr and redis.stream are required for driver %q", n.Driver)
		}
	default:
		return fmt.Errorf("unknown driver %q", n.Driver)
	}

	if n.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", n.Workers)
	}
	if n.QueueSize < 1 {
		return fmt.Errorf("queue_size must be >= 1 (got %d)", n.QueueSize)
	}
	return nil
}
