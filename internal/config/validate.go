package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535] (got %d)", c.Server.Port)
	}

	if err := c.Forum.validate(); err != nil {
		return fmt.Errorf("forum: %w", err)
	}

	return nil
}

func (f *ForumConfig) validate() error {
	if f.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length must be > 0 (got %d)", f.MaxTitleLength)
	}
	if f.MaxContentLength <= 0 {
		return fmt.Errorf("max_content_length must be > 0 (got %d)", f.MaxContentLength)
	}
	if f.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", f.DefaultPageSize)
	}
	if f.MaxPageSize < f.DefaultPageSize {
		return fmt.Errorf("max_page_size must be >= default_page_size (got %d < %d)", f.MaxPageSize, f.DefaultPageSize)
	}
	return nil
}
