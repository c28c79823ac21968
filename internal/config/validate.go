package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCloudinary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCloudinary() error {
	if c.Cloudinary.CloudName == "" {
		return errors.New("cloudinary.cloud_name is required")
	}
	if strings.ContainsAny(c.Cloudinary.CloudName, "/ ") {
		return fmt.Errorf("cloudinary.cloud_name %q must be a bare account name", c.Cloudinary.CloudName)
	}
	if !strings.HasPrefix(c.Cloudinary.BaseURL, "http://") && !strings.HasPrefix(c.Cloudinary.BaseURL, "https://") {
		return fmt.Errorf("cloudinary.base_url %q must be an absolute http(s) URL", c.Cloudinary.BaseURL)
	}
	if c.Cloudinary.PageSize > 500 {
		return fmt.Errorf("cloudinary.page_size %d exceeds the API maximum of 500", c.Cloudinary.PageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
