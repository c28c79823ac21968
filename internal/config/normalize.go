package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCloudinary()
	c.normalizeSite()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.MappingFile) == "" {
		c.Paths.MappingFile = defaultMappingFile
	}
	if c.Paths.MappingFile, err = expandPath(c.Paths.MappingFile); err != nil {
		return fmt.Errorf("paths.mapping_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.SiteDir) == "" {
		c.Paths.SiteDir = defaultSiteDir
	}
	if c.Paths.SiteDir, err = expandPath(c.Paths.SiteDir); err != nil {
		return fmt.Errorf("paths.site_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCloudinary() {
	c.Cloudinary.CloudName = strings.TrimSpace(c.Cloudinary.CloudName)
	c.Cloudinary.FolderPrefix = strings.Trim(strings.TrimSpace(c.Cloudinary.FolderPrefix), "/")
	c.Cloudinary.BaseURL = strings.TrimRight(strings.TrimSpace(c.Cloudinary.BaseURL), "/")
	if c.Cloudinary.BaseURL == "" {
		c.Cloudinary.BaseURL = defaultAPIBaseURL
	}
	if c.Cloudinary.PageSize <= 0 {
		c.Cloudinary.PageSize = defaultPageSize
	}
	if c.Cloudinary.RequestTimeout <= 0 {
		c.Cloudinary.RequestTimeout = defaultRequestTimeout
	}
	if c.Cloudinary.RetryAttempts <= 0 {
		c.Cloudinary.RetryAttempts = defaultRetryAttempts
	}
}

func (c *Config) normalizeSite() {
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	if c.Site.Title == "" {
		c.Site.Title = defaultSiteTitle
	}
	c.Site.Subtitle = strings.TrimSpace(c.Site.Subtitle)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
