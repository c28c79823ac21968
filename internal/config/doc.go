// Package config loads, normalizes, and validates gallerysync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Credentials are deliberately excluded:
// the Cloudinary API key and secret are environment-only values named by the
// Env* constants, so a committed config file can never leak them.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
