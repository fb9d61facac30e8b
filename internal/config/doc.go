// Package config loads, normalizes, and validates subtransfer configuration.
//
// Defaults come from Default, a TOML file overrides them, and SUBTRANSFER_*
// environment variables override the file. Paths are tilde-expanded and made
// absolute, filter names are lower-cased and de-duplicated, and Validate
// rejects values the alignment engine cannot use.
package config
