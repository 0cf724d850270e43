// Package config loads the settings of the library demo from .env files and LIBRARY_* environment
// variables, and builds the slog logger they describe.
package config
