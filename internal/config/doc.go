// Package config provides the configuration of rivalscan: the analysis
// server to talk to, polling and redirect timing, and report output
// preferences, loaded from a .rivalscan YAML file and CLI flags.
package config
