// Package config loads the planner configuration.
//
// Configuration is read from config.yml, validated using struct tags and then
// overridden by VIAPLANNER_* environment variables.
package config
