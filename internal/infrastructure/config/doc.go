// Package config loads and validates Smart Farm Core configuration.
//
// Configuration comes from a YAML file with environment variable overrides
// for deployment-specific and secret values:
//
//	server:
//	  host: "0.0.0.0"
//	  port: 3002
//	database:
//	  path: "./data/smartfarm.db"
//	  wal_mode: true
//	  busy_timeout: 5
//	logging:
//	  level: "info"
//	  format: "json"
//
// Environment overrides use the SMARTFARM_ prefix, e.g. SMARTFARM_DATABASE_PATH
// or SMARTFARM_INFLUXDB_TOKEN. Secrets (MQTT password, InfluxDB token) should
// always come from the environment rather than the config file.
package config
