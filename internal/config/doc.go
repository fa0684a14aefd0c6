// Package config loads the alertscope configuration file (config.yaml).
//
// Top-level types:
//   - Config{Server, Report, Output} — full config tree parsed from YAML
//   - ServerConfig — host, web_scheme, swis_port, username, password_env, tls;
//     Password() resolves the password from an environment variable
//   - ReportConfig — page_size for alert lookups, row_limit for discovery
//     queries, sample mode selection
//   - SampleConfig — sorted (default) or random, with a fixed sample size
//   - OutputConfig — csv or json, to a file or stdout
//
// Load(path) reads the YAML file, applies defaults (http web scheme, SWIS
// port 17778, page size 10, sorted presentation, csv output), then validates
// required fields and enums.
package config
