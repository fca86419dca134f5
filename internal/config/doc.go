// Package config manages user-level settings stored at ~/.aio/config.yaml.
// Every key can be overridden with an AIO_-prefixed environment variable.
package config
