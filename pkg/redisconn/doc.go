// Package redisconn connects to Redis with startup retries and exposes a
// health probe. The editorial content cache is its only consumer here.
package redisconn
