// Package content is the read-only editorial content collaborator: keyed
// lookups by slug, optionally fronted by a Redis read-through cache.
package content
