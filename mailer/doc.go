// Package mailer sends transactional email through Postmark, with a
// logging-only sender for development. The welcome email on first
// activation is its only current use.
package mailer
