package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Status represents the membership state of a subscriber.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// subscriberNamespace is the fixed UUIDv5 namespace for subscriber ids.
// Changing it would re-key every subscriber, so it must never change.
var subscriberNamespace = uuid.MustParse("9f2c1af4-52b6-4d4b-9c0e-7a86f2e6d1c3")

// SubscriberRecord is the durable membership entity. Exactly one record
// exists per normalized email; ID is a pure function of Email.
type SubscriberRecord struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	Status             Status
	ExternalOrderID    string // most recent order reference seen; empty when none
	ExternalCustomerID string
	MembershipTier     string
	JoinedAt           time.Time
	SavedItemRefs      []string // ordered set, unique by reference id
}

// IsActive reports whether the subscriber currently has access.
func (r *SubscriberRecord) IsActive() bool {
	return r != nil && r.Status == StatusActive
}

// FirstName returns the leading name token for session claims.
func (r *SubscriberRecord) FirstName() string {
	if r == nil {
		return ""
	}
	return firstNameOf(r.Name)
}

func firstNameOf(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

var emailFolder = cases.Fold()

// NormalizeEmail canonicalizes an email address so that every spelling a
// provider may deliver maps to the same subscriber: whitespace trimmed,
// Unicode case folded, dots and "+tag" suffixes stripped from the local
// part. Domains keep their dots.
func NormalizeEmail(email string) string {
	email = emailFolder.String(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[:plus]
	}
	local = strings.ReplaceAll(local, ".", "")

	return local + "@" + domain
}

// SubscriberID derives the deterministic record id from an email address.
// Repeat ingestion of the same subscriber always targets the same record,
// which is what makes the upsert path naturally idempotent.
func SubscriberID(email string) uuid.UUID {
	return uuid.NewSHA1(subscriberNamespace, []byte(NormalizeEmail(email)))
}
