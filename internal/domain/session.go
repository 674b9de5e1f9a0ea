package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SessionTTL = 24 * time.Hour

type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Token     string             `bson:"token" json:"token"`
	StaffID   string             `bson:"staff_id" json:"staff_id"`
	Role      StaffRole          `bson:"role" json:"role"`
	Name      string             `bson:"name" json:"name"`
	IssuedAt  time.Time          `bson:"issued_at" json:"issued_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

func NewSession(profile *StaffProfile, now time.Time, ttl time.Duration) *Session {
	return &Session{
		Token:     uuid.NewString(),
		StaffID:   profile.StaffID,
		Role:      profile.Role,
		Name:      profile.Name,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired is checked lazily on read; there is no active sweep.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
