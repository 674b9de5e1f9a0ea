package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StaffRole string

const (
	RoleWaiter     StaffRole = "WAITER"
	RoleKitchen    StaffRole = "KITCHEN"
	RoleManager    StaffRole = "MANAGER"
	RoleSubManager StaffRole = "SUB_MANAGER"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleWaiter, RoleKitchen, RoleManager, RoleSubManager:
		return true
	}
	return false
}

// CanManageStaff reports whether the role may create or delete staff profiles.
func (r StaffRole) CanManageStaff() bool {
	return r == RoleManager || r == RoleSubManager
}

// SecretOptional reports whether the role may log in with id + display name
// only. Lower-friction roles skip the shared secret.
func (r StaffRole) SecretOptional() bool {
	return r == RoleWaiter || r == RoleKitchen
}

type StaffProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	StaffID      string             `bson:"staff_id" json:"staff_id"`
	Role         StaffRole          `bson:"role" json:"role"`
	Name         string             `bson:"name" json:"name"`
	ProfilePhoto string             `bson:"profile_photo,omitempty" json:"profile_photo,omitempty"`
	SecretID     string             `bson:"secret_id" json:"-"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// NewStaffID builds a role-prefixed identifier, e.g. WAITER-3F2A9C.
func NewStaffID(role StaffRole) string {
	suffix := strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])
	return fmt.Sprintf("%s-%s", role, suffix)
}
