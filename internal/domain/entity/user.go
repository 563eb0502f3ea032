package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a practice account. Authentication itself lives in an external
// identity service; this table only anchors ownership of doctors, patients
// and appointments, and attribution of audit entries.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Role ID constants carried in JWT claims.
const (
	RoleIDAdmin = 1
	RoleIDStaff = 2
)
