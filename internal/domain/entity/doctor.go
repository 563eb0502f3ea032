package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Doctor represents a practitioner of the practice. The weekly availability
// table and off-day ranges are stored as JSONB and normalized into the
// scheduling model at the converter boundary; historic rows may still carry
// off_days entries as JSON-encoded strings instead of objects.
type Doctor struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name               string         `gorm:"type:varchar(255);not null" json:"name"`
	Email              string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone              string         `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Specialization     string         `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	WeeklyAvailability datatypes.JSON `gorm:"type:jsonb" json:"weekly_availability"`
	OffDays            datatypes.JSON `gorm:"type:jsonb" json:"off_days,omitempty"`
	CalendarConnected  bool           `gorm:"not null;default:false" json:"calendar_connected"`
	GoogleRefreshToken string         `gorm:"type:text" json:"-"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
