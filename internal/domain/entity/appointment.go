package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SyncStatus tracks the best-effort external calendar sync of an appointment.
type SyncStatus string

const (
	// SyncStatusNone means the doctor has no calendar linked; nothing to do.
	SyncStatusNone SyncStatus = "none"
	// SyncStatusPending means the sync attempt is still in flight.
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
)

// Appointment is a confirmed booking. From/To keep the display form the
// booking flow validated ("9:00 AM"); they are parsed back into minutes of
// day wherever arithmetic is needed. Time fields are never edited in place;
// a reschedule runs the full validation pass again.
type Appointment struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	DoctorID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	AppointmentTypeID int            `gorm:"index" json:"appointment_type_id"`
	Timezone          string         `gorm:"type:varchar(64);not null" json:"timezone"`
	MeetingDate       datatypes.Date `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"meeting_date"`
	From              string         `gorm:"column:from_time;type:varchar(10);not null" json:"from"`
	To                string         `gorm:"column:to_time;type:varchar(10);not null" json:"to"`
	PatientDetails    JSON           `gorm:"type:jsonb" json:"patient_details"`
	Notes             string         `gorm:"type:text" json:"notes,omitempty"`
	SyncStatus        SyncStatus     `gorm:"type:varchar(10);not null;default:'none'" json:"sync_status"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor          Doctor           `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	AppointmentType *AppointmentType `gorm:"foreignKey:AppointmentTypeID" json:"appointment_type,omitempty"`
}

func (Appointment) TableName() string {
	return "doctors_appointments"
}

// MeetingDateString renders the meeting date as YYYY-MM-DD.
func (a *Appointment) MeetingDateString() string {
	return time.Time(a.MeetingDate).Format("2006-01-02")
}

// PatientName pulls the display name out of the patient_details payload.
func (a *Appointment) PatientName() string {
	if a.PatientDetails == nil {
		return ""
	}
	if name, ok := a.PatientDetails["name"].(string); ok {
		return name
	}
	return ""
}
