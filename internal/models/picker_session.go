package models

import "time"

const (
	ModeSingle = "single"
	ModeRange  = "range"

	AdapterTime  = "time"
	AdapterCivil = "civil"
)

// PickerSession is the host-side state of one picker: the props the host
// feeds the controller plus the transient selecting flag.
type PickerSession struct {
	ID            string     `gorm:"primaryKey;type:text"`
	Mode          string     `gorm:"not null;default:single"`
	WeekStart     int        `gorm:"not null;default:0"`
	Timezone      string     `gorm:"not null;default:UTC"`
	Language      string     `gorm:"not null;default:en"`
	DateAdapter   string     `gorm:"not null;default:time"`
	DisplayedDate time.Time  `gorm:"type:date;not null"`
	Date          *time.Time `gorm:"type:date"`
	StartDate     *time.Time `gorm:"type:date"`
	EndDate       *time.Time `gorm:"type:date"`
	MinDate       *time.Time `gorm:"type:date"`
	MaxDate       *time.Time `gorm:"type:date"`
	Controlled    bool       `gorm:"not null;default:false"`
	Open          bool       `gorm:"not null;default:false"`
	Selecting     bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
