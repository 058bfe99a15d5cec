package tracking

import (
	"time"

	core "github.com/yungbote/dailytrack-backend/internal/tracking"
)

// DailyRecord is one row per civil day. Metric columns are nullable: a day
// only carries the metrics that were reported for it.
type DailyRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Day       time.Time `gorm:"column:day;type:date;not null;uniqueIndex:idx_general_track_day" json:"day"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamp;not null" json:"timestamp"`

	Suenho         *float64 `gorm:"column:suenho" json:"Suenho,omitempty"`
	SuenhoProfundo *float64 `gorm:"column:suenho_profundo" json:"Suenho_profundo,omitempty"`
	Peso           *float64 `gorm:"column:peso" json:"Peso,omitempty"`
	KCal           *float64 `gorm:"column:kcal" json:"KCal,omitempty"`
	KMNad          *float64 `gorm:"column:km_nad" json:"KM_Nad,omitempty"`
	Cerve          *float64 `gorm:"column:cerve" json:"Cerve,omitempty"`
	Copete         *float64 `gorm:"column:copete" json:"Copete,omitempty"`
}

func (DailyRecord) TableName() string { return "general_track" }

func (r *DailyRecord) field(col core.Column) **float64 {
	switch col {
	case core.ColumnSuenho:
		return &r.Suenho
	case core.ColumnSuenhoProfundo:
		return &r.SuenhoProfundo
	case core.ColumnPeso:
		return &r.Peso
	case core.ColumnKCal:
		return &r.KCal
	case core.ColumnKMNad:
		return &r.KMNad
	case core.ColumnCerve:
		return &r.Cerve
	case core.ColumnCopete:
		return &r.Copete
	}
	return nil
}

// Value returns the stored value of col, or nil when unset.
func (r *DailyRecord) Value(col core.Column) *float64 {
	if f := r.field(col); f != nil {
		return *f
	}
	return nil
}

// NewDailyRecord builds a row holding exactly the supplied metrics; every
// other metric stays nil.
func NewDailyRecord(day core.Day, updates *core.Updates) *DailyRecord {
	row := &DailyRecord{Day: day.Date, Timestamp: day.Timestamp}
	updates.Each(func(col core.Column, value float64) {
		if f := row.field(col); f != nil {
			v := value
			*f = &v
		}
	})
	return row
}

// Metrics lists the metric values in schema order, nil for unset columns.
func (r *DailyRecord) Metrics() []*float64 {
	cols := core.Columns()
	out := make([]*float64, 0, len(cols))
	for _, c := range cols {
		out = append(out, r.Value(c))
	}
	return out
}
