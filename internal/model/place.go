package model

import "time"

// Place is a named settlement or point of interest imported from an OSM
// extract, used as the offline fallback for search.
type Place struct {
	ID         int64   `json:"id" gorm:"primaryKey"`
	Name       string  `json:"name" gorm:"size:255;not null;index"`
	Type       string  `json:"type" gorm:"size:50;not null"` // city, town, village, hamlet, suburb
	Lat        float64 `json:"lat" gorm:"not null"`
	Lng        float64 `json:"lng" gorm:"not null"`
	Population int     `json:"population" gorm:""`

	CreatedAt time.Time `json:"-" gorm:"column:created_at"`
}

// TableName overrides the table name
func (Place) TableName() string {
	return "places"
}
