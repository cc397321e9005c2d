package models

import "time"

// Listing status
const (
	ListingStatusAvailable = "available"
	ListingStatusClaimed   = "claimed"
)

// Listing quality
const (
	QualityBest          = "Best Quality"
	QualityGood          = "Good Quality"
	QualityNotConsumable = "Not Consumable"
)

type Listing struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"price"`
	ImageURL    string    `gorm:"type:varchar(512);not null" json:"image_url"`
	Quality     string    `gorm:"type:varchar(20);not null;default:'Good Quality'" json:"quality"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	DonorID     uint      `gorm:"not null;index" json:"donor_id"`
	Donor       User      `gorm:"foreignKey:DonorID" json:"donor"`
	ReceiverID  *uint     `gorm:"index" json:"receiver_id,omitempty"`
	Receiver    *User     `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// ValidQuality reports whether q is one of the accepted quality labels.
func ValidQuality(q string) bool {
	switch q {
	case QualityBest, QualityGood, QualityNotConsumable:
		return true
	}
	return false
}
