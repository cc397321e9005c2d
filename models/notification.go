package models

import "time"

// Notification is written once per successful claim and addressed to the
// listing's donor. Receiver contact fields are captured at claim time so the
// record stays readable even if the receiver account changes later.
type Notification struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RecipientID     uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient       User      `gorm:"foreignKey:RecipientID" json:"-"`
	ListingID       uint      `gorm:"not null;index" json:"listing_id"`
	Listing         Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	ReceiverID      uint      `gorm:"not null" json:"receiver_id"`
	Receiver        User      `gorm:"foreignKey:ReceiverID" json:"receiver"`
	ReceiverName    string    `gorm:"type:varchar(255);not null" json:"receiver_name"`
	ReceiverEmail   string    `gorm:"type:varchar(255);not null" json:"receiver_email"`
	ReceiverPhone   string    `gorm:"type:varchar(50)" json:"receiver_phone"`
	ReceiverAddress string    `gorm:"type:varchar(255)" json:"receiver_address"`
	ListingTitle    string    `gorm:"type:varchar(255);not null" json:"listing_title"`
	ClaimQuantity   int       `gorm:"not null" json:"claim_quantity"`
	Message         string    `gorm:"type:text;not null" json:"message"`
	Read            bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
