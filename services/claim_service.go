package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/foodshare/foodshare-app/models"
	"github.com/foodshare/foodshare-app/realtime"
	"github.com/foodshare/foodshare-app/utils"
)

// ClaimService is the only code path that mutates a listing's quantity and
// status. Controllers never touch those columns directly.
type ClaimService struct {
	db *gorm.DB
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{db: db}
}

type ClaimResult struct {
	Listing      models.Listing       `json:"listing"`
	Notification *models.Notification `json:"notification,omitempty"`
	Message      string               `json:"message"`
}

// Claim validates and applies a receiver's claim against a listing.
//
// The precondition checks run on a plain read; the decrement itself is a
// guarded UPDATE (status = available AND quantity >= amount), so two claims
// racing past the checks cannot both win more than the listing holds. When
// the guarded update matches nothing the listing is re-read and the failure
// re-classified against its current state.
//
// Notification write and presence push happen after the decrement is
// committed. If either fails the claim still stands; the failure is logged
// and never rolls back the quantity change.
func (s *ClaimService) Claim(listingID, requestingUserID uint, claimQuantity int) (*ClaimResult, error) {
	amount := claimQuantity
	if amount == 0 {
		amount = 1
	}

	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Listing not found.")
		}
		return nil, err
	}

	if listing.DonorID == requestingUserID {
		return nil, forbidden("You cannot claim your own listing.")
	}
	if listing.Status != models.ListingStatusAvailable {
		return nil, invalidState("This listing is no longer available.")
	}
	if amount <= 0 {
		return nil, invalidArgument("Claim quantity must be greater than 0.")
	}
	if amount > listing.Quantity {
		return nil, overClaim(listing.Quantity)
	}

	var receiver models.User
	if err := s.db.First(&receiver, requestingUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Receiver not found.")
		}
		return nil, err
	}

	// Guarded decrement, the atomic step of the whole flow.
	res := s.db.Model(&models.Listing{}).
		Where("id = ? AND status = ? AND quantity >= ?",
			listing.ID, models.ListingStatusAvailable, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost a race since the precondition read. Reclassify.
		if err := s.db.First(&listing, listing.ID).Error; err != nil {
			return nil, notFound("Listing not found.")
		}
		if listing.Status != models.ListingStatusAvailable {
			return nil, invalidState("This listing is no longer available.")
		}
		return nil, overClaim(listing.Quantity)
	}

	// Only the claim that zeroed the quantity records the receiver. The
	// status guard keeps a second writer from ever re-running this.
	transition := s.db.Model(&models.Listing{}).
		Where("id = ? AND quantity = 0 AND status = ?",
			listing.ID, models.ListingStatusAvailable).
		Updates(map[string]interface{}{
			"status":      models.ListingStatusClaimed,
			"receiver_id": requestingUserID,
		})
	if transition.Error != nil {
		return nil, transition.Error
	}

	if err := s.db.First(&listing, listing.ID).Error; err != nil {
		return nil, err
	}

	result := &ClaimResult{
		Listing: listing,
		Message: fmt.Sprintf("Successfully claimed %d %s!", amount, pluralize(amount)),
	}

	notification := models.Notification{
		RecipientID:     listing.DonorID,
		ListingID:       listing.ID,
		ReceiverID:      receiver.ID,
		ReceiverName:    receiver.Name,
		ReceiverEmail:   receiver.Email,
		ReceiverPhone:   receiver.Phone,
		ReceiverAddress: receiver.Address,
		ListingTitle:    listing.Title,
		ClaimQuantity:   amount,
		Message: fmt.Sprintf("%s has claimed %d %s from your listing %q. Contact them to arrange pickup.",
			receiver.Name, amount, pluralize(amount), listing.Title),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		// Degraded: the decrement already stands, surface nothing to the caller.
		utils.ErrorLogger.Errorf("Claim on listing %d succeeded but notification write failed: %v", listing.ID, err)
		return result, nil
	}
	result.Notification = &notification

	s.pushClaimEvent(listing, receiver, notification, amount)

	return result, nil
}

// pushClaimEvent tells the donor right away, if they are connected.
func (s *ClaimService) pushClaimEvent(listing models.Listing, receiver models.User, notification models.Notification, amount int) {
	delivered := realtime.PushToUser(listing.DonorID, realtime.EventListingClaimed, map[string]interface{}{
		"message":          notification.Message,
		"listing_id":       listing.ID,
		"listing_title":    listing.Title,
		"receiver_id":      receiver.ID,
		"receiver_name":    receiver.Name,
		"receiver_email":   receiver.Email,
		"receiver_phone":   receiver.Phone,
		"receiver_address": receiver.Address,
		"claim_quantity":   amount,
		"notification_id":  notification.ID,
	})
	if delivered {
		utils.InfoLogger.Printf("Pushed claim event for listing %d to donor %d", listing.ID, listing.DonorID)
	}
}

func overClaim(available int) *ClaimError {
	err := invalidArgument(fmt.Sprintf("Cannot claim more than available quantity (%d).", available))
	err.Available = available
	return err
}

func pluralize(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}
