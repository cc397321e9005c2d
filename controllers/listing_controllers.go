package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshare/foodshare-app/models"
	"github.com/foodshare/foodshare-app/services"
	"github.com/foodshare/foodshare-app/utils"
)

type ListingController struct {
	DB           *gorm.DB
	ClaimService *services.ClaimService
}

func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{
		DB:           db,
		ClaimService: services.NewClaimService(db),
	}
}

// CreateListing -> donor posts a surplus-food offer
func (lc *ListingController) CreateListing(c *gin.Context) {
	type request struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		Quantity    int     `json:"quantity" binding:"required,gt=0"`
		Location    string  `json:"location" binding:"required"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"image_url" binding:"required"`
		Quality     string  `json:"quality"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("please provide all required fields including image"))
		return
	}

	if req.Quality == "" {
		req.Quality = models.QualityGood
	}
	if !models.ValidQuality(req.Quality) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid quality value"))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	listing := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Quality:     req.Quality,
		Status:      models.ListingStatusAvailable,
		DonorID:     userID,
	}

	if err := lc.DB.Create(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Listing created: %q by donor %d", listing.Title, userID)

	utils.RespondJSON(c, http.StatusCreated, "Listing created successfully!", listing)
}

// GetAllListings -> every listing still open for claims
func (lc *ListingController) GetAllListings(c *gin.Context) {
	var listings []models.Listing
	if err := lc.DB.Preload("Donor").
		Where("status = ?", models.ListingStatusAvailable).
		Find(&listings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available listings", listings)
}

// GetListing -> single listing detail
func (lc *ListingController) GetListing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("listing_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid listing id"))
		return
	}

	var listing models.Listing
	if err := lc.DB.Preload("Donor").First(&listing, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("listing not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Listing detail", listing)
}

// GetMyListings -> donor's own posts, newest first
func (lc *ListingController) GetMyListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var listings []models.Listing
	if err := lc.DB.Preload("Receiver").
		Where("donor_id = ?", userID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My listings", listings)
}

// ClaimListing -> receiver claims part or all of a listing's quantity
func (lc *ListingController) ClaimListing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("listing_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid listing id"))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		ClaimQuantity int `json:"claimQuantity"`
	}
	// Empty body means claim a single item
	_ = c.ShouldBindJSON(&body)

	result, err := lc.ClaimService.Claim(uint(id), userID, body.ClaimQuantity)
	if err != nil {
		var claimErr *services.ClaimError
		if errors.As(err, &claimErr) {
			utils.RespondError(c, claimErr.Status(), claimErr)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, result.Message, result.Listing)
}

// DeleteListing -> only the owning donor may remove a listing
func (lc *ListingController) DeleteListing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("listing_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid listing id"))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var listing models.Listing
	if err := lc.DB.First(&listing, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("listing not found"))
		return
	}
	if listing.DonorID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("user not authorized to delete this listing"))
		return
	}

	if err := lc.DB.Delete(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Listing deleted successfully.", gin.H{"listing_id": listing.ID})
}
