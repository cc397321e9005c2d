package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodshare/foodshare-app/models"
	"github.com/foodshare/foodshare-app/router"
	"github.com/foodshare/foodshare-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndClaimFlow walks the whole marketplace path:
// 1. Donor and receivers register
// 2. Donor posts a listing and connects for realtime events
// 3. Receiver claims part of it -> donor gets a live push and a notification
// 4. Donor marks the notification read
// 5. A second receiver claims the rest -> listing closes
func TestEndToEndClaimFlow(t *testing.T) {
	db := setupIntegrationDB()
	gin.SetMode(gin.TestMode)
	r := router.SetupRouter(db)

	srv := httptest.NewServer(r)
	defer srv.Close()

	donorToken := registerUser(t, srv, map[string]interface{}{
		"name": "Dana Donor", "email": "dana@example.com", "password": "secret123", "role": "donor",
	})
	receiverToken := registerUser(t, srv, map[string]interface{}{
		"name": "Riley Receiver", "email": "riley@example.com", "password": "secret123",
		"role": "receiver", "phone": "+1-555-0101", "address": "45 Oak Avenue",
	})
	receiver2Token := registerUser(t, srv, map[string]interface{}{
		"name": "Rae Second", "email": "rae@example.com", "password": "secret123",
		"role": "receiver", "phone": "+1-555-0102", "address": "7 Station Road",
	})

	// Donor posts a listing
	listingID := createListing(t, srv, donorToken, map[string]interface{}{
		"title":     "Fresh Vegetable Box",
		"quantity":  10,
		"location":  "12 Market Street",
		"price":     0,
		"image_url": "https://example.com/veg.jpg",
	})

	// Donor connects for realtime events
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + donorToken
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer ws.Close()

	// Give the server a beat to register the session
	time.Sleep(100 * time.Millisecond)

	// Receiver claims 4 of 10
	resp := apiRequest(t, srv, "POST", fmt.Sprintf("/listings/claim/%d", listingID),
		map[string]interface{}{"claimQuantity": 4}, receiverToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	listing := body["data"].(map[string]interface{})
	assert.Equal(t, float64(6), listing["quantity"])
	assert.Equal(t, "available", listing["status"])

	// Donor receives the push
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event struct {
		Event string                 `json:"event"`
		Data  map[string]interface{} `json:"data"`
	}
	assert.NoError(t, ws.ReadJSON(&event))
	assert.Equal(t, "listing_claimed", event.Event)
	assert.Equal(t, float64(4), event.Data["claim_quantity"])
	assert.Equal(t, "Riley Receiver", event.Data["receiver_name"])
	assert.Contains(t, event.Data["message"], "4 items")

	// Donor polls notifications and marks the claim read
	resp = apiRequest(t, srv, "GET", "/notifications", nil, donorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	notifs := body["data"].([]interface{})
	assert.Len(t, notifs, 1)
	notifID := int(notifs[0].(map[string]interface{})["id"].(float64))

	resp = apiRequest(t, srv, "PUT", fmt.Sprintf("/notifications/%d/read", notifID), nil, donorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Second receiver takes the remaining 6; the listing closes
	resp = apiRequest(t, srv, "POST", fmt.Sprintf("/listings/claim/%d", listingID),
		map[string]interface{}{"claimQuantity": 6}, receiver2Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	listing = body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), listing["quantity"])
	assert.Equal(t, "claimed", listing["status"])

	// The donor still sees the closed listing among their own posts
	resp = apiRequest(t, srv, "GET", "/listings/my-listings", nil, donorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["data"].([]interface{}), 1)

	// Closed listing no longer shows in the public browse
	resp = apiRequest(t, srv, "GET", "/listings", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Empty(t, body["data"])

	// Logout invalidates the donor's token
	resp = apiRequest(t, srv, "POST", "/logout", nil, donorToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = apiRequest(t, srv, "GET", "/me", nil, donorToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Notification{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func apiRequest(t *testing.T, srv *httptest.Server, method, path string, payload interface{}, token string) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if payload != nil {
		body, err := json.Marshal(payload)
		assert.NoError(t, err)
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func registerUser(t *testing.T, srv *httptest.Server, payload map[string]interface{}) string {
	t.Helper()
	resp := apiRequest(t, srv, "POST", "/register", payload, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return body["data"].(map[string]interface{})["token"].(string)
}

func createListing(t *testing.T, srv *httptest.Server, token string, payload map[string]interface{}) int {
	t.Helper()
	resp := apiRequest(t, srv, "POST", "/listings", payload, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return int(body["data"].(map[string]interface{})["id"].(float64))
}
