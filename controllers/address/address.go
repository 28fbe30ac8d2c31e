package addressControllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// AddressInput shares the checkout address rules.
type AddressInput struct {
	FirstName  string `json:"first_name" binding:"required,min=2,max=100"`
	LastName   string `json:"last_name" binding:"required,min=2,max=100"`
	Address    string `json:"address" binding:"required,min=10"`
	City       string `json:"city" binding:"required,min=2,max=100"`
	PostalCode string `json:"postal_code" binding:"required,min=5,max=20"`
	Phone      string `json:"phone" binding:"required,min=10,max=20"`
	IsDefault  bool   `json:"is_default"`
}

func (in AddressInput) applyTo(a *models.Address) {
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.Address = in.Address
	a.City = in.City
	a.PostalCode = in.PostalCode
	a.Phone = in.Phone
	a.IsDefault = in.IsDefault
}

// ownedAddress loads the address and writes 404 or 403 when the caller may not touch it.
func ownedAddress(c *gin.Context, st store.Store, userID string) (*models.Address, bool) {
	addr, err := st.GetAddress(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return nil, false
		}
		log.Printf("❌ Failed to fetch address %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
		return nil, false
	}
	if addr.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return nil, false
	}
	return addr, true
}

// save writes the address and, when it is the default, unsets the user's other defaults.
func save(ctx context.Context, st store.Store, addr *models.Address, create bool) error {
	return st.WithTx(ctx, func(tx store.Store) error {
		var err error
		if create {
			err = tx.CreateAddress(ctx, addr)
		} else {
			err = tx.UpdateAddress(ctx, addr)
		}
		if err != nil {
			return err
		}
		if addr.IsDefault {
			return tx.ClearDefaultAddress(ctx, addr.UserID, addr.ID)
		}
		return nil
	})
}

// GET /api/addresses
func GetAddresses(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		addrs, err := st.ListAddresses(c.Request.Context(), userID)
		if err != nil {
			log.Printf("❌ Failed to fetch addresses for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		if addrs == nil {
			addrs = []models.Address{}
		}
		c.JSON(http.StatusOK, addrs)
	}
}

// GET /api/addresses/:id
func GetAddress(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if addr, ok := ownedAddress(c, st, userID); ok {
			c.JSON(http.StatusOK, addr)
		}
	}
}

// POST /api/addresses
func CreateAddress(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		addr := &models.Address{UserID: userID}
		input.applyTo(addr)
		if err := save(c.Request.Context(), st, addr, true); err != nil {
			log.Printf("❌ Failed to create address for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, addr)
	}
}

// PUT /api/addresses/:id
func UpdateAddress(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		addr, ok := ownedAddress(c, st, userID)
		if !ok {
			return
		}
		input.applyTo(addr)
		if err := save(c.Request.Context(), st, addr, false); err != nil {
			log.Printf("❌ Failed to update address %s: %v", addr.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}
		c.JSON(http.StatusOK, addr)
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		addr, ok := ownedAddress(c, st, userID)
		if !ok {
			return
		}
		if err := st.DeleteAddress(c.Request.Context(), addr.ID); err != nil {
			log.Printf("❌ Failed to delete address %s: %v", addr.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
