package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/auth"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/cart"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/validation"
)

// cartView is the product-expanded cart representation returned by every
// cart endpoint.
type cartView struct {
	UserID string              `json:"user_id,omitempty"`
	Items  []cart.ExpandedItem `json:"items"`
}

// renderCart expands the stored cart against the current catalog, persists
// the cleanup when dangling references were dropped, and returns the view.
// A missing cart renders as an empty item list.
func renderCart(ctx context.Context, carts *cart.Store, cat *catalog.Store, userID string) (cartView, error) {
	c, err := carts.Get(ctx, userID)
	if err != nil {
		return cartView{}, err
	}
	if c == nil {
		return cartView{Items: []cart.ExpandedItem{}}, nil
	}

	known, err := cat.BatchGet(ctx, c.SneakerIDs())
	if err != nil {
		return cartView{}, err
	}

	expanded, changed := cart.Reconcile(c, known)
	if changed {
		if err := carts.Save(ctx, c); err != nil {
			return cartView{}, err
		}
	}
	return cartView{UserID: c.UserID, Items: expanded}, nil
}

// RegisterCartRoutes registers the cart API. All routes require a caller
// identity.
func RegisterCartRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	carts := cart.NewStore(cfg.DynamoDBClient, cfg.CartsTable)
	cat := catalog.NewStore(cfg.DynamoDBClient, cfg.SneakersTable)

	g := r.Group("/cart", auth.RequireUser(cfg.JWTSecret))

	g.GET("", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)

		view, err := renderCart(ctx, carts, cat, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	g.POST("", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)

		var req validation.AddCartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		sn, err := cat.Get(ctx, req.SneakerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sneaker_lookup_failed", "detail": err.Error()})
			return
		}
		if sn == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "sneaker_not_found"})
			return
		}
		if !sn.OffersSize(req.Size) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size_not_offered"})
			return
		}

		userCart, err := carts.GetOrNew(ctx, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		userCart.AddItem(req.SneakerID, req.Quantity, req.Size)
		if err := carts.Save(ctx, userCart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed", "detail": err.Error()})
			return
		}

		view, err := renderCart(ctx, carts, cat, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	g.PUT("/:itemId", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)
		itemID := c.Param("itemId")

		var req validation.UpdateCartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		userCart, err := carts.Get(ctx, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		if userCart == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart_not_found"})
			return
		}

		if err := userCart.UpdateItem(itemID, *req.Quantity); err != nil {
			if errors.Is(err, cart.ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_update_failed", "detail": err.Error()})
			return
		}
		if err := carts.Save(ctx, userCart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed", "detail": err.Error()})
			return
		}

		view, err := renderCart(ctx, carts, cat, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	g.DELETE("/:itemId", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)
		itemID := c.Param("itemId")

		userCart, err := carts.Get(ctx, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		if userCart == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart_not_found"})
			return
		}

		if err := userCart.RemoveItem(itemID); err != nil {
			if errors.Is(err, cart.ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_update_failed", "detail": err.Error()})
			return
		}
		if err := carts.Save(ctx, userCart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_write_failed", "detail": err.Error()})
			return
		}

		view, err := renderCart(ctx, carts, cat, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_read_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	})
}
