package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/auth"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/cart"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/orders"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/users"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/validation"
)

// orderItemView is an order line joined with its current sneaker record.
// Sneaker is null when the product was deleted after the order was placed;
// the snapshotted price and quantity remain authoritative.
type orderItemView struct {
	SneakerID  string           `json:"sneaker_id"`
	Sneaker    *catalog.Sneaker `json:"sneaker,omitempty"`
	Quantity   int              `json:"quantity"`
	Size       float64          `json:"size"`
	PriceCents int64            `json:"price_cents"`
}

type orderView struct {
	orders.Order
	Items []orderItemView `json:"items"`
	User  *users.User     `json:"user,omitempty"` // admin listing only
}

func expandOrders(ctx context.Context, cat *catalog.Store, list []orders.Order) ([]orderView, error) {
	var ids []string
	for _, o := range list {
		for _, it := range o.Items {
			ids = append(ids, it.SneakerID)
		}
	}
	known, err := cat.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]orderView, 0, len(list))
	for _, o := range list {
		view := orderView{Order: o, Items: make([]orderItemView, 0, len(o.Items))}
		for _, it := range o.Items {
			iv := orderItemView{
				SneakerID:  it.SneakerID,
				Quantity:   it.Quantity,
				Size:       it.Size,
				PriceCents: it.PriceCents,
			}
			if sn, ok := known[it.SneakerID]; ok {
				sn := sn
				iv.Sneaker = &sn
			}
			view.Items = append(view.Items, iv)
		}
		views = append(views, view)
	}
	return views, nil
}

// RegisterOrderRoutes registers the order API: conversion, listings and the
// admin status transition.
func RegisterOrderRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	carts := cart.NewStore(cfg.DynamoDBClient, cfg.CartsTable)
	cat := catalog.NewStore(cfg.DynamoDBClient, cfg.SneakersTable)
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	usersStore := users.NewStore(cfg.DynamoDBClient, cfg.UsersTable)

	var publisher *aws.Publisher
	if cfg.SQSClient != nil && cfg.QueueURL != "" {
		publisher = aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
	}
	var metrics *aws.Metrics
	if cfg.CloudWatchClient != nil {
		metrics = aws.NewMetrics(cfg.CloudWatchClient)
	}
	converter := orders.NewConverter(carts, cat, ordersStore, cfg.CartsTable, publisher, metrics)

	g := r.Group("/orders", auth.RequireUser(cfg.JWTSecret))

	g.POST("", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)

		order, err := converter.Convert(ctx, id.UserID)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart", "message": "Cart is empty"})
			case errors.Is(err, orders.ErrNoValidItems):
				c.JSON(http.StatusBadRequest, gin.H{"error": "no_valid_items", "message": "All items in cart are no longer available"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "conversion_failed", "detail": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, order)
	})

	g.GET("/my", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)

		list, err := ordersStore.ListByUser(ctx, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_read_failed", "detail": err.Error()})
			return
		}
		views, err := expandOrders(ctx, cat, list)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_expand_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, views)
	})

	g.GET("/:id", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)
		orderID := c.Param("id")

		order, err := ordersStore.Get(ctx, orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_read_failed", "detail": err.Error()})
			return
		}
		// a foreign order reads as absent rather than forbidden
		if order == nil || (order.UserID != id.UserID && !id.IsAdmin()) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}

		views, err := expandOrders(ctx, cat, []orders.Order{*order})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_expand_failed", "detail": err.Error()})
			return
		}
		view := views[0]

		if id.IsAdmin() {
			owner, err := usersStore.Get(ctx, order.UserID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "users_expand_failed", "detail": err.Error()})
				return
			}
			view.User = owner
		}

		c.JSON(http.StatusOK, view)
	})

	g.GET("", auth.RequireAdmin(), func(c *gin.Context) {
		ctx := c.Request.Context()

		list, err := ordersStore.ListAll(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_read_failed", "detail": err.Error()})
			return
		}
		views, err := expandOrders(ctx, cat, list)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_expand_failed", "detail": err.Error()})
			return
		}

		var ownerIDs []string
		for _, o := range list {
			ownerIDs = append(ownerIDs, o.UserID)
		}
		owners, err := usersStore.BatchGet(ctx, ownerIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "users_expand_failed", "detail": err.Error()})
			return
		}
		for i := range views {
			if u, ok := owners[views[i].UserID]; ok {
				u := u
				views[i].User = &u
			}
		}

		c.JSON(http.StatusOK, views)
	})

	g.PUT("/:id/status", auth.RequireAdmin(), func(c *gin.Context) {
		ctx := c.Request.Context()
		orderID := c.Param("id")

		var req validation.UpdateOrderStatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		order, err := ordersStore.Get(ctx, orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_read_failed", "detail": err.Error()})
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}

		if !orders.IsForwardTransition(order.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_transition",
				"message": "status may only advance through the fulfillment sequence",
				"current": order.Status,
			})
			return
		}

		if err := ordersStore.UpdateStatus(ctx, orderID, order.Status, req.Status); err != nil {
			if errors.Is(err, orders.ErrStatusMismatch) {
				// a concurrent admin update won; surface the conflict
				c.JSON(http.StatusConflict, gin.H{"error": "status_conflict"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "status_update_failed", "detail": err.Error()})
			return
		}

		updated, err := ordersStore.Get(ctx, orderID)
		if err != nil || updated == nil {
			order.Status = req.Status
			updated = order
		}
		c.JSON(http.StatusOK, updated)
	})
}
