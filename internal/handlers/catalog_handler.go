package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/auth"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/validation"
)

// listCatalog serves the sneaker list read-through from the cache.
func listCatalog(ctx context.Context, store *catalog.Store, cache *catalog.ListCache) ([]catalog.Sneaker, error) {
	if cache != nil {
		if list, ok := cache.Get(ctx); ok {
			return list, nil
		}
	}
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []catalog.Sneaker{}
	}
	if cache != nil {
		_ = cache.Set(ctx, list)
	}
	return list, nil
}

// criteriaFromQuery builds filter criteria from query params. Absent price
// bounds fall back to the pipeline defaults.
func criteriaFromQuery(c *gin.Context) catalog.Criteria {
	crit := catalog.Criteria{
		Term:      c.Query("term"),
		SortOrder: c.DefaultQuery("sort", catalog.SortNewest),
	}
	if v, err := strconv.ParseInt(c.Query("price_min"), 10, 64); err == nil {
		crit.PriceMin = v
	}
	if v, err := strconv.ParseInt(c.Query("price_max"), 10, 64); err == nil {
		crit.PriceMax = v
	}
	if brands := c.Query("brands"); brands != "" {
		for _, b := range strings.Split(brands, ",") {
			if b = strings.TrimSpace(b); b != "" {
				crit.Brands = append(crit.Brands, b)
			}
		}
	}
	return crit
}

func sneakerFromRequest(req validation.SneakerRequest) catalog.Sneaker {
	return catalog.Sneaker{
		Name:       req.Name,
		Brand:      req.Brand,
		PriceCents: req.PriceCents,
		Sizes:      req.Sizes,
		Images:     req.Images,
		SKU:        req.SKU,
		Sustainability: catalog.Sustainability{
			CarbonFootprint:  req.Sustainability.CarbonFootprint,
			RecycledMaterial: req.Sustainability.RecycledMaterial,
			Repairable:       req.Sustainability.Repairable,
			Wears:            req.Sustainability.Wears,
		},
		Description: req.Description,
		Category:    req.Category,
		Model3D:     req.Model3D,
	}
}

// RegisterCatalogRoutes registers the sneaker catalog API. Reads are public;
// mutations are admin-only and invalidate the list cache.
func RegisterCatalogRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	store := catalog.NewStore(cfg.DynamoDBClient, cfg.SneakersTable)
	var cache *catalog.ListCache
	if cfg.Redis != nil {
		cache = catalog.NewListCache(cfg.Redis, cfg.CatalogTTL)
	}

	// GET /sneakers serves the full list; with any filter params present the
	// filter/sort pipeline runs over the cached snapshot.
	r.GET("/sneakers", func(c *gin.Context) {
		ctx := c.Request.Context()

		list, err := listCatalog(ctx, store, cache)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog_read_failed", "detail": err.Error()})
			return
		}

		if len(c.Request.URL.Query()) > 0 {
			list = catalog.Filter(list, criteriaFromQuery(c))
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/sneakers/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		sn, err := store.Get(ctx, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog_read_failed", "detail": err.Error()})
			return
		}
		if sn == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "sneaker_not_found"})
			return
		}
		c.JSON(http.StatusOK, sn)
	})

	admin := r.Group("/sneakers", auth.RequireUser(cfg.JWTSecret), auth.RequireAdmin())

	admin.POST("", func(c *gin.Context) {
		ctx := c.Request.Context()
		id, _ := auth.CurrentUser(c)

		var req validation.SneakerRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		sn := sneakerFromRequest(req)
		sn.SneakerID = uuid.NewString()
		sn.CreatedBy = id.UserID

		if err := store.Create(ctx, sn); err != nil {
			if errors.Is(err, catalog.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "sneaker_exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog_write_failed", "detail": err.Error()})
			return
		}
		if cache != nil {
			cache.Invalidate(ctx)
		}

		created, err := store.Get(ctx, sn.SneakerID)
		if err != nil || created == nil {
			created = &sn
		}
		c.JSON(http.StatusCreated, created)
	})

	admin.PUT("/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.SneakerRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		sn := sneakerFromRequest(req)
		sn.SneakerID = c.Param("id")

		found, err := store.Update(ctx, sn)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog_write_failed", "detail": err.Error()})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "sneaker_not_found"})
			return
		}
		if cache != nil {
			cache.Invalidate(ctx)
		}

		updated, err := store.Get(ctx, sn.SneakerID)
		if err != nil || updated == nil {
			updated = &sn
		}
		c.JSON(http.StatusOK, updated)
	})

	admin.DELETE("/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		found, err := store.Delete(ctx, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog_delete_failed", "detail": err.Error()})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "sneaker_not_found"})
			return
		}
		if cache != nil {
			cache.Invalidate(ctx)
		}
		c.JSON(http.StatusOK, gin.H{"message": "sneaker deleted"})
	})
}
