package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"poshak-shop/models"
	"poshak-shop/services"
	"poshak-shop/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ProductController struct {
	catalog *services.CatalogService
	cache   *redis.Client
	logger  *zap.Logger
	refresh func() bool
}

func NewProductController(catalog *services.CatalogService, cache *redis.Client, logger *zap.Logger) *ProductController {
	ctrl := &ProductController{catalog: catalog, cache: cache, logger: logger}
	ctrl.refresh = utils.Throttle(10*time.Second, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := catalog.Refresh(ctx); err != nil {
			logger.Warn("manual catalog refresh failed", zap.Error(err))
		}
	})
	catalog.OnUpdate(ctrl.invalidateProductCache)
	return ctrl
}

func productCacheKey(search, category, sortBy string) string {
	return fmt.Sprintf("products_list_s%s_c%s_o%s", search, category, sortBy)
}

func (ctrl *ProductController) invalidateProductCache() {
	if ctrl.cache == nil {
		return
	}
	ctx := context.Background()
	iter := ctrl.cache.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		ctrl.cache.Del(ctx, iter.Val())
	}
}

// @Summary Get all products
// @Description Get the catalog, filtered and sorted
// @Tags Products
// @Produce json
// @Param search query string false "Search by product name"
// @Param category query string false "Filter by category"
// @Param sort query string false "Sort order" Enums(name_asc, name_desc, price_asc, price_desc)
// @Success 200 {object} models.Response
// @Failure 502 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))
	sortBy := strings.TrimSpace(c.Query("sort"))

	cacheKey := productCacheKey(search, category, sortBy)
	ctx := context.Background()

	if ctrl.cache != nil {
		cached, err := ctrl.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.catalog.EnsureFresh(c.Request.Context())
	if err != nil && len(products) == 0 {
		c.JSON(502, gin.H{"success": false, "message": utils.MsgProductsLoadFail})
		return
	}

	filtered := filterProducts(products, search, category, sortBy)
	views := make([]models.ProductView, 0, len(filtered))
	for _, p := range filtered {
		views = append(views, models.ProductView{Product: p, PriceDisplay: utils.FormatTaka(p.Price)})
	}

	stale := err != nil
	message := utils.MsgProductsLoaded
	if stale {
		message = utils.MsgProductsStale
	}

	response := gin.H{
		"success": true, "message": message, "data": views,
		"total": len(views), "fetched_at": ctrl.catalog.LastFetched(), "stale": stale,
	}

	if ctrl.cache != nil && !stale {
		jsonData, _ := json.Marshal(response)
		ctrl.cache.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

func filterProducts(products []models.Product, search, category, sortBy string) []models.Product {
	needle := strings.ToLower(search)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch sortBy {
	case "name_asc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	case "name_desc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name > filtered[j].Name })
	case "price_asc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price_desc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	return filtered
}

// @Summary Get product by ID
// @Description Get product details
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	p, err := ctrl.catalog.ProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": utils.MsgProductNotFound})
			return
		}
		c.JSON(502, gin.H{"success": false, "message": utils.MsgProductsLoadFail})
		return
	}

	view := models.ProductView{Product: p, PriceDisplay: utils.FormatTaka(p.Price)}
	c.JSON(200, gin.H{"success": true, "message": utils.MsgProductFetched, "data": view})
}

// @Summary Get all categories
// @Description Get the distinct categories of the catalog
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	_, err := ctrl.catalog.EnsureFresh(c.Request.Context())
	if err != nil && len(ctrl.catalog.Products()) == 0 {
		c.JSON(502, gin.H{"success": false, "message": utils.MsgProductsLoadFail})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": utils.MsgCategoriesFetched, "data": ctrl.catalog.Categories()})
}

// @Summary Refresh the catalog
// @Description Force a catalog refresh, rate limited
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Failure 429 {object} models.ErrorResponse
// @Router /products/refresh [post]
func (ctrl *ProductController) RefreshProducts(c *gin.Context) {
	if !ctrl.refresh() {
		c.JSON(429, gin.H{"success": false, "message": utils.MsgRefreshThrottled})
		return
	}

	c.JSON(200, gin.H{
		"success": true, "message": utils.MsgCatalogRefreshed,
		"data": gin.H{"total": len(ctrl.catalog.Products()), "fetched_at": ctrl.catalog.LastFetched()},
	})
}
