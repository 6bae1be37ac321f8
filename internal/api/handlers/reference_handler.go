// internal/api/handlers/reference_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/domain"
	"github.com/oceanbridge/importflow/internal/service"
)

type ReferenceHandler struct {
	refService *service.ReferenceService
}

func NewReferenceHandler(refService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refService: refService}
}

// GetCountries returns all countries
func (h *ReferenceHandler) GetCountries(c *gin.Context) {
	countries, err := h.refService.GetCountries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch countries"})
		return
	}
	c.JSON(http.StatusOK, countries)
}

// GetCities returns cities, optionally filtered by country
func (h *ReferenceHandler) GetCities(c *gin.Context) {
	countryID, _ := strconv.ParseInt(c.Query("country_id"), 10, 64)

	cities, err := h.refService.GetCities(c.Request.Context(), countryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cities"})
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GetCurrencies returns all currencies
func (h *ReferenceHandler) GetCurrencies(c *gin.Context) {
	currencies, err := h.refService.GetCurrencies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch currencies"})
		return
	}
	c.JSON(http.StatusOK, currencies)
}

// GetCustomers returns customers with optional search and pagination
func (h *ReferenceHandler) GetCustomers(c *gin.Context) {
	search := c.Query("search")
	limit := parsePositiveIntWithDefault(c.Query("limit"), 50)
	offset := parseNonNegativeInt(c.Query("offset"))

	customers, err := h.refService.GetCustomers(c.Request.Context(), search, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// CreateCustomer adds a customer record
func (h *ReferenceHandler) CreateCustomer(c *gin.Context) {
	var customer domain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer payload"})
		return
	}
	if strings.TrimSpace(customer.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer name is required"})
		return
	}

	if err := h.refService.CreateCustomer(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetVendors returns vendors with optional search and pagination
func (h *ReferenceHandler) GetVendors(c *gin.Context) {
	search := c.Query("search")
	limit := parsePositiveIntWithDefault(c.Query("limit"), 50)
	offset := parseNonNegativeInt(c.Query("offset"))

	vendors, err := h.refService.GetVendors(c.Request.Context(), search, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vendors"})
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// CreateVendor adds a vendor record
func (h *ReferenceHandler) CreateVendor(c *gin.Context) {
	var vendor domain.Vendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor payload"})
		return
	}
	if strings.TrimSpace(vendor.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendor name is required"})
		return
	}

	if err := h.refService.CreateVendor(c.Request.Context(), &vendor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create vendor"})
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

// GetItemTypes returns all item types
func (h *ReferenceHandler) GetItemTypes(c *gin.Context) {
	itemTypes, err := h.refService.GetItemTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch item types"})
		return
	}
	c.JSON(http.StatusOK, itemTypes)
}

// GetUOMs returns all units of measure
func (h *ReferenceHandler) GetUOMs(c *gin.Context) {
	uoms, err := h.refService.GetUOMs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch uoms"})
		return
	}
	c.JSON(http.StatusOK, uoms)
}

// GetProducts returns catalog products with optional search
func (h *ReferenceHandler) GetProducts(c *gin.Context) {
	search := c.Query("search")
	limit := parsePositiveIntWithDefault(c.Query("limit"), 50)
	offset := parseNonNegativeInt(c.Query("offset"))

	products, err := h.refService.GetProducts(c.Request.Context(), search, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct adds a catalog product
func (h *ReferenceHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if strings.TrimSpace(product.SKU) == "" || strings.TrimSpace(product.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product sku and name are required"})
		return
	}

	if err := h.refService.CreateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetShippingLines returns all shipping lines
func (h *ReferenceHandler) GetShippingLines(c *gin.Context) {
	lines, err := h.refService.GetShippingLines(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shipping lines"})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// GetConsignees returns all consignees
func (h *ReferenceHandler) GetConsignees(c *gin.Context) {
	consignees, err := h.refService.GetConsignees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch consignees"})
		return
	}
	c.JSON(http.StatusOK, consignees)
}

// GetFinalDestinations returns all final destinations
func (h *ReferenceHandler) GetFinalDestinations(c *gin.Context) {
	destinations, err := h.refService.GetFinalDestinations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch final destinations"})
		return
	}
	c.JSON(http.StatusOK, destinations)
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if fallback <= 0 {
		fallback = 50
	}
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func parseNonNegativeInt(value string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v >= 0 {
		return v
	}
	return 0
}
