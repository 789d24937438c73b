// Package clients implements the admin-facing client-account CRUD. A client
// is a login (User with the client role) plus contact info and a set of
// assigned websites; both records are managed together.
package clients

import (
	"log"
	"net/http"
	"strconv"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles client management requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new clients handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Contact  string   `json:"contact"`
	Websites []string `json:"websites"`
}

func toResponse(client models.Client) ClientResponse {
	websites := make([]string, len(client.Websites))
	for i, w := range client.Websites {
		websites[i] = w.ID
	}
	return ClientResponse{
		ID:       client.ID,
		Name:     client.User.Name,
		Email:    client.User.Email,
		Contact:  client.Contact,
		Websites: websites,
	}
}

// List returns clients with search and pagination
// @Summary List clients
// @Tags clients
// @Produce json
// @Param keyword query string false "Search in name, email and contact"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	query := h.db.Model(&models.Client{}).
		Joins("JOIN users ON users.id = clients.user_id")
	if keyword := c.Query("keyword"); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("users.name LIKE ? OR users.email LIKE ? OR clients.contact LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	var clients []models.Client
	if err := query.Preload("User").Preload("Websites").
		Order("users.name").Offset((page - 1) * perPage).Limit(perPage).
		Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	data := make([]ClientResponse, len(clients))
	for i, client := range clients {
		data[i] = toResponse(client)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
		},
	})
}

// CreateRequest creates a client login plus its profile in one step.
type CreateRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Contact  string   `json:"contact"`
	Websites []string `json:"websites"`
}

// Create creates a new client
// @Summary Create a client
// @Description Create the client's user account and profile, optionally assigning websites
// @Tags clients
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Client data"
// @Success 201 {object} ClientResponse
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /clients [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	var client models.Client
	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:        req.Email,
			PasswordHash: hash,
			Name:         req.Name,
			Role:         models.RoleClient,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		client = models.Client{Contact: req.Contact, UserID: user.ID}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		if len(req.Websites) > 0 {
			var websites []models.Website
			if err := tx.Find(&websites, "id IN ?", req.Websites).Error; err != nil {
				return err
			}
			return tx.Model(&client).Association("Websites").Append(&websites)
		}
		return nil
	})
	if err != nil {
		log.Printf("clients: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	h.db.Preload("User").Preload("Websites").First(&client, "id = ?", client.ID)
	c.JSON(http.StatusCreated, toResponse(client))
}

// Get returns one client
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	var client models.Client
	if err := h.db.Preload("User").Preload("Websites").
		First(&client, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, toResponse(client))
}

// UpdateRequest is a partial client update. Websites replaces the whole
// assignment when present.
type UpdateRequest struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email" binding:"omitempty,email"`
	Password *string   `json:"password" binding:"omitempty,min=8"`
	Contact  *string   `json:"contact"`
	Websites *[]string `json:"websites"`
}

// Update updates a client
// @Summary Update a client
// @Tags clients
// @Accept json
// @Param id path string true "Client ID"
// @Param request body UpdateRequest true "Fields to patch"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var client models.Client
	if err := h.db.Preload("User").
		First(&client, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			client.User.Name = *req.Name
		}
		if req.Email != nil {
			client.User.Email = *req.Email
		}
		if req.Password != nil {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				return err
			}
			client.User.PasswordHash = hash
		}
		if err := tx.Save(&client.User).Error; err != nil {
			return err
		}

		if req.Contact != nil {
			client.Contact = *req.Contact
			if err := tx.Save(&client).Error; err != nil {
				return err
			}
		}

		if req.Websites != nil {
			var websites []models.Website
			if err := tx.Find(&websites, "id IN ?", *req.Websites).Error; err != nil {
				return err
			}
			return tx.Model(&client).Association("Websites").Replace(&websites)
		}
		return nil
	})
	if err != nil {
		log.Printf("clients: update failed for %s: %v", client.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a client and its login
// @Summary Delete a client
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&client).Association("Websites").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&client).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", client.UserID).Error
	})
	if err != nil {
		log.Printf("clients: delete failed for %s: %v", client.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers client management routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
