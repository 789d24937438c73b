package articles

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestAdmin(t *testing.T, db *gorm.DB) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return user
}

func createTestWebsite(t *testing.T, db *gorm.DB, name string) models.Website {
	website := models.Website{Name: name, URL: "https://" + name + ".example.com"}
	if err := db.Create(&website).Error; err != nil {
		t.Fatalf("Failed to create test website: %v", err)
	}
	return website
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	content := r.Group("/api/websites/:website")
	content.Use(auth.AuthMiddleware(), auth.WebsiteMiddleware(db), auth.ContentAccessMiddleware(db))
	handler.RegisterRoutes(content)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, user models.User, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	token, _ := auth.GenerateToken(user.ID, user.Email, string(user.Role))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateArticleWithLocalizations(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	body := `{"localizations":[{"lang":"en","title":"Hello","slug":"hello","content":"{}"},{"lang":"id","title":"Halo","slug":"halo","content":"{}"}]}`
	resp := doJSON(t, router, admin, "POST", "/api/websites/"+website.ID+"/articles", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created models.Article
	json.Unmarshal(resp.Body.Bytes(), &created)
	if created.Status != models.ArticleStatusDraft {
		t.Errorf("Expected draft by default, got %d", created.Status)
	}
	if len(created.Localizations) != 2 {
		t.Errorf("Expected 2 localizations, got %d", len(created.Localizations))
	}
	if created.CreatedByID == nil || *created.CreatedByID != admin.ID {
		t.Error("Expected created_by to record the author")
	}
}

func TestCreateArticleRequiresLocalization(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	resp := doJSON(t, router, admin, "POST", "/api/websites/"+website.ID+"/articles",
		`{"localizations":[]}`)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", resp.Code)
	}
}

func TestUpdateArticleReplacesLocalizations(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	article := models.Article{WebsiteID: website.ID}
	db.Create(&article)
	db.Create(&models.ArticleLocalization{ArticleID: article.ID, Lang: "en", Title: "Old", Slug: "old"})

	body := `{"status":1,"localizations":[{"lang":"en","title":"New","slug":"new","content":"{}"}]}`
	resp := doJSON(t, router, admin, "PUT",
		"/api/websites/"+website.ID+"/articles/"+article.ID, body)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.Article
	db.Preload("Localizations").First(&updated, "id = ?", article.ID)
	if updated.Status != models.ArticleStatusPublished {
		t.Errorf("Expected published, got %d", updated.Status)
	}
	if len(updated.Localizations) != 1 || updated.Localizations[0].Title != "New" {
		t.Errorf("Expected localizations replaced, got %+v", updated.Localizations)
	}
}

func TestArticleTenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	siteA := createTestWebsite(t, db, "site-a")
	siteB := createTestWebsite(t, db, "site-b")

	article := models.Article{WebsiteID: siteB.ID}
	db.Create(&article)

	resp := doJSON(t, router, admin, "GET",
		"/api/websites/"+siteA.ID+"/articles/"+article.ID, "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestListArticlesByStatus(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")
	db.Create(&models.Article{WebsiteID: website.ID, Status: models.ArticleStatusDraft})
	db.Create(&models.Article{WebsiteID: website.ID, Status: models.ArticleStatusPublished})

	resp := doJSON(t, router, admin, "GET",
		"/api/websites/"+website.ID+"/articles?status=1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var response struct {
		Data []models.Article `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)
	if len(response.Data) != 1 || response.Data[0].Status != models.ArticleStatusPublished {
		t.Errorf("Expected only the published article, got %d rows", len(response.Data))
	}
}
