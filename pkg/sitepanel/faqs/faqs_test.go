package faqs

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

func TestBulkSaveSingleDropsPlaceholders(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	body := `{"mode":"single","items":[{"question":"Q1","answer":"A1"},{"question":"","answer":""},{"question":"Q2","answer":"A2"}]}`
	resp := doJSON(t, router, admin, "POST", "/api/websites/"+website.ID+"/faqs", body)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", resp.Code, resp.Body.String())
	}

	var faqs []models.Faq
	db.Where("website_id = ?", website.ID).Order("idx").Find(&faqs)
	if len(faqs) != 2 {
		t.Fatalf("Expected 2 FAQs, got %d", len(faqs))
	}
	if faqs[0].Question != "Q1" || faqs[0].Index != 0 {
		t.Errorf("Expected Q1 at index 0, got %s at %d", faqs[0].Question, faqs[0].Index)
	}
	if faqs[1].Question != "Q2" || faqs[1].Index != 1 {
		t.Errorf("Expected Q2 at index 1, got %s at %d", faqs[1].Question, faqs[1].Index)
	}
}

func TestBulkSaveGroupAssignsDefaultNames(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	body := `{"mode":"group","groups":[{"items":[{"question":"Q","answer":"A"}]},{"name":"Billing","items":[{"question":"Q2","answer":"A2"}]}]}`
	resp := doJSON(t, router, admin, "POST", "/api/websites/"+website.ID+"/faqs", body)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", resp.Code, resp.Body.String())
	}

	var groups []models.FaqGroup
	db.Where("website_id = ?", website.ID).Order("idx").Find(&groups)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Group 1" {
		t.Errorf("Expected default name 'Group 1', got %s", groups[0].Name)
	}
	if groups[1].Name != "Billing" || groups[1].Index != 1 {
		t.Errorf("Expected Billing at index 1, got %s at %d", groups[1].Name, groups[1].Index)
	}
}

func TestCreateGroupSeedsPlaceholder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	resp := doJSON(t, router, admin, "POST", "/api/websites/"+website.ID+"/faq-groups", `{}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Name != "Group 1" {
		t.Errorf("Expected default name 'Group 1', got %s", response.Name)
	}
	if len(response.Items) != 1 || response.Items[0].Question != seedItemQuestion {
		t.Errorf("Expected one seeded FAQ, got %+v", response.Items)
	}
}

func TestUpdateItemUngroupResetsGroupIndex(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")
	group := models.FaqGroup{WebsiteID: website.ID, Name: "G", Index: 1}
	db.Create(&group)
	faq := models.Faq{WebsiteID: website.ID, GroupID: &group.ID, Question: "Q", Answer: "A", Index: 2, GroupIndex: 3}
	db.Create(&faq)

	resp := doJSON(t, router, admin, "PUT",
		"/api/websites/"+website.ID+"/faqs/"+faq.ID, `{"group_id":null}`)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.Faq
	db.First(&updated, "id = ?", faq.ID)
	if updated.GroupID != nil || updated.GroupIndex != 0 {
		t.Errorf("Expected ungrouped FAQ with group_index 0, got %+v", updated)
	}
	if updated.Index != 2 {
		t.Errorf("Expected index untouched at 2, got %d", updated.Index)
	}
}

func TestUpdateItemTenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	siteA := createTestWebsite(t, db, "site-a")
	siteB := createTestWebsite(t, db, "site-b")
	faq := models.Faq{WebsiteID: siteB.ID, Question: "Q", Answer: "A"}
	db.Create(&faq)

	resp := doJSON(t, router, admin, "PUT",
		"/api/websites/"+siteA.ID+"/faqs/"+faq.ID, `{"question":"hijacked"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", resp.Code)
	}
}

func TestUpdateDisplayMode(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")

	resp := doJSON(t, router, admin, "PUT",
		"/api/websites/"+website.ID+"/faqs/display-mode", `{"mode":1}`)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.Website
	db.First(&updated, "id = ?", website.ID)
	if updated.FaqDisplayMode != models.DisplayModeGroup {
		t.Errorf("Expected FAQ display mode 1, got %d", updated.FaqDisplayMode)
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)
	website := createTestWebsite(t, db, "site-a")
	group := models.FaqGroup{WebsiteID: website.ID, Name: "G", Index: 1}
	db.Create(&group)
	db.Create(&models.Faq{WebsiteID: website.ID, GroupID: &group.ID, Question: "Q", Answer: "A"})

	resp := doJSON(t, router, admin, "DELETE",
		"/api/websites/"+website.ID+"/faq-groups/"+group.ID, "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", resp.Code)
	}

	var count int64
	db.Model(&models.Faq{}).Where("group_id = ?", group.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected cascade to remove member FAQs, %d left", count)
	}
}
