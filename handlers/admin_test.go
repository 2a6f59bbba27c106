package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

type stubAdminService struct {
	lastFilter models.UserFilter
	lastActor  models.Principal
	lastUserID string
	lastStatus string
	statusErr  error
}

func (s *stubAdminService) ListUsers(_ context.Context, f models.UserFilter) (*models.UserPage, error) {
	s.lastFilter = f
	return &models.UserPage{Users: []models.User{}}, nil
}

func (s *stubAdminService) SetUserStatus(_ context.Context, actor models.Principal, userID, status string) (*models.User, error) {
	s.lastActor, s.lastUserID, s.lastStatus = actor, userID, status
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &models.User{ID: userID, Status: models.UserStatus(status)}, nil
}

type stubCategoryService struct {
	categories []models.Category
	createErr  error
	deleted    string
}

func (s *stubCategoryService) ListCategories(context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryService) CreateCategory(_ context.Context, req models.CategoryRequest) (*models.Category, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Category{ID: "c1", Name: req.Name}, nil
}

func (s *stubCategoryService) UpdateCategory(_ context.Context, id string, upd models.CategoryUpdate) (*models.Category, error) {
	return &models.Category{ID: id, Name: *upd.Name}, nil
}

func (s *stubCategoryService) DeleteCategory(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

var adminPrincipal = models.Principal{UserID: "admin-1", Role: models.RoleAdmin}

func newAdminRouter(admin *stubAdminService, categories *stubCategoryService) *gin.Engine {
	r := gin.New()
	r.Use(withPrincipal(adminPrincipal))
	ah := NewAdminHandler(admin)
	ch := NewCategoryHandler(categories)
	r.GET("/admin/users", ah.ListUsersHandler)
	r.PATCH("/admin/users/:id/status", ah.SetUserStatusHandler)
	r.GET("/categories", ch.ListCategoriesHandler)
	r.POST("/admin/categories", ch.CreateCategoryHandler)
	r.PATCH("/admin/categories/:id", ch.UpdateCategoryHandler)
	r.DELETE("/admin/categories/:id", ch.DeleteCategoryHandler)
	return r
}

func TestListUsersBindsQuery(t *testing.T) {
	svc := &stubAdminService{}
	rec := send(newAdminRouter(svc, &stubCategoryService{}), http.MethodGet, "/admin/users?role=tutor&status=BANNED&page=2&limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastFilter.Role != "tutor" || svc.lastFilter.Status != "BANNED" || svc.lastFilter.Page != 2 || svc.lastFilter.Limit != 10 {
		t.Fatalf("unexpected filter %+v", svc.lastFilter)
	}

	rec = send(newAdminRouter(svc, &stubCategoryService{}), http.MethodGet, "/admin/users?limit=500", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized limit, got %d", rec.Code)
	}
}

func TestSetUserStatusHandler(t *testing.T) {
	svc := &stubAdminService{}
	r := newAdminRouter(svc, &stubCategoryService{})

	rec := send(r, http.MethodPatch, "/admin/users/u-9/status", gin.H{"status": "BANNED"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastUserID != "u-9" || svc.lastStatus != "BANNED" || svc.lastActor != adminPrincipal {
		t.Fatalf("unexpected call %+v", svc)
	}

	rec = send(r, http.MethodPatch, "/admin/users/u-9/status", gin.H{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without status, got %d", rec.Code)
	}

	svc.statusErr = utils.Validation("admins cannot change their own status")
	rec = send(r, http.MethodPatch, "/admin/users/admin-1/status", gin.H{"status": "BANNED"})
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Error != utils.KindValidation {
		t.Fatalf("expected ValidationError, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryHandlers(t *testing.T) {
	categories := &stubCategoryService{}
	r := newAdminRouter(&stubAdminService{}, categories)

	rec := send(r, http.MethodGet, "/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list struct {
		Categories []models.Category `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || list.Categories == nil {
		t.Fatalf("expected an empty categories array, got %s", rec.Body.String())
	}

	rec = send(r, http.MethodPost, "/admin/categories", gin.H{"name": "Physics"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = send(r, http.MethodPost, "/admin/categories", gin.H{"name": "P"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short name, got %d", rec.Code)
	}

	categories.createErr = utils.Conflict("category %q already exists", "Physics")
	rec = send(r, http.MethodPost, "/admin/categories", gin.H{"name": "Physics"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = send(r, http.MethodPatch, "/admin/categories/c1", gin.H{"name": "Maths"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = send(r, http.MethodDelete, "/admin/categories/c1", nil)
	if rec.Code != http.StatusOK || categories.deleted != "c1" {
		t.Fatalf("expected delete of c1, got %d (%q)", rec.Code, categories.deleted)
	}
}
