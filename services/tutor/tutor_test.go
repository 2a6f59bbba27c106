package tutor

import (
	"context"
	"io"
	"math"
	"reflect"
	"testing"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"
)

type memTutorRepo struct {
	profiles map[string]models.TutorProfile
	lookups  int
}

func (r *memTutorRepo) Create(_ context.Context, p *models.TutorProfile) error {
	r.profiles[p.ID] = *p
	return nil
}

func (r *memTutorRepo) GetByID(_ context.Context, id string) (*models.TutorProfile, error) {
	r.lookups++
	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *memTutorRepo) Update(_ context.Context, p *models.TutorProfile) (*models.TutorProfile, error) {
	r.profiles[p.ID] = *p
	return p, nil
}

func (r *memTutorRepo) Search(context.Context, repository.TutorSearchCriteria) ([]repository.TutorSearchResult, int64, error) {
	return nil, 0, nil
}

func (r *memTutorRepo) UpdateRating(context.Context, string, models.RatingSummary) (bool, error) {
	return true, nil
}

func (r *memTutorRepo) ClearCategory(context.Context, string) (int64, error) { return 0, nil }

type memUserRepo struct {
	users map[string]models.User
}

func (r *memUserRepo) Create(context.Context, *models.User) error { return nil }

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByIDs(context.Context, []string) ([]models.User, error) { return nil, nil }

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, patch repository.ProfilePatch) (*models.User, error) {
	u := r.users[id]
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	r.users[id] = u
	return &u, nil
}

func (r *memUserRepo) SetAvatar(_ context.Context, id, url string) error {
	u := r.users[id]
	u.AvatarURL = url
	r.users[id] = u
	return nil
}

func (r *memUserRepo) SetStatus(context.Context, string, models.UserStatus) (*models.User, error) {
	return nil, nil
}

func (r *memUserRepo) List(context.Context, repository.UserSearchCriteria) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (r *memUserRepo) Delete(context.Context, string) error { return nil }

type memSlotRepo struct {
	slots []models.AvailabilitySlot
}

func (r *memSlotRepo) Create(context.Context, *models.AvailabilitySlot) error { return nil }

func (r *memSlotRepo) GetByID(context.Context, string) (*models.AvailabilitySlot, error) {
	return nil, repository.ErrNotFound
}

func (r *memSlotRepo) Update(_ context.Context, s *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	return s, nil
}

func (r *memSlotRepo) Delete(context.Context, string, string) error { return nil }

func (r *memSlotRepo) ListByTutor(_ context.Context, tutorID string) ([]models.AvailabilitySlot, error) {
	var out []models.AvailabilitySlot
	for _, s := range r.slots {
		if s.TutorID == tutorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListByTutors(context.Context, []string) ([]models.AvailabilitySlot, error) {
	return r.slots, nil
}

func (r *memSlotRepo) ReplaceForTutor(context.Context, string, []models.AvailabilitySlot) error {
	return nil
}

type memCategoryRepo struct {
	categories map[string]models.Category
}

func (r *memCategoryRepo) Create(context.Context, *models.Category) error { return nil }

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *memCategoryRepo) List(context.Context) ([]models.Category, error) { return nil, nil }

func (r *memCategoryRepo) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	return c, nil
}

func (r *memCategoryRepo) Delete(context.Context, string) error { return nil }

type memCache struct {
	cards map[string]models.TutorCard
}

func (c *memCache) Get(_ context.Context, id string) (*models.TutorCard, error) {
	card, ok := c.cards[id]
	if !ok {
		return nil, nil
	}
	return &card, nil
}

func (c *memCache) Set(_ context.Context, card *models.TutorCard) error {
	c.cards[card.ID] = *card
	return nil
}

func (c *memCache) Invalidate(_ context.Context, id string) error {
	delete(c.cards, id)
	return nil
}

type stubStorage struct {
	folder, publicID string
}

func (s *stubStorage) UploadImage(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	s.folder, s.publicID = folder, publicID
	return "https://res.cloudinary.com/demo/" + publicID + ".png", nil
}

func (s *stubStorage) DeleteFile(context.Context, string) error { return nil }

type fixture struct {
	svc    *DefaultTutorService
	tutors *memTutorRepo
	users  *memUserRepo
	cache  *memCache
}

func newFixture() *fixture {
	tutors := &memTutorRepo{profiles: map[string]models.TutorProfile{
		"t1":     {ID: "t1", HourlyRate: 40, IsAvailable: true},
		"banned": {ID: "banned", HourlyRate: 40},
	}}
	users := &memUserRepo{users: map[string]models.User{
		"t1":     {ID: "t1", Name: "Amina", Role: models.RoleTutor, Status: models.UserActive},
		"banned": {ID: "banned", Name: "Bo", Role: models.RoleTutor, Status: models.UserBanned},
	}}
	slots := &memSlotRepo{slots: []models.AvailabilitySlot{
		{ID: "s2", TutorID: "t1", DayOfWeek: 3, StartTime: "09:00", EndTime: "10:00"},
		{ID: "s1", TutorID: "t1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}}
	categories := &memCategoryRepo{categories: map[string]models.Category{"c1": {ID: "c1", Name: "Mathematics"}}}
	c := &memCache{cards: map[string]models.TutorCard{}}
	svc := NewTutorService(tutors, users, slots, categories, c, nil)
	return &fixture{svc: svc, tutors: tutors, users: users, cache: c}
}

func TestGetTutorAssemblesAndCachesCard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	card, err := f.svc.GetTutor(ctx, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Name != "Amina" || len(card.Availability) != 2 || card.Availability[0].ID != "s1" {
		t.Fatalf("unexpected card %+v", card)
	}
	if _, ok := f.cache.cards["t1"]; !ok {
		t.Fatalf("card should be cached")
	}

	lookups := f.tutors.lookups
	if _, err := f.svc.GetTutor(ctx, "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.tutors.lookups != lookups {
		t.Fatalf("second read should be served from cache")
	}
}

func TestGetTutorHidesBannedAndMissing(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.GetTutor(context.Background(), "banned"); !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected NotFound for banned tutor, got %v", err)
	}
	if _, err := f.svc.GetTutor(context.Background(), "ghost"); !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.cache.cards["t1"] = models.TutorCard{ID: "t1"}

	rate := 55.0
	subjects := []string{" Algebra ", "algebra", "", "Calculus"}
	category := "c1"
	name := "Amina K."
	card, err := f.svc.UpdateProfile(ctx, "t1", models.TutorProfileUpdate{
		HourlyRate: &rate, Subjects: &subjects, CategoryID: &category, Name: &name,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Profile.HourlyRate != 55 || card.Name != "Amina K." || card.Category == nil || card.Category.Name != "Mathematics" {
		t.Fatalf("unexpected card %+v", card)
	}
	if !reflect.DeepEqual(card.Profile.Subjects, []string{"Algebra", "Calculus"}) {
		t.Fatalf("unexpected subjects %v", card.Profile.Subjects)
	}
	if _, ok := f.cache.cards["t1"]; ok {
		t.Fatalf("cached card should be invalidated")
	}

	unknown := "c404"
	if _, err := f.svc.UpdateProfile(ctx, "t1", models.TutorProfileUpdate{CategoryID: &unknown}); !utils.IsKind(err, utils.KindValidation) {
		t.Fatalf("expected ValidationError for unknown category, got %v", err)
	}
}

func TestUploadAvatar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.UploadAvatar(ctx, "t1", nil); !utils.IsKind(err, utils.KindPreconditionFailed) {
		t.Fatalf("expected PreconditionFailed without storage, got %v", err)
	}

	store := &stubStorage{}
	f.svc.Storage = store
	card, err := f.svc.UploadAvatar(ctx, "t1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.publicID != "t1" || store.folder != avatarFolder {
		t.Fatalf("unexpected upload target %+v", store)
	}
	if card.AvatarURL == "" {
		t.Fatalf("avatar url should be set on the card")
	}
}

func TestNormalizeFilter(t *testing.T) {
	c, err := normalizeFilter(models.TutorFilter{Limit: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Page != 1 || c.Limit != MaxPageSize || c.SortBy != "rating" || !c.Descending {
		t.Fatalf("unexpected defaults %+v", c)
	}

	c, _ = normalizeFilter(models.TutorFilter{SortBy: "price", SortOrder: "asc"})
	if c.Limit != DefaultPageSize || c.Descending {
		t.Fatalf("unexpected criteria %+v", c)
	}

	c, _ = normalizeFilter(models.TutorFilter{Page: math.MaxInt})
	if c.Page != models.MaxPage {
		t.Fatalf("expected page clamped to %d, got %d", models.MaxPage, c.Page)
	}

	lo, hi := 50.0, 10.0
	if _, err := normalizeFilter(models.TutorFilter{MinPrice: &lo, MaxPrice: &hi}); !utils.IsKind(err, utils.KindValidation) {
		t.Fatalf("expected ValidationError for inverted price range, got %v", err)
	}
}
