package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubCityRepo struct {
	byID    map[string]*domain.City
	nextID  int
	listErr error
}

func newStubCityRepo() *stubCityRepo {
	return &stubCityRepo{byID: make(map[string]*domain.City)}
}

func (r *stubCityRepo) seed(name string) *domain.City {
	c := &domain.City{CityName: name, Status: domain.StatusActive}
	_ = r.Create(context.Background(), c)
	return c
}

// List mirrors the Mongo filters: exact status, case-insensitive substring, sorted by name.
func (r *stubCityRepo) List(_ context.Context, f ports.CityFilter) ([]*domain.City, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.City
	for _, c := range r.byID {
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.CityName), strings.ToLower(f.Search)) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CityName < out[j].CityName })
	return out, nil
}

func (r *stubCityRepo) FindByID(_ context.Context, id string) (*domain.City, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCityRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.City, error) {
	var out []*domain.City
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCityRepo) FindByName(_ context.Context, name, excludeID string) (*domain.City, error) {
	for id, c := range r.byID {
		if id != excludeID && strings.EqualFold(c.CityName, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubCityRepo) Create(_ context.Context, c *domain.City) error {
	r.nextID++
	c.ID = fmt.Sprintf("city-%d", r.nextID)
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCityRepo) Update(_ context.Context, c *domain.City) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCityNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCityRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCityNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubHubRepo struct {
	byID   map[string]*domain.Hub
	nextID int
}

func newStubHubRepo() *stubHubRepo {
	return &stubHubRepo{byID: make(map[string]*domain.Hub)}
}

func (r *stubHubRepo) List(_ context.Context, f ports.HubFilter) ([]*domain.Hub, error) {
	var out []*domain.Hub
	for _, h := range r.byID {
		if f.CityID != "" && h.CityID != f.CityID {
			continue
		}
		if f.Status != "" && string(h.Status) != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(h.HubName), strings.ToLower(f.Search)) {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HubName < out[j].HubName })
	return out, nil
}

func (r *stubHubRepo) FindByID(_ context.Context, id string) (*domain.Hub, error) {
	h, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrHubNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *stubHubRepo) FindByName(_ context.Context, cityID, name, excludeID string) (*domain.Hub, error) {
	for id, h := range r.byID {
		if id != excludeID && h.CityID == cityID && strings.EqualFold(h.HubName, name) {
			clone := *h
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubHubRepo) CountByCity(_ context.Context, cityID string) (int64, error) {
	var n int64
	for _, h := range r.byID {
		if h.CityID == cityID {
			n++
		}
	}
	return n, nil
}

func (r *stubHubRepo) Create(_ context.Context, h *domain.Hub) error {
	r.nextID++
	h.ID = fmt.Sprintf("hub-%d", r.nextID)
	clone := *h
	r.byID[h.ID] = &clone
	return nil
}

func (r *stubHubRepo) Update(_ context.Context, h *domain.Hub) error {
	if _, ok := r.byID[h.ID]; !ok {
		return domain.ErrHubNotFound
	}
	clone := *h
	r.byID[h.ID] = &clone
	return nil
}

func (r *stubHubRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// CityService
// ---------------------------------------------------------------------------

func TestCreateCity_Success(t *testing.T) {
	svc := NewCityService(newStubCityRepo(), newStubHubRepo(), zerolog.Nop())

	city, err := svc.CreateCity(context.Background(), ports.CreateCityInput{CityName: "  Indore ", CreatedBy: "admin-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if city.ID == "" {
		t.Error("expected id to be assigned")
	}
	if city.CityName != "Indore" {
		t.Errorf("name should be trimmed, got %q", city.CityName)
	}
	if city.Status != domain.StatusActive {
		t.Errorf("status should default to active, got %q", city.Status)
	}
	if city.CreatedBy != "admin-1" {
		t.Errorf("unexpected createdBy %q", city.CreatedBy)
	}
}

func TestCreateCity_DuplicateIgnoresCase(t *testing.T) {
	repo := newStubCityRepo()
	repo.seed("Indore")
	svc := NewCityService(repo, newStubHubRepo(), zerolog.Nop())

	_, err := svc.CreateCity(context.Background(), ports.CreateCityInput{CityName: "INDORE"})
	if !errors.Is(err, domain.ErrCityExists) {
		t.Fatalf("expected ErrCityExists, got %v", err)
	}
}

func TestCreateCity_Validation(t *testing.T) {
	svc := NewCityService(newStubCityRepo(), newStubHubRepo(), zerolog.Nop())

	cases := []ports.CreateCityInput{
		{CityName: "   "},
		{CityName: "Bhopal", Status: "closed"},
	}
	for _, in := range cases {
		if _, err := svc.CreateCity(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestUpdateCity_RenameToOwnNameIsAllowed(t *testing.T) {
	repo := newStubCityRepo()
	c := repo.seed("Indore")
	svc := NewCityService(repo, newStubHubRepo(), zerolog.Nop())

	got, err := svc.UpdateCity(context.Background(), c.ID, ports.UpdateCityInput{CityName: strPtr("indore"), Status: strPtr("inactive")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CityName != "indore" || got.Status != domain.StatusInactive {
		t.Errorf("unexpected city %+v", got)
	}
}

func TestUpdateCity_DuplicateAndNotFound(t *testing.T) {
	repo := newStubCityRepo()
	repo.seed("Indore")
	bhopal := repo.seed("Bhopal")
	svc := NewCityService(repo, newStubHubRepo(), zerolog.Nop())

	if _, err := svc.UpdateCity(context.Background(), bhopal.ID, ports.UpdateCityInput{CityName: strPtr("Indore")}); !errors.Is(err, domain.ErrCityExists) {
		t.Errorf("expected ErrCityExists, got %v", err)
	}
	if _, err := svc.UpdateCity(context.Background(), "missing", ports.UpdateCityInput{}); !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
}

func TestDeleteCity_RefusesWithLinkedHubs(t *testing.T) {
	cities := newStubCityRepo()
	hubs := newStubHubRepo()
	c := cities.seed("Indore")
	_ = hubs.Create(context.Background(), &domain.Hub{CityID: c.ID, HubName: "Vijay Nagar"})
	svc := NewCityService(cities, hubs, zerolog.Nop())

	err := svc.DeleteCity(context.Background(), c.ID)
	if !errors.Is(err, domain.ErrCityHasHubs) {
		t.Fatalf("expected ErrCityHasHubs, got %v", err)
	}
	if _, ok := cities.byID[c.ID]; !ok {
		t.Error("city must not be deleted")
	}
}

func TestDeleteCity_Success(t *testing.T) {
	cities := newStubCityRepo()
	c := cities.seed("Indore")
	svc := NewCityService(cities, newStubHubRepo(), zerolog.Nop())

	if err := svc.DeleteCity(context.Background(), c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteCity(context.Background(), c.ID); !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("second delete: expected ErrCityNotFound, got %v", err)
	}
}

func TestListCities_FiltersAndSorts(t *testing.T) {
	repo := newStubCityRepo()
	repo.seed("Pune")
	repo.seed("Indore")
	inactive := repo.seed("Indianapolis")
	repo.byID[inactive.ID].Status = domain.StatusInactive
	svc := NewCityService(repo, newStubHubRepo(), zerolog.Nop())

	got, err := svc.ListCities(context.Background(), ports.CityFilter{Search: " ind ", Status: "active"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].CityName != "Indore" {
		t.Errorf("unexpected result %+v", got)
	}

	all, _ := svc.ListCities(context.Background(), ports.CityFilter{})
	if len(all) != 3 || all[0].CityName != "Indianapolis" {
		t.Errorf("expected 3 cities sorted by name, got %d", len(all))
	}
}
