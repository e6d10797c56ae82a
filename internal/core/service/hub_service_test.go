package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

func newTestHubService() (*HubService, *stubHubRepo, *stubCityRepo) {
	hubs := newStubHubRepo()
	cities := newStubCityRepo()
	return NewHubService(hubs, cities, zerolog.Nop()), hubs, cities
}

func TestCreateHub_Success(t *testing.T) {
	svc, _, cities := newTestHubService()
	city := cities.seed("Indore")

	hub, err := svc.CreateHub(context.Background(), ports.CreateHubInput{
		CityID:              city.ID,
		HubName:             " Vijay Nagar ",
		ServiceablePincodes: []string{"452010", " 452010", "", "452011"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hub.HubName != "Vijay Nagar" || hub.CityName != "Indore" {
		t.Errorf("unexpected hub %+v", hub)
	}
	if len(hub.ServiceablePincodes) != 2 {
		t.Errorf("pincodes should be trimmed and deduplicated, got %v", hub.ServiceablePincodes)
	}
	if hub.Status != domain.StatusActive {
		t.Errorf("status should default to active, got %q", hub.Status)
	}
}

func TestCreateHub_RequiresExistingCity(t *testing.T) {
	svc, _, _ := newTestHubService()

	_, err := svc.CreateHub(context.Background(), ports.CreateHubInput{CityID: "nope", HubName: "Central"})
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}

	_, err = svc.CreateHub(context.Background(), ports.CreateHubInput{HubName: "Central"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateHub_DuplicateNameScopedToCity(t *testing.T) {
	svc, _, cities := newTestHubService()
	indore := cities.seed("Indore")
	bhopal := cities.seed("Bhopal")
	ctx := context.Background()

	if _, err := svc.CreateHub(ctx, ports.CreateHubInput{CityID: indore.ID, HubName: "Central"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateHub(ctx, ports.CreateHubInput{CityID: indore.ID, HubName: "CENTRAL"}); !errors.Is(err, domain.ErrHubExists) {
		t.Errorf("expected ErrHubExists, got %v", err)
	}
	if _, err := svc.CreateHub(ctx, ports.CreateHubInput{CityID: bhopal.ID, HubName: "Central"}); err != nil {
		t.Errorf("same name in another city should be allowed, got %v", err)
	}
}

func TestUpdateHub_MoveToCityWithSameName(t *testing.T) {
	svc, _, cities := newTestHubService()
	indore := cities.seed("Indore")
	bhopal := cities.seed("Bhopal")
	ctx := context.Background()

	_, _ = svc.CreateHub(ctx, ports.CreateHubInput{CityID: bhopal.ID, HubName: "Central"})
	hub, _ := svc.CreateHub(ctx, ports.CreateHubInput{CityID: indore.ID, HubName: "Central"})

	if _, err := svc.UpdateHub(ctx, hub.ID, ports.UpdateHubInput{CityID: &bhopal.ID}); !errors.Is(err, domain.ErrHubExists) {
		t.Fatalf("expected ErrHubExists, got %v", err)
	}
}

func TestUpdateHub_PartialFields(t *testing.T) {
	svc, _, cities := newTestHubService()
	city := cities.seed("Indore")
	ctx := context.Background()

	hub, _ := svc.CreateHub(ctx, ports.CreateHubInput{CityID: city.ID, HubName: "Central", HubArea: "MG Road", ServiceablePincodes: []string{"452001"}})

	got, err := svc.UpdateHub(ctx, hub.ID, ports.UpdateHubInput{Status: strPtr("inactive")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusInactive {
		t.Errorf("status not updated: %q", got.Status)
	}
	if got.HubArea != "MG Road" || len(got.ServiceablePincodes) != 1 {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.CityName != "Indore" {
		t.Errorf("city name should be resolved, got %q", got.CityName)
	}

	got, err = svc.UpdateHub(ctx, hub.ID, ports.UpdateHubInput{ServiceablePincodes: []string{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.ServiceablePincodes) != 0 {
		t.Errorf("an empty list should clear pincodes, got %v", got.ServiceablePincodes)
	}
}

func TestListHubs_ResolvesCityNames(t *testing.T) {
	svc, _, cities := newTestHubService()
	indore := cities.seed("Indore")
	bhopal := cities.seed("Bhopal")
	ctx := context.Background()

	_, _ = svc.CreateHub(ctx, ports.CreateHubInput{CityID: indore.ID, HubName: "Palasia"})
	_, _ = svc.CreateHub(ctx, ports.CreateHubInput{CityID: bhopal.ID, HubName: "Arera"})

	hubs, err := svc.ListHubs(ctx, ports.HubFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hubs) != 2 {
		t.Fatalf("expected 2 hubs, got %d", len(hubs))
	}
	if hubs[0].HubName != "Arera" || hubs[0].CityName != "Bhopal" {
		t.Errorf("unexpected first hub %+v", hubs[0])
	}
	if hubs[1].CityName != "Indore" {
		t.Errorf("unexpected second hub %+v", hubs[1])
	}

	filtered, _ := svc.ListHubs(ctx, ports.HubFilter{CityID: indore.ID})
	if len(filtered) != 1 || filtered[0].HubName != "Palasia" {
		t.Errorf("city filter not applied: %+v", filtered)
	}
}

func TestDeleteHub(t *testing.T) {
	svc, hubs, cities := newTestHubService()
	city := cities.seed("Indore")
	hub, _ := svc.CreateHub(context.Background(), ports.CreateHubInput{CityID: city.ID, HubName: "Central"})

	if err := svc.DeleteHub(context.Background(), hub.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hubs.byID) != 0 {
		t.Error("hub should be removed")
	}
	if err := svc.DeleteHub(context.Background(), hub.ID); !errors.Is(err, domain.ErrHubNotFound) {
		t.Errorf("expected ErrHubNotFound, got %v", err)
	}
}
