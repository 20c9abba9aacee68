package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aquaflow/ticketing/internal/domain"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

func newCatalogFixture() (*CatalogService, *fakeCategoryRepo, *fakePriceRepo) {
	categories := newFakeCategoryRepo()
	prices := newFakePriceRepo()
	svc := NewCatalogService(CatalogDependencies{
		CategoryRepo: categories,
		PriceRepo:    prices,
	})
	return svc, categories, prices
}

func testAdmin() *domain.User {
	return &domain.User{ID: uuid.NewString(), Name: "Admin", Role: domain.RoleAdmin, IsActive: true}
}

func TestSetPriceCreatesThenUpdatesInPlace(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	admin := testAdmin()

	category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Umum"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	first, err := svc.SetPrice(context.Background(), admin, category.ID, 50000)
	if err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	if first.Price != 50000 || first.CategoryName != "Umum" {
		t.Fatalf("first price = %+v", first)
	}

	second, err := svc.SetPrice(context.Background(), admin, category.ID, 60000)
	if err != nil {
		t.Fatalf("SetPrice update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("price id changed on update: %q -> %q", first.ID, second.ID)
	}
	if second.Price != 60000 {
		t.Fatalf("updated price = %v, want 60000", second.Price)
	}

	listed, err := svc.ListPrices(context.Background())
	if err != nil {
		t.Fatalf("ListPrices: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected a single active price per category, got %d", len(listed))
	}
}

func TestSetPriceRejectsNegativeAmount(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Umum"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err = svc.SetPrice(context.Background(), testAdmin(), category.ID, -1)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestSetPriceUnknownCategoryIsNotFound(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, err := svc.SetPrice(context.Background(), testAdmin(), uuid.NewString(), 50000)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateCategoryDoesNotTouchIssuedTickets(t *testing.T) {
	categories := newFakeCategoryRepo()
	prices := newFakePriceRepo()
	tickets := newFakeTicketRepo()
	catalog := NewCatalogService(CatalogDependencies{CategoryRepo: categories, PriceRepo: prices})
	issuance := NewIssuanceService(IssuanceDependencies{
		TicketRepo:   tickets,
		CategoryRepo: categories,
		PriceRepo:    prices,
	})

	category, err := catalog.CreateCategory(context.Background(), CategoryInput{Name: "Umum"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := catalog.SetPrice(context.Background(), testAdmin(), category.ID, 50000); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}

	result, err := issuance.IssueBatch(context.Background(), testReceptionist(), []BatchItemInput{
		{CategoryID: category.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("IssueBatch: %v", err)
	}

	if _, err := catalog.UpdateCategory(context.Background(), category.ID, CategoryInput{Name: "Renamed"}); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if _, err := catalog.SetPrice(context.Background(), testAdmin(), category.ID, 99000); err != nil {
		t.Fatalf("SetPrice after rename: %v", err)
	}

	stored, err := tickets.GetByID(context.Background(), result.Tickets[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.CategoryName != "Umum" || stored.Price != 50000 {
		t.Fatalf("issued ticket snapshot changed: %+v", stored)
	}
}
