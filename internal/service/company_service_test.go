package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudharmabg/taskhive/internal/repository"
)

func TestCompanyCreate(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())
	ctx := context.Background()

	company := &repository.Company{Name: "Acme Corp", Code: "ACM"}
	require.NoError(t, svc.Create(ctx, company))
	assert.NotEmpty(t, company.ID)
	assert.Equal(t, "FREE", company.SubscriptionPlan)
	assert.Equal(t, 10, company.MaxUsers)

	// Names and codes are unique across companies
	dup := &repository.Company{Name: "Acme Corp", Code: "ACM2"}
	assert.ErrorIs(t, svc.Create(ctx, dup), ErrConflict)
}

func TestCompanyCreateRejectsMissingFields(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())

	err := svc.Create(context.Background(), &repository.Company{Name: "No Code"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompanyGetUnknown(t *testing.T) {
	svc := NewCompanyService(newFakeCompanyRepo())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
