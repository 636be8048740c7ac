package supplier_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain"
	"facturo/internal/supplier"
	"facturo/mocks"
)

func newResolver() (*supplier.Resolver, *mocks.MockSupplierRepo, *mocks.MockSupplierAliasRepo) {
	suppliers := new(mocks.MockSupplierRepo)
	aliases := new(mocks.MockSupplierAliasRepo)
	return supplier.NewResolver(suppliers, aliases), suppliers, aliases
}

func TestResolver_MissingOrganizationIsHardError(t *testing.T) {
	r, _, _ := newResolver()

	res, err := r.Resolve(context.Background(), uuid.Nil, "Dupont")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrMissingOrganization)
}

func TestResolver_NameNormalizingToNothingIsRejected(t *testing.T) {
	r, _, _ := newResolver()

	res, err := r.Resolve(context.Background(), uuid.New(), "SARL SAS")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInvalidSupplierName)
}

func TestResolver_ExactMatch(t *testing.T) {
	r, suppliers, _ := newResolver()
	orgID := uuid.New()
	existing := &domain.Supplier{ID: uuid.New(), OrganizationID: orgID, NormalizedKey: "dupont"}

	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "dupont").Return(existing, nil)

	res, err := r.Resolve(context.Background(), orgID, "SARL Dupont")

	require.NoError(t, err)
	assert.Equal(t, existing, res.Supplier)
	assert.Equal(t, supplier.ResolvedExact, res.Method)
	assert.False(t, res.Created)
	suppliers.AssertExpectations(t)
}

func TestResolver_AliasMatch(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()
	supplierID := uuid.New()
	matched := &domain.Supplier{ID: supplierID, OrganizationID: orgID, NormalizedKey: "dupont freres"}

	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "dupont").Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "dupont").
		Return(&domain.SupplierAlias{SupplierID: supplierID, AliasKey: "dupont"}, nil)
	suppliers.On("GetByID", mock.Anything, orgID, supplierID).Return(matched, nil)

	res, err := r.Resolve(context.Background(), orgID, "Dupont")

	require.NoError(t, err)
	assert.Equal(t, matched, res.Supplier)
	assert.Equal(t, supplier.ResolvedAlias, res.Method)
}

func TestResolver_FuzzyMatchPersistsAlias(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()
	validated := domain.Supplier{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		NormalizedKey:    "dupont freres negoce vins lyon",
		ValidationStatus: domain.SupplierValidated,
	}

	// "dupont freres negoce vins paris" vs the validated key: 0.80 exactly.
	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "dupont freres negoce vins paris").
		Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "dupont freres negoce vins paris").
		Return(nil, domain.ErrNotFound)
	suppliers.On("ListValidated", mock.Anything, orgID).Return([]domain.Supplier{validated}, nil)
	aliases.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.SupplierAlias) bool {
		return a.SupplierID == validated.ID && a.AliasKey == "dupont freres negoce vins paris"
	})).Return(nil)

	res, err := r.Resolve(context.Background(), orgID, "Dupont Frères Négoce Vins Paris")

	require.NoError(t, err)
	assert.Equal(t, validated.ID, res.Supplier.ID)
	assert.Equal(t, supplier.ResolvedFuzzy, res.Method)
	aliases.AssertExpectations(t)
}

func TestResolver_BelowThresholdCreatesPendingSupplier(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()
	validated := domain.Supplier{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		NormalizedKey:    "dupont freres negoce spiritueux",
		ValidationStatus: domain.SupplierValidated,
	}

	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "dupont freres negoce vins").
		Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "dupont freres negoce vins").
		Return(nil, domain.ErrNotFound)
	suppliers.On("ListValidated", mock.Anything, orgID).Return([]domain.Supplier{validated}, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, "DUPONT-001").Return(false, nil)
	suppliers.On("CreateOrGet", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
		return s.OrganizationID == orgID &&
			s.Code == "DUPONT-001" &&
			s.NormalizedKey == "dupont freres negoce vins" &&
			s.ValidationStatus == domain.SupplierPending &&
			!s.IsActive
	})).Return(&domain.Supplier{ID: uuid.New(), OrganizationID: orgID, Code: "DUPONT-001"}, true, nil)
	aliases.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SupplierAlias")).Return(nil)

	res, err := r.Resolve(context.Background(), orgID, "Dupont Frères Négoce Vins")

	require.NoError(t, err)
	assert.Equal(t, supplier.ResolvedCreated, res.Method)
	assert.True(t, res.Created)
	suppliers.AssertExpectations(t)
}

func TestResolver_CreationRaceReturnsExistingRow(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()
	winner := &domain.Supplier{ID: uuid.New(), OrganizationID: orgID, NormalizedKey: "martin"}

	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "martin").Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "martin").Return(nil, domain.ErrNotFound)
	suppliers.On("ListValidated", mock.Anything, orgID).Return([]domain.Supplier{}, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, "MARTIN-001").Return(false, nil)
	suppliers.On("CreateOrGet", mock.Anything, mock.AnythingOfType("*domain.Supplier")).Return(winner, false, nil)
	aliases.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SupplierAlias")).Return(nil)

	res, err := r.Resolve(context.Background(), orgID, "Martin")

	require.NoError(t, err)
	assert.Equal(t, winner, res.Supplier)
	assert.False(t, res.Created)
}

func TestResolver_CodeSequenceProbing(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()

	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "martin").Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "martin").Return(nil, domain.ErrNotFound)
	suppliers.On("ListValidated", mock.Anything, orgID).Return([]domain.Supplier{}, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, "MARTIN-001").Return(true, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, "MARTIN-002").Return(true, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, "MARTIN-003").Return(false, nil)
	suppliers.On("CreateOrGet", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
		return s.Code == "MARTIN-003"
	})).Return(&domain.Supplier{ID: uuid.New(), Code: "MARTIN-003"}, true, nil)
	aliases.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SupplierAlias")).Return(nil)

	_, err := r.Resolve(context.Background(), orgID, "Martin")

	require.NoError(t, err)
	suppliers.AssertExpectations(t)
}

func TestResolver_CodeGenerationExhausted(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()

	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "martin").Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "martin").Return(nil, domain.ErrNotFound)
	suppliers.On("ListValidated", mock.Anything, orgID).Return([]domain.Supplier{}, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, mock.AnythingOfType("string")).Return(true, nil)

	res, err := r.Resolve(context.Background(), orgID, "Martin")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrCodeGenerationExhausted)
}

func TestResolver_PendingSuppliersNotFuzzyMatched(t *testing.T) {
	r, suppliers, aliases := newResolver()
	orgID := uuid.New()

	// ListValidated is the only candidate source; the repository contract
	// excludes pending suppliers, so an empty list means creation.
	suppliers.On("GetByNormalizedKey", mock.Anything, orgID, "dupont freres negoce vins paris").
		Return(nil, domain.ErrSupplierNotFound)
	aliases.On("GetByAliasKey", mock.Anything, orgID, "dupont freres negoce vins paris").
		Return(nil, domain.ErrNotFound)
	suppliers.On("ListValidated", mock.Anything, orgID).Return([]domain.Supplier{}, nil)
	suppliers.On("CodeExists", mock.Anything, orgID, "DUPONT-001").Return(false, nil)
	suppliers.On("CreateOrGet", mock.Anything, mock.AnythingOfType("*domain.Supplier")).
		Return(&domain.Supplier{ID: uuid.New()}, true, nil)
	aliases.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.SupplierAlias")).Return(nil)

	res, err := r.Resolve(context.Background(), orgID, "Dupont Frères Négoce Vins Paris")

	require.NoError(t, err)
	assert.Equal(t, supplier.ResolvedCreated, res.Method)
}
