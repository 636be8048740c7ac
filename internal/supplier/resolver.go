package supplier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/port"
)

// fuzzyThreshold is the minimum token-set similarity for accepting an
// existing validated supplier as a match.
const fuzzyThreshold = 0.80

// ResolutionMethod records how a supplier name was resolved.
type ResolutionMethod string

const (
	ResolvedExact   ResolutionMethod = "exact"
	ResolvedAlias   ResolutionMethod = "alias"
	ResolvedFuzzy   ResolutionMethod = "fuzzy"
	ResolvedCreated ResolutionMethod = "created"
)

// Resolution is the outcome of resolving a raw supplier name.
type Resolution struct {
	Supplier *domain.Supplier
	Method   ResolutionMethod
	Created  bool
}

// Resolver maps free-text supplier names to canonical suppliers within one
// organization. Resolution order: exact normalized match, stored alias,
// fuzzy match against validated suppliers, then creation of a new pending
// supplier.
type Resolver struct {
	suppliers port.SupplierRepository
	aliases   port.SupplierAliasRepository
}

// NewResolver creates a Resolver on top of the supplier repositories.
func NewResolver(suppliers port.SupplierRepository, aliases port.SupplierAliasRepository) *Resolver {
	return &Resolver{suppliers: suppliers, aliases: aliases}
}

// Resolve maps rawName to a supplier in orgID's scope, creating a pending,
// inactive supplier when nothing matches. Suppliers cannot exist outside an
// organization: a nil orgID is a hard error.
func (r *Resolver) Resolve(ctx context.Context, orgID uuid.UUID, rawName string) (*Resolution, error) {
	if orgID == uuid.Nil {
		return nil, domain.ErrMissingOrganization
	}
	key := Normalize(rawName)
	if key == "" {
		return nil, domain.ErrInvalidSupplierName
	}

	// 1. Exact match on the normalized key.
	existing, err := r.suppliers.GetByNormalizedKey(ctx, orgID, key)
	if err == nil {
		return &Resolution{Supplier: existing, Method: ResolvedExact}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrSupplierNotFound) {
		return nil, fmt.Errorf("supplier.Resolve exact: %w", err)
	}

	// 2. Stored alias.
	alias, err := r.aliases.GetByAliasKey(ctx, orgID, key)
	if err == nil {
		matched, err := r.suppliers.GetByID(ctx, orgID, alias.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("supplier.Resolve alias: %w", err)
		}
		return &Resolution{Supplier: matched, Method: ResolvedAlias}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("supplier.Resolve alias lookup: %w", err)
	}

	// 3. Fuzzy match against validated suppliers only; a pending supplier is
	// not trusted enough to absorb new name variants.
	validated, err := r.suppliers.ListValidated(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("supplier.Resolve fuzzy: %w", err)
	}
	var best *domain.Supplier
	bestScore := 0.0
	for i := range validated {
		score := Similarity(key, validated[i].NormalizedKey)
		if score > bestScore {
			bestScore = score
			best = &validated[i]
		}
	}
	if best != nil && bestScore >= fuzzyThreshold {
		// Persist the alias so the next occurrence hits step 2 exactly.
		if err := r.aliases.Upsert(ctx, &domain.SupplierAlias{SupplierID: best.ID, AliasKey: key}); err != nil {
			return nil, fmt.Errorf("supplier.Resolve alias upsert: %w", err)
		}
		return &Resolution{Supplier: best, Method: ResolvedFuzzy}, nil
	}

	// 4. No match: create a pending supplier awaiting human validation.
	code, err := r.generateCode(ctx, orgID, key)
	if err != nil {
		return nil, err
	}
	created, isNew, err := r.suppliers.CreateOrGet(ctx, &domain.Supplier{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		Code:             code,
		DisplayName:      rawName,
		NormalizedKey:    key,
		ValidationStatus: domain.SupplierPending,
		IsActive:         false,
	})
	if err != nil {
		return nil, fmt.Errorf("supplier.Resolve create: %w", err)
	}
	if err := r.aliases.Upsert(ctx, &domain.SupplierAlias{SupplierID: created.ID, AliasKey: key}); err != nil {
		return nil, fmt.Errorf("supplier.Resolve first alias: %w", err)
	}

	method := ResolvedCreated
	if !isNew {
		// Lost the insert race to a concurrent resolution of the same name.
		method = ResolvedExact
	}
	return &Resolution{Supplier: created, Method: method, Created: isNew}, nil
}

func (r *Resolver) generateCode(ctx context.Context, orgID uuid.UUID, key string) (string, error) {
	base := CodeBase(key)
	for n := 1; n <= maxCodeAttempts; n++ {
		code := fmt.Sprintf("%s-%03d", base, n)
		taken, err := r.suppliers.CodeExists(ctx, orgID, code)
		if err != nil {
			return "", fmt.Errorf("supplier.generateCode: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", domain.ErrCodeGenerationExhausted
}
