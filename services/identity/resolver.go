// File: services/identity/resolver.go
package identity

import (
	"context"

	identityRepo "randevio/database/repository/identity"
	"randevio/models"
)

// Resolver correlates channel-bound records to one real-world identity via
// normalized phone numbers.
type Resolver interface {
	ResolveWaUser(ctx context.Context, businessID string, waUser *models.WaUser) (models.Identity, error)
	ResolveCustomer(ctx context.Context, businessID string, customer *models.Customer) (models.Identity, error)
}

// DefaultResolver implements Resolver over the identity repository.
type DefaultResolver struct {
	Repo identityRepo.IdentityRepository
}

func (r *DefaultResolver) ResolveWaUser(ctx context.Context, businessID string, waUser *models.WaUser) (models.Identity, error) {
	id := models.Identity{WaUserID: waUser.ID}

	phone := PhoneFromWaID(waUser.WaID)
	if phone == "" {
		// Unrecognizable number: the chat identity stands alone.
		return id, nil
	}
	id.PhoneE164 = phone

	customers, err := r.Repo.FindCustomersByPhone(ctx, businessID, phone)
	if err != nil {
		return models.Identity{}, err
	}
	for _, c := range customers {
		id.CustomerIDs = append(id.CustomerIDs, c.ID)
	}
	return id, nil
}

func (r *DefaultResolver) ResolveCustomer(ctx context.Context, businessID string, customer *models.Customer) (models.Identity, error) {
	id := models.Identity{PhoneE164: customer.PhoneE164, CustomerIDs: []string{customer.ID}}
	if customer.PhoneE164 == "" {
		return id, nil
	}

	// Other web records sharing the phone count as the same person.
	customers, err := r.Repo.FindCustomersByPhone(ctx, businessID, customer.PhoneE164)
	if err != nil {
		return models.Identity{}, err
	}
	for _, c := range customers {
		if c.ID != customer.ID {
			id.CustomerIDs = append(id.CustomerIDs, c.ID)
		}
	}

	waUser, err := r.Repo.GetWaUserByWaID(ctx, businessID, WaIDFromPhone(customer.PhoneE164))
	if err != nil {
		return models.Identity{}, err
	}
	if waUser != nil {
		id.WaUserID = waUser.ID
	}
	return id, nil
}
