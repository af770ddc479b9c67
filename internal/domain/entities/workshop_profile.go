package entities

// PlanTier is the workshop subscription level. Quote requests are unlimited on every tier.
type PlanTier string

const (
	PlanTierFree PlanTier = "free"
	PlanTierPro  PlanTier = "pro"
)

// WorkshopProfile is the read-only view of a workshop consumed by the quote flow.
// It is owned by the workshop management side of the product.
type WorkshopProfile struct {
	ID               string   `json:"id"`
	OwnerAccountID   string   `json:"owner_account_id"`
	Name             string   `json:"name"`
	AcceptsQuotes    bool     `json:"accepts_quotes"`
	IsPubliclyListed bool     `json:"is_publicly_listed"`
	PlanTier         PlanTier `json:"plan_tier"`
}

// Actor is the authenticated caller as read from the session.
type Actor struct {
	AccountID string
	Name      string
	Email     string
	Phone     string
}

func (a Actor) Contact() MotoristContact {
	return MotoristContact{Name: a.Name, Email: a.Email, Phone: a.Phone}
}
