package domain

import (
	"context"
	"encoding/json"
)

// Identity is what the user service knows about an account.
type Identity struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

// IdentityLookup resolves a user id to display names.
type IdentityLookup interface {
	LookupIdentity(ctx context.Context, userID uint) (*Identity, error)
}

// InquirySubmitter forwards a buyer question to the Q&A service.
type InquirySubmitter interface {
	SubmitInquiry(ctx context.Context, fields map[string]interface{}) error
}

// SellerAddressLister returns the seller's addresses as received.
type SellerAddressLister interface {
	ListSellerAddresses(ctx context.Context, userID uint) (json.RawMessage, error)
}

// KeywordHistory keeps the most recent distinct search keywords.
type KeywordHistory interface {
	Record(ctx context.Context, keyword string) error
	Recent(ctx context.Context) ([]string, error)
}
