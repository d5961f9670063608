package client

import (
	"context"
	"net/http"

	"github.com/tair/catalog-service/internal/config"
	"github.com/tair/catalog-service/internal/product/domain"
)

// InquiryClient posts buyer questions to the Q&A service. The response body is ignored.
type InquiryClient struct {
	remote *RemoteClient
}

func NewInquiryClient(remote *RemoteClient) *InquiryClient {
	return &InquiryClient{remote: remote}
}

func (c *InquiryClient) SubmitInquiry(ctx context.Context, fields map[string]interface{}) error {
	_, err := c.remote.Do(ctx, config.EndpointQnA, http.MethodPost, "/oneToOnes", fields)
	return err
}

var _ domain.InquirySubmitter = (*InquiryClient)(nil)
