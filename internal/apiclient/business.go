package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
)

const (
	businessAboutPath     = "/business/about"
	businessHousesPath    = "/business/houses"
	businessVisitorPath   = "/business/visitor-message"
	businessGalleriesPath = "/business/galleries"
	businessFeedbacksPath = "/business/feedbacks"
	businessFAQsPath      = "/business/faqs"
	businessDocumentPath  = "/business/document"
	businessUtilitiesPath = "/business/app/utilities"

	// The upstream route is spelled "unit-goup".
	businessUnitGroupsPathFmt = "/business/unit-goup/%d"
)

// The public business endpoints need no token, but the original site sent
// one whenever it had it, so these requests do too.

func (c *Client) About(ctx context.Context) (*models.BusinessAbout, error) {
	var about models.BusinessAbout
	if err := c.doRequest(ctx, http.MethodGet, businessAboutPath, nil, &about, nil); err != nil {
		return nil, fmt.Errorf("About error: %w", err)
	}
	return &about, nil
}

func (c *Client) Houses(ctx context.Context) ([]models.House, error) {
	var houses []models.House
	if err := c.doRequest(ctx, http.MethodGet, businessHousesPath, nil, &houses, nil); err != nil {
		return nil, fmt.Errorf("Houses error: %w", err)
	}
	return houses, nil
}

func (c *Client) UnitGroups(ctx context.Context, houseID int) ([]models.UnitGroup, error) {
	var groups []models.UnitGroup
	endpoint := fmt.Sprintf(businessUnitGroupsPathFmt, houseID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &groups, nil); err != nil {
		return nil, fmt.Errorf("UnitGroups(%d) error: %w", houseID, err)
	}
	return groups, nil
}

func (c *Client) SendVisitorMessage(ctx context.Context, msg dtos.NewVisitorMessageRequest) (*dtos.ProcessFeedback, error) {
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodPost, businessVisitorPath, msg, &fb, nil); err != nil {
		return nil, fmt.Errorf("SendVisitorMessage error: %w", err)
	}
	return &fb, nil
}

func (c *Client) Galleries(ctx context.Context) ([]models.Gallery, error) {
	var galleries []models.Gallery
	if err := c.doRequest(ctx, http.MethodGet, businessGalleriesPath, nil, &galleries, nil); err != nil {
		return nil, fmt.Errorf("Galleries error: %w", err)
	}
	return galleries, nil
}

// Testimonials lists published customer feedback.
func (c *Client) Testimonials(ctx context.Context) ([]models.UserFeedback, error) {
	var feedbacks []models.UserFeedback
	if err := c.doRequest(ctx, http.MethodGet, businessFeedbacksPath, nil, &feedbacks, nil); err != nil {
		return nil, fmt.Errorf("Testimonials error: %w", err)
	}
	return feedbacks, nil
}

func (c *Client) FAQs(ctx context.Context) ([]models.FAQ, error) {
	var faqs []models.FAQ
	if err := c.doRequest(ctx, http.MethodGet, businessFAQsPath, nil, &faqs, nil); err != nil {
		return nil, fmt.Errorf("FAQs error: %w", err)
	}
	return faqs, nil
}

func (c *Client) Document(ctx context.Context, name models.DocumentName) (*models.Document, error) {
	q := url.Values{"name": {string(name)}}
	var doc models.Document
	if err := c.doRequest(ctx, http.MethodGet, businessDocumentPath, nil, &doc, &requestOptions{Query: q}); err != nil {
		return nil, fmt.Errorf("Document error: %w", err)
	}
	return &doc, nil
}

// AppUtilities lists published utility values; an empty name lists all.
func (c *Client) AppUtilities(ctx context.Context, name models.UtilityName) ([]models.AppUtility, error) {
	opts := &requestOptions{}
	if name != "" {
		opts.Query = url.Values{"name": {string(name)}}
	}
	var utilities []models.AppUtility
	if err := c.doRequest(ctx, http.MethodGet, businessUtilitiesPath, nil, &utilities, opts); err != nil {
		return nil, fmt.Errorf("AppUtilities error: %w", err)
	}
	return utilities, nil
}
