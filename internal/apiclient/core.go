package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
)

const (
	coreHousePath      = "/core/house"
	coreUnitPath       = "/core/unit"
	coreConcernsPath   = "/core/concerns"
	coreNewConcernPath = "/core/concern/new"
	coreConcernPathFmt = "/core/concern/%d"
	coreFeedbackPath   = "/core/feedback"

	coreMessagesPathFmt = "/core/%s/messages"
	coreMarkReadPathFmt = "/core/%s/message/mark-read/%d"
)

func (c *Client) House(ctx context.Context) (*models.HousePrivate, error) {
	var house models.HousePrivate
	if err := c.doRequest(ctx, http.MethodGet, coreHousePath, nil, &house, nil); err != nil {
		return nil, fmt.Errorf("House error: %w", err)
	}
	return &house, nil
}

func (c *Client) Unit(ctx context.Context) (*models.Unit, error) {
	var unit models.Unit
	if err := c.doRequest(ctx, http.MethodGet, coreUnitPath, nil, &unit, nil); err != nil {
		return nil, fmt.Errorf("Unit error: %w", err)
	}
	return &unit, nil
}

// ---------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------

// Messages lists the tenant's messages of one kind, decoded into that
// kind's variant.
func (c *Client) Messages(ctx context.Context, kind models.MessageKind, filter dtos.MessageFilter) ([]models.Message, error) {
	q := url.Values{}
	if filter.IsRead != nil {
		q.Set("is_read", strconv.FormatBool(*filter.IsRead))
	}
	if filter.Category != "" {
		q.Set("category", string(filter.Category))
	}
	endpoint := fmt.Sprintf(coreMessagesPathFmt, kind)
	opts := &requestOptions{Query: q}

	var out []models.Message
	switch kind {
	case models.KindPersonal:
		var msgs []models.PersonalMessage
		if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &msgs, opts); err != nil {
			return nil, fmt.Errorf("Messages(%s) error: %w", kind, err)
		}
		for _, m := range msgs {
			out = append(out, m)
		}
	case models.KindGroup:
		var msgs []models.GroupMessage
		if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &msgs, opts); err != nil {
			return nil, fmt.Errorf("Messages(%s) error: %w", kind, err)
		}
		for _, m := range msgs {
			out = append(out, m)
		}
	case models.KindCommunity:
		var msgs []models.CommunityMessage
		if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &msgs, opts); err != nil {
			return nil, fmt.Errorf("Messages(%s) error: %w", kind, err)
		}
		for _, m := range msgs {
			out = append(out, m)
		}
	default:
		return nil, fmt.Errorf("unknown message kind %q", kind)
	}
	return out, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, kind models.MessageKind, id int) (*dtos.ProcessFeedback, error) {
	if _, err := models.ParseMessageKind(string(kind)); err != nil {
		return nil, err
	}
	var fb dtos.ProcessFeedback
	endpoint := fmt.Sprintf(coreMarkReadPathFmt, kind, id)
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, nil, &fb, nil); err != nil {
		return nil, fmt.Errorf("MarkMessageRead(%s, %d) error: %w", kind, id, err)
	}
	return &fb, nil
}

// ---------------------------------------------------------------------
// Concerns
// ---------------------------------------------------------------------

func (c *Client) Concerns(ctx context.Context, status models.ConcernStatus) ([]models.ShallowConcern, error) {
	opts := &requestOptions{}
	if status != "" {
		opts.Query = url.Values{"status": {string(status)}}
	}
	var concerns []models.ShallowConcern
	if err := c.doRequest(ctx, http.MethodGet, coreConcernsPath, nil, &concerns, opts); err != nil {
		return nil, fmt.Errorf("Concerns error: %w", err)
	}
	return concerns, nil
}

func (c *Client) AddConcern(ctx context.Context, req dtos.NewConcernRequest) (*models.Concern, error) {
	var concern models.Concern
	if err := c.doRequest(ctx, http.MethodPost, coreNewConcernPath, req, &concern, nil); err != nil {
		return nil, fmt.Errorf("AddConcern error: %w", err)
	}
	return &concern, nil
}

func (c *Client) UpdateConcern(ctx context.Context, id int, req dtos.UpdateConcernRequest) (*models.Concern, error) {
	var concern models.Concern
	if err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf(coreConcernPathFmt, id), req, &concern, nil); err != nil {
		return nil, fmt.Errorf("UpdateConcern(%d) error: %w", id, err)
	}
	return &concern, nil
}

func (c *Client) Concern(ctx context.Context, id int) (*models.Concern, error) {
	var concern models.Concern
	if err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(coreConcernPathFmt, id), nil, &concern, nil); err != nil {
		return nil, fmt.Errorf("Concern(%d) error: %w", id, err)
	}
	return &concern, nil
}

func (c *Client) DeleteConcern(ctx context.Context, id int) (*dtos.ProcessFeedback, error) {
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf(coreConcernPathFmt, id), nil, &fb, nil); err != nil {
		return nil, fmt.Errorf("DeleteConcern(%d) error: %w", id, err)
	}
	return &fb, nil
}

// ---------------------------------------------------------------------
// Feedback
// ---------------------------------------------------------------------

func (c *Client) Feedback(ctx context.Context) (*models.TenantFeedback, error) {
	var fb models.TenantFeedback
	if err := c.doRequest(ctx, http.MethodGet, coreFeedbackPath, nil, &fb, nil); err != nil {
		return nil, fmt.Errorf("Feedback error: %w", err)
	}
	return &fb, nil
}

func (c *Client) AddFeedback(ctx context.Context, req dtos.TenantFeedbackRequest) (*models.TenantFeedback, error) {
	var fb models.TenantFeedback
	if err := c.doRequest(ctx, http.MethodPost, coreFeedbackPath, req, &fb, nil); err != nil {
		return nil, fmt.Errorf("AddFeedback error: %w", err)
	}
	return &fb, nil
}

func (c *Client) UpdateFeedback(ctx context.Context, req dtos.TenantFeedbackRequest) (*models.TenantFeedback, error) {
	var fb models.TenantFeedback
	if err := c.doRequest(ctx, http.MethodPatch, coreFeedbackPath, req, &fb, nil); err != nil {
		return nil, fmt.Errorf("UpdateFeedback error: %w", err)
	}
	return &fb, nil
}

func (c *Client) DeleteFeedback(ctx context.Context) (*dtos.ProcessFeedback, error) {
	var fb dtos.ProcessFeedback
	if err := c.doRequest(ctx, http.MethodDelete, coreFeedbackPath, nil, &fb, nil); err != nil {
		return nil, fmt.Errorf("DeleteFeedback error: %w", err)
	}
	return &fb, nil
}
