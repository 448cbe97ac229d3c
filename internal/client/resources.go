package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/libshub/libs-client/internal/http"
	"github.com/libshub/libs-client/pkg/libs"
)

// List implements libs.Client.List.
func (c *Client) List(ctx context.Context, resource string, params *libs.ListParams) (json.RawMessage, error) {
	if err := c.admit(); err != nil {
		return nil, err
	}

	desc, err := c.describe(resource, libs.OpList)
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = libs.NewListParams()
	}

	resp, err := c.httpClient.Get(ctx, desc.Path, params.ToValues())
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Get implements libs.Client.Get.
func (c *Client) Get(ctx context.Context, resource, id string, opts *libs.GetOptions) (json.RawMessage, error) {
	if err := c.admit(); err != nil {
		return nil, err
	}

	desc, err := c.describe(resource, libs.OpGet)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &libs.GetOptions{}
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:    nethttp.MethodGet,
		Path:      desc.Path + "/" + id,
		SkipCache: opts.SkipCache,
	})
	if err != nil {
		return nil, err
	}

	if opts.Short || c.shortProjection {
		return shortProjection(resp.Body)
	}

	return resp.Body, nil
}

// Create implements libs.Client.Create.
func (c *Client) Create(ctx context.Context, resource string, payload *libs.ResourcePayload) (json.RawMessage, error) {
	if err := c.admit(); err != nil {
		return nil, err
	}

	desc, err := c.describe(resource, libs.OpCreate)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, desc.Path, payload)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Update implements libs.Client.Update. Term-managed resources are merged
// with their current full representation first, so a partial payload cannot
// silently delete terms the caller did not touch.
func (c *Client) Update(ctx context.Context, resource, id string, payload *libs.ResourcePayload) (json.RawMessage, error) {
	if err := c.admit(); err != nil {
		return nil, err
	}

	desc, err := c.describe(resource, libs.OpUpdate)
	if err != nil {
		return nil, err
	}

	if desc.TermManaged {
		merged, err := c.mergeForUpdate(ctx, desc, id, payload)
		if err != nil {
			return nil, err
		}

		payload = merged
	}

	resp, err := c.httpClient.Put(ctx, desc.Path+"/"+id, payload)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Delete implements libs.Client.Delete.
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	if err := c.admit(); err != nil {
		return err
	}

	desc, err := c.describe(resource, libs.OpDelete)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, desc.Path+"/"+id)

	return err
}

// FindTerms implements libs.Client.FindTerms.
func (c *Client) FindTerms(ctx context.Context, resource, value string) (json.RawMessage, error) {
	if err := c.admit(); err != nil {
		return nil, err
	}

	desc, err := c.describe(resource, libs.OpFindTerms)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("value", value)

	resp, err := c.httpClient.Get(ctx, desc.Path+"/terms/find", query)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// describe resolves a resource name or alias and verifies the operation is
// available on it.
func (c *Client) describe(resource string, op libs.Operation) (*libs.ResourceDescriptor, error) {
	desc, err := libs.Describe(resource)
	if err != nil {
		return nil, err
	}

	if !desc.Supports(op) {
		return nil, &libs.APIError{
			StatusCode: 400,
			Message:    fmt.Sprintf("Resource %q does not support %s", desc.CanonicalName, op),
			Context:    map[string]any{"resource": desc.CanonicalName, "operation": string(op)},
		}
	}

	return desc, nil
}

// mergeForUpdate fetches the current full representation (bypassing the
// cache) and merges the partial payload into it. A failed pre-read
// propagates unchanged.
func (c *Client) mergeForUpdate(ctx context.Context, desc *libs.ResourceDescriptor, id string, payload *libs.ResourcePayload) (*libs.ResourcePayload, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:    nethttp.MethodGet,
		Path:      desc.Path + "/" + id,
		SkipCache: true,
	})
	if err != nil {
		return nil, err
	}

	var existing libs.ResourcePayload

	err = json.Unmarshal(resp.Body, &existing)
	if err != nil {
		return nil, libs.Classify(fmt.Errorf("parsing %s %s for merge: %w", desc.CanonicalName, id, err), nil)
	}

	return libs.MergeForUpdate(&existing, payload), nil
}

// shortProjection reduces a full representation to its identity and name
// fields. For term-managed resources without a plain name, the main term's
// value stands in.
func shortProjection(body []byte) (json.RawMessage, error) {
	var full map[string]any

	err := json.Unmarshal(body, &full)
	if err != nil {
		return nil, libs.Classify(fmt.Errorf("parsing response for projection: %w", err), nil)
	}

	short := make(map[string]any, 2)

	if id, ok := full["id"]; ok {
		short["id"] = id
	}

	if name, ok := full["name"]; ok {
		short["name"] = name
	} else if mainTerm, ok := full["mainTerm"].(map[string]any); ok {
		if value, ok := mainTerm["value"]; ok {
			short["name"] = value
		}
	}

	projected, err := json.Marshal(short)
	if err != nil {
		return nil, libs.Classify(err, nil)
	}

	return projected, nil
}
