// Package transport posts protobuf-encoded requests to a VSS server over
// HTTP and decodes the responses. It performs no retries and holds no
// credentials of its own; retry and re-auth policy belong to the caller,
// which passes the bearer token per call.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/vssclient/internal/logging"
	"github.com/dmitrijs2005/vssclient/internal/proto"
)

// Endpoint paths under the server base URL. Every call is an HTTP POST with
// an application/octet-stream body.
const (
	EndpointGetObject       = "getObject"
	EndpointPutObjects      = "putObjects"
	EndpointDeleteObject    = "deleteObject"
	EndpointListKeyVersions = "listKeyVersions"
	EndpointListObjects     = "listObjects"
)

// StatusError is a non-2xx server reply. Code and Message are filled from the
// protobuf ErrorResponse body when the server sent one.
type StatusError struct {
	HTTPStatus int
	Code       proto.ErrorCode
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d (%s): %s", e.HTTPStatus, e.Code, e.Message)
	}
	return fmt.Sprintf("server returned status %d (%s)", e.HTTPStatus, e.Code)
}

// DecodeError is a 2xx reply whose body does not parse as the endpoint's
// response message.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func requestsTotal(endpoint string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`vss_requests_total{endpoint=%q}`, endpoint))
}

func errorsTotal(endpoint string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`vss_request_errors_total{endpoint=%q}`, endpoint))
}

// Client speaks the VSS wire protocol against one server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// New builds a Client for the server at baseURL. A nil httpClient falls back
// to http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger logging.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// GetObject fetches a single item. A missing key surfaces as a StatusError
// carrying the server's no-such-key code, not as a nil response.
func (c *Client) GetObject(ctx context.Context, req *proto.GetObjectRequest, token string) (*proto.GetObjectResponse, error) {
	body, err := c.post(ctx, EndpointGetObject, req.Marshal(), token)
	if err != nil {
		return nil, err
	}
	resp, err := proto.UnmarshalGetObjectResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: EndpointGetObject, Err: err}
	}
	return resp, nil
}

// PutObjects writes and deletes the request's items in one atomic
// transaction.
func (c *Client) PutObjects(ctx context.Context, req *proto.PutObjectRequest, token string) (*proto.PutObjectResponse, error) {
	body, err := c.post(ctx, EndpointPutObjects, req.Marshal(), token)
	if err != nil {
		return nil, err
	}
	resp, err := proto.UnmarshalPutObjectResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: EndpointPutObjects, Err: err}
	}
	return resp, nil
}

// DeleteObject removes a single item.
func (c *Client) DeleteObject(ctx context.Context, req *proto.DeleteObjectRequest, token string) (*proto.DeleteObjectResponse, error) {
	body, err := c.post(ctx, EndpointDeleteObject, req.Marshal(), token)
	if err != nil {
		return nil, err
	}
	resp, err := proto.UnmarshalDeleteObjectResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: EndpointDeleteObject, Err: err}
	}
	return resp, nil
}

// ListKeyVersions returns one page of keys and versions, without values.
func (c *Client) ListKeyVersions(ctx context.Context, req *proto.ListKeyVersionsRequest, token string) (*proto.ListKeyVersionsResponse, error) {
	body, err := c.post(ctx, EndpointListKeyVersions, req.Marshal(), token)
	if err != nil {
		return nil, err
	}
	resp, err := proto.UnmarshalListKeyVersionsResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: EndpointListKeyVersions, Err: err}
	}
	return resp, nil
}

// ListObjects returns one page of full items, values included.
func (c *Client) ListObjects(ctx context.Context, req *proto.ListObjectsRequest, token string) (*proto.ListObjectsResponse, error) {
	body, err := c.post(ctx, EndpointListObjects, req.Marshal(), token)
	if err != nil {
		return nil, err
	}
	resp, err := proto.UnmarshalListObjectsResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: EndpointListObjects, Err: err}
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte, token string) ([]byte, error) {
	requestsTotal(endpoint).Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal(endpoint).Inc()
		return nil, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal(endpoint).Inc()
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		errorsTotal(endpoint).Inc()
		se := &StatusError{HTTPStatus: resp.StatusCode}
		if er, err := proto.UnmarshalErrorResponse(data); err == nil {
			se.Code = er.ErrorCode
			se.Message = er.Message
		}
		c.logger.Debug(ctx, "vss call failed", "endpoint", endpoint, "status", resp.StatusCode, "code", se.Code)
		return nil, se
	}

	c.logger.Debug(ctx, "vss call completed", "endpoint", endpoint, "status", resp.StatusCode, "bytes", len(data))
	return data, nil
}
