package lnurlauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/vssclient/internal/logging"
)

// ErrAuthenticationFailed reports a rejected challenge or verification, or a
// token the server refuses to accept.
var ErrAuthenticationFailed = errors.New("authentication failed")

// State describes where the session currently is in its lifecycle.
type State int

const (
	// StateUnauthenticated means no token is held.
	StateUnauthenticated State = iota
	// StateChallenging means a challenge round-trip is in flight.
	StateChallenging
	// StateAuthenticated means a token is held and attached to requests.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateChallenging:
		return "challenging"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Auth server responses are tiny; anything larger is not ours to buffer.
const maxAuthBody = 8 << 10

var (
	renewalsTotal      = metrics.GetOrCreateCounter(`vss_auth_renewals_total`)
	renewalErrorsTotal = metrics.GetOrCreateCounter(`vss_auth_renewal_errors_total`)
)

// Provider runs the LNURL-auth flow against one auth server and caches the
// resulting bearer token until it expires or is invalidated.
//
// Concurrent token requests while no valid token is held collapse into a
// single challenge round-trip; every waiter shares its outcome.
type Provider struct {
	parent     *hdkeychain.ExtendedKey
	authURL    string
	httpClient *http.Client
	logger     logging.Logger

	group singleflight.Group

	mu     sync.Mutex
	state  State
	token  string
	expiry time.Time
}

// NewProvider builds a Provider signing with keys derived under parent.
func NewProvider(parent *hdkeychain.ExtendedKey, authServerURL string, httpClient *http.Client, logger logging.Logger) (*Provider, error) {
	if parent == nil {
		return nil, errors.New("nil auth parent key")
	}
	if _, err := url.ParseRequestURI(authServerURL); err != nil {
		return nil, fmt.Errorf("invalid auth server url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Provider{
		parent:     parent,
		authURL:    authServerURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Token returns the cached bearer token, running the challenge flow first if
// none is held or the held one has expired. Concurrent callers share one
// renewal. A caller whose ctx is cancelled stops waiting, but the shared
// renewal keeps running and installs its token for the next caller.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if token, ok := p.current(); ok {
		return token, nil
	}

	ch := p.group.DoChan("renew", func() (any, error) {
		return p.renew(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Invalidate drops the cached token if it still is oldToken. The comparison
// keeps a slow failure report from discarding a newer token installed by a
// renewal that raced it.
func (p *Provider) Invalidate(oldToken string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if oldToken != "" && p.token == oldToken {
		p.token = ""
		p.expiry = time.Time{}
		p.state = StateUnauthenticated
	}
}

// State reports the current session state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// current returns the held token unless it is absent or expired. A zero
// expiry means the token carried no exp claim and is used until rejected.
func (p *Provider) current() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == "" {
		return "", false
	}
	if !p.expiry.IsZero() && !time.Now().Before(p.expiry) {
		return "", false
	}
	return p.token, true
}

func (p *Provider) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Provider) renew(ctx context.Context) (string, error) {
	p.setState(StateChallenging)
	renewalsTotal.Inc()

	token, expiry, err := p.challenge(ctx)
	if err != nil {
		renewalErrorsTotal.Inc()
		p.setState(StateUnauthenticated)
		p.logger.Warn(ctx, "auth renewal failed", "error", err)
		return "", err
	}

	p.mu.Lock()
	p.token = token
	p.expiry = expiry
	p.state = StateAuthenticated
	p.mu.Unlock()

	p.logger.Info(ctx, "auth session renewed", "expiry", expiry)
	return token, nil
}

// challenge runs one full LNURL-auth round-trip and returns the bearer token
// with its expiry.
func (p *Provider) challenge(ctx context.Context) (string, time.Time, error) {
	lnurl, err := p.fetchLnurl(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	callback, k1, err := parseChallenge(lnurl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	key, err := linkingKey(p.parent, callback.Hostname())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	token, err := p.submitProof(ctx, signedCallback(callback, k1, key))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, tokenExpiry(token), nil
}

func (p *Provider) fetchLnurl(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.authURL, nil)
	if err != nil {
		return "", fmt.Errorf("build challenge request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request challenge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: challenge endpoint returned status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAuthBody))
	if err != nil {
		return "", fmt.Errorf("read challenge: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

type callbackResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

func (p *Provider) submitProof(ctx context.Context, signedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return "", fmt.Errorf("build verification request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit proof: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: verification endpoint returned status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	var cr callbackResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAuthBody)).Decode(&cr); err != nil {
		return "", fmt.Errorf("%w: malformed verification response: %v", ErrAuthenticationFailed, err)
	}
	if cr.Status != "OK" {
		return "", fmt.Errorf("%w: challenge rejected: %s", ErrAuthenticationFailed, cr.Reason)
	}
	if cr.Token == "" {
		return "", fmt.Errorf("%w: verification response carries no token", ErrAuthenticationFailed)
	}
	return cr.Token, nil
}

// tokenExpiry reads the exp claim without verifying the signature. The client
// is not the token's verifier; it only needs to know when to renew. A token
// that is not a JWT, or carries no exp, is kept until the server rejects it.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
