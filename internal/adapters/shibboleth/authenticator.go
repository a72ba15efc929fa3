// Package shibboleth signs a session into Moodle through the institution's
// Shibboleth SSO. The flow imitates what a browser does on the login pages:
// fetch the login page, select the identity provider, post the credentials to
// the IdP form, then hand the SAML assertion back to Moodle's consumer.
package shibboleth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Safenein/moodle-painkillers/internal/adapters/moodle"
	"github.com/Safenein/moodle-painkillers/internal/domain/checkin"
	apperrors "github.com/Safenein/moodle-painkillers/internal/errors"
	"github.com/Safenein/moodle-painkillers/internal/htmldoc"
	"github.com/Safenein/moodle-painkillers/internal/service"
)

// Hidden form fields the IdP exchange depends on.
const (
	executionField    = "execution"
	relayStateField   = "RelayState"
	samlResponseField = "SAMLResponse"
)

const defaultRetryDelay = 500 * time.Millisecond

// Endpoints identifies the fixed URLs and the IdP selector of one institution.
type Endpoints struct {
	LoginURL    string // Moodle's Shibboleth login initiation endpoint
	IdPEntityID string // identity provider entity ID posted to the login endpoint
	ConsumerURL string // Moodle's SAML consumer endpoint
}

// Options configures an Authenticator.
type Options struct {
	Endpoints  Endpoints
	Logger     *slog.Logger  // Optional: structured logger, defaults to slog.Default()
	RetryLimit int           // Optional: transient-failure retries for the initial GET
	RetryDelay time.Duration // Optional: base delay between retries, defaults to 500ms
}

// Authenticator drives the Shibboleth login exchange over a session.
// Only the initial login page GET is ever retried; every later step either
// carries credentials or mutates IdP-side login state.
type Authenticator struct {
	endpoints  Endpoints
	logger     *slog.Logger
	retryLimit int
	retryDelay time.Duration
}

var _ service.Authenticator = (*Authenticator)(nil)

// NewAuthenticator builds an Authenticator. Callers should pass validated endpoints.
func NewAuthenticator(opts Options) (*Authenticator, error) {
	if opts.Endpoints.LoginURL == "" {
		return nil, errors.New("login URL is required")
	}
	if opts.Endpoints.IdPEntityID == "" {
		return nil, errors.New("identity provider entity ID is required")
	}
	if opts.Endpoints.ConsumerURL == "" {
		return nil, errors.New("SAML consumer URL is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retries := opts.RetryLimit
	if retries < 0 {
		retries = 0
	}

	delay := opts.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	return &Authenticator{
		endpoints:  opts.Endpoints,
		logger:     logger,
		retryLimit: retries,
		retryDelay: delay,
	}, nil
}

// Authenticate signs creds into Moodle over sess. On success the session's
// cookie jar holds the authenticated Moodle cookies and protected pages can
// be fetched directly. The error, if any, is classified and carries a message
// fit for the end user.
func (a *Authenticator) Authenticate(ctx context.Context, sess *moodle.Session, creds checkin.Credentials) error {
	if !creds.Resolved() {
		return apperrors.MissingCredentials("Missing Moodle credentials. Provide them via command line arguments or environment variables.")
	}

	a.logger.InfoContext(ctx, "starting moodle authentication", "credentials", creds)

	if err := a.fetchLoginPage(ctx, sess); err != nil {
		return err
	}

	execution, submitURL, err := a.selectIdentityProvider(ctx, sess)
	if err != nil {
		return err
	}

	relayState, samlResponse, err := a.submitCredentials(ctx, sess, submitURL, execution, creds)
	if err != nil {
		return err
	}

	if err := a.deliverAssertion(ctx, sess, relayState, samlResponse); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "authentication completed")
	return nil
}

// fetchLoginPage primes the session with Moodle's anonymous cookies. The GET
// is idempotent, so transient network failures are retried with a linear
// backoff; an unexpected status is final.
func (a *Authenticator) fetchLoginPage(ctx context.Context, sess *moodle.Session) error {
	attempts := a.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err := a.tryLoginPage(ctx, sess)
		if err == nil {
			return nil
		}
		lastErr = err
		if !apperrors.IsTransient(err) || attempt >= attempts-1 {
			break
		}

		a.logger.WarnContext(ctx, "login page fetch failed, retrying",
			"attempt", attempt+1,
			"error", err)
		delay := time.Duration(attempt+1) * a.retryDelay
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return apperrors.MapNetworkError(ctx.Err(), "the Moodle login page")
		case <-timer.C:
		}
	}
	return lastErr
}

func (a *Authenticator) tryLoginPage(ctx context.Context, sess *moodle.Session) error {
	a.logger.DebugContext(ctx, "requesting shibboleth login page", "url", a.endpoints.LoginURL)

	resp, err := sess.Get(ctx, a.endpoints.LoginURL)
	if err != nil {
		return apperrors.MapNetworkError(err, "the Moodle login page")
	}
	_, readErr := moodle.ReadBody(resp)
	if resp.StatusCode != http.StatusOK {
		return apperrors.Transportf("%d Failed to get login page", resp.StatusCode)
	}
	if readErr != nil {
		return apperrors.MapNetworkError(readErr, "the Moodle login page")
	}
	return nil
}

// selectIdentityProvider posts the IdP selector and returns the execution
// token from the rendered login form together with the URL the credentials
// must be posted to. That URL is the final redirect target with its query
// stripped, which is where the IdP expects the form back.
func (a *Authenticator) selectIdentityProvider(ctx context.Context, sess *moodle.Session) (execution, submitURL string, err error) {
	a.logger.DebugContext(ctx, "posting identity provider selection", "idp", a.endpoints.IdPEntityID)

	form := url.Values{"idp": {a.endpoints.IdPEntityID}}
	resp, err := sess.PostForm(ctx, a.endpoints.LoginURL, form)
	if err != nil {
		return "", "", apperrors.MapNetworkError(err, "the identity provider login page")
	}
	body, readErr := moodle.ReadBody(resp)
	if resp.StatusCode != http.StatusOK {
		return "", "", apperrors.Transportf("%d Failed to authenticate on login page", resp.StatusCode)
	}
	if readErr != nil {
		return "", "", apperrors.MapNetworkError(readErr, "the identity provider login page")
	}

	doc, err := htmldoc.Parse(bytes.NewReader(body))
	if err != nil {
		return "", "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not parse the identity provider login page.")
	}

	execution, err = htmldoc.HiddenInputValue(doc, executionField)
	if err != nil {
		return "", "", err
	}

	return execution, baseURL(resp.Request.URL), nil
}

// submitCredentials posts the login form to the IdP. The response is not
// status-checked: a failed login still renders a page, and the absent SAML
// fields below are the real signal that the credentials were refused.
func (a *Authenticator) submitCredentials(ctx context.Context, sess *moodle.Session, submitURL, execution string, creds checkin.Credentials) (relayState, samlResponse string, err error) {
	a.logger.DebugContext(ctx, "submitting credentials to identity provider", "url", submitURL)

	form := url.Values{
		"username":    {creds.Username},
		"password":    {creds.Password},
		"execution":   {execution},
		"_eventId":    {"submit"},
		"geolocation": {""},
	}
	resp, err := sess.PostForm(ctx, submitURL, form)
	if err != nil {
		return "", "", apperrors.MapNetworkError(err, "the identity provider")
	}
	body, readErr := moodle.ReadBody(resp)
	if readErr != nil {
		return "", "", apperrors.MapNetworkError(readErr, "the identity provider")
	}

	doc, err := htmldoc.Parse(bytes.NewReader(body))
	if err != nil {
		return "", "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not parse the identity provider response.")
	}

	relayState, rsErr := htmldoc.HiddenInputValue(doc, relayStateField)
	samlResponse, srErr := htmldoc.HiddenInputValue(doc, samlResponseField)
	if rsErr != nil || srErr != nil {
		a.logger.ErrorContext(ctx, "failed to extract SAML response parameters",
			"error", errors.Join(rsErr, srErr))
		return "", "", apperrors.SAMLAssertionMissing("Failed to extract SAML response parameters. Are the credentials correct?")
	}

	return relayState, samlResponse, nil
}

// deliverAssertion hands the SAML assertion to Moodle's consumer endpoint,
// which sets the authenticated session cookies.
func (a *Authenticator) deliverAssertion(ctx context.Context, sess *moodle.Session, relayState, samlResponse string) error {
	a.logger.DebugContext(ctx, "posting SAML response to service provider", "url", a.endpoints.ConsumerURL)

	form := url.Values{
		relayStateField:   {relayState},
		samlResponseField: {samlResponse},
	}
	resp, err := sess.PostForm(ctx, a.endpoints.ConsumerURL, form)
	if err != nil {
		return apperrors.MapNetworkError(err, "the Moodle SAML consumer")
	}
	_, readErr := moodle.ReadBody(resp)
	if resp.StatusCode != http.StatusOK {
		return apperrors.Transportf("%d Failed to complete the Moodle sign-in", resp.StatusCode)
	}
	if readErr != nil {
		return apperrors.MapNetworkError(readErr, "the Moodle SAML consumer")
	}
	return nil
}

// baseURL renders u without its query and fragment, the form action the IdP
// login form posts back to.
func baseURL(u *url.URL) string {
	b := *u
	b.RawQuery = ""
	b.Fragment = ""
	b.RawFragment = ""
	return b.String()
}
