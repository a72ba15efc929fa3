// Package attendance marks presence on a Moodle attendance activity. It loads
// the activity page with an authenticated session, follows the self-marking
// link, and reads the rendered page to confirm the status was recorded.
package attendance

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Safenein/moodle-painkillers/internal/adapters/moodle"
	"github.com/Safenein/moodle-painkillers/internal/domain/checkin"
	apperrors "github.com/Safenein/moodle-painkillers/internal/errors"
	"github.com/Safenein/moodle-painkillers/internal/htmldoc"
	"github.com/Safenein/moodle-painkillers/internal/service"
)

// Markers on the attendance pages. Moodle renders them in the course
// language, French for this institution.
const (
	// DefaultSendLabel is the link text of the self-marking action.
	DefaultSendLabel = "Envoyer le statut de présence"
	// DefaultConfirmationText appears once attendance has been recorded.
	DefaultConfirmationText = "Votre présence à cette session a été enregistrée."
)

// Options configures a Registrar.
type Options struct {
	ViewURL          string       // Required: attendance activity view page
	SendLabel        string       // Optional: self-marking link text, defaults to DefaultSendLabel
	ConfirmationText string       // Optional: recorded-state marker, defaults to DefaultConfirmationText
	AlreadyText      string       // Optional: already-recorded marker, defaults to the confirmation text
	Logger           *slog.Logger // Optional: structured logger, defaults to slog.Default()
}

// Registrar marks attendance through the Moodle attendance activity pages.
type Registrar struct {
	viewURL          string
	sendLabel        string
	confirmationText string
	alreadyText      string
	logger           *slog.Logger
}

var _ service.PresenceRegistrar = (*Registrar)(nil)

// NewRegistrar builds a Registrar.
func NewRegistrar(opts Options) (*Registrar, error) {
	if opts.ViewURL == "" {
		return nil, errors.New("attendance view URL is required")
	}

	sendLabel := opts.SendLabel
	if sendLabel == "" {
		sendLabel = DefaultSendLabel
	}
	confirmation := opts.ConfirmationText
	if confirmation == "" {
		confirmation = DefaultConfirmationText
	}
	already := opts.AlreadyText
	if already == "" {
		already = confirmation
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Registrar{
		viewURL:          opts.ViewURL,
		sendLabel:        sendLabel,
		confirmationText: confirmation,
		alreadyText:      already,
		logger:           logger,
	}, nil
}

// Register loads the attendance page over an authenticated session and marks
// presence if the page offers the self-marking link. A page without the link
// but with the recorded-state marker means presence was already registered,
// which is reported as a benign outcome.
func (r *Registrar) Register(ctx context.Context, sess *moodle.Session) (checkin.Outcome, error) {
	r.logger.DebugContext(ctx, "loading attendance page", "url", r.viewURL)

	resp, err := sess.Get(ctx, r.viewURL)
	if err != nil {
		return "", apperrors.MapNetworkError(err, "the attendance page")
	}
	body, readErr := moodle.ReadBody(resp)
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Transportf("%d Failed to load the attendance page", resp.StatusCode)
	}
	if readErr != nil {
		return "", apperrors.MapNetworkError(readErr, "the attendance page")
	}

	doc, err := htmldoc.Parse(bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "Could not parse the attendance page.")
	}

	href, err := htmldoc.AnchorHref(doc, r.sendLabel)
	if err != nil {
		if apperrors.IsFieldNotFound(err) {
			if strings.Contains(string(body), r.alreadyText) {
				r.logger.InfoContext(ctx, "presence already recorded for this session")
				return checkin.OutcomeAlreadyCheckedIn, nil
			}
			return checkin.OutcomeNotFound, apperrors.CheckInLinkNotFound("Could not find the send status cell.")
		}
		return "", err
	}

	target, err := resolveLink(resp.Request.URL, href)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "The check-in link on the attendance page is malformed.")
	}

	return r.confirm(ctx, sess, target)
}

// confirm follows the self-marking link. The request mutates attendance
// state, so it is sent exactly once; a failure in flight leaves the real
// outcome unknown and the error says so.
func (r *Registrar) confirm(ctx context.Context, sess *moodle.Session, target string) (checkin.Outcome, error) {
	r.logger.DebugContext(ctx, "sending presence status", "url", target)

	resp, err := sess.Get(ctx, target)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeTransport,
			"The check-in request failed in flight. The recorded state is unknown; check the attendance page.")
	}
	body, readErr := moodle.ReadBody(resp)
	if readErr != nil {
		return "", apperrors.Wrap(readErr, apperrors.ErrCodeTransport,
			"The check-in response could not be read. The recorded state is unknown; check the attendance page.")
	}

	if !strings.Contains(string(body), r.confirmationText) {
		return checkin.OutcomeRejected, apperrors.RegistrationRejected("Failed to register presence status.")
	}

	r.logger.InfoContext(ctx, "presence status registered")
	return checkin.OutcomeSuccess, nil
}

// resolveLink resolves href against the page the link was found on, so
// relative links work no matter how Moodle renders them.
func resolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
