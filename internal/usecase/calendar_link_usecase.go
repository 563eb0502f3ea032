package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

var (
	ErrInvalidOAuthState    = errors.New("invalid oauth state")
	ErrMissingRefreshToken  = errors.New("authorization did not return a refresh token")
	ErrCalendarExchangeFail = errors.New("failed to exchange authorization code")
)

// CalendarLinkUsecase runs the connect flow that links a doctor to their
// Google Calendar. The state parameter carries the doctor ID through the
// provider round-trip.
type CalendarLinkUsecase interface {
	ConnectURL(ctx context.Context, doctorID uuid.UUID) (string, error)
	HandleCallback(ctx context.Context, state string, code string) error
}

type calendarLinkUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	oauth         *oauth2.Config
	doctorUsecase DoctorUsecase
}

func NewCalendarLinkUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	oauth *oauth2.Config,
	doctorUsecase DoctorUsecase,
) CalendarLinkUsecase {
	return &calendarLinkUsecase{
		db:            db,
		log:           log,
		oauth:         oauth,
		doctorUsecase: doctorUsecase,
	}
}

func (u *calendarLinkUsecase) ConnectURL(ctx context.Context, doctorID uuid.UUID) (string, error) {
	if _, err := u.doctorUsecase.GetDoctor(ctx, doctorID); err != nil {
		return "", err
	}

	// ApprovalForce makes Google hand back a refresh token even when the
	// doctor has authorized before.
	url := u.oauth.AuthCodeURL(doctorID.String(),
		oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return url, nil
}

func (u *calendarLinkUsecase) HandleCallback(ctx context.Context, state string, code string) error {
	doctorID, err := uuid.Parse(state)
	if err != nil {
		return ErrInvalidOAuthState
	}

	token, err := u.oauth.Exchange(ctx, code)
	if err != nil {
		u.log.Warnf("Failed to exchange authorization code: %+v", err)
		return ErrCalendarExchangeFail
	}
	if token.RefreshToken == "" {
		return ErrMissingRefreshToken
	}

	return u.doctorUsecase.StoreCalendarCredential(ctx, doctorID, token.RefreshToken)
}
