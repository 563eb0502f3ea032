package googlecal

import (
	"context"
	"fmt"

	"dentalcare-backend/config"
	"dentalcare-backend/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewOAuthConfig builds the OAuth2 config used both for the connect flow and
// for minting access tokens from stored refresh tokens.
func NewOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}
}

// Client pushes appointment events into a doctor's primary Google Calendar.
// It implements service.CalendarSyncer.
type Client struct {
	oauth *oauth2.Config
}

func NewClient(oauth *oauth2.Config) *Client {
	return &Client{oauth: oauth}
}

var _ service.CalendarSyncer = (*Client)(nil)

// InsertEvent creates one event on the doctor's primary calendar and returns
// the provider event ID.
func (c *Client) InsertEvent(ctx context.Context, refreshToken string, event service.CalendarEvent) (string, error) {
	source := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return "", fmt.Errorf("create calendar service: %w", err)
	}

	created, err := svc.Events.Insert("primary", &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.StartDateTime,
			TimeZone: event.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndDateTime,
			TimeZone: event.Timezone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	return created.Id, nil
}
