package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"academy-api/core/config"
	"academy-api/core/logger"
	"academy-api/modules/calendar/entity"
	"academy-api/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleEventsAPI = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// GoogleCalendarAdapter pulls the student's connected Google Calendar into
// the unified view. A student without an active connection is not an error:
// the adapter just contributes nothing.
type GoogleCalendarAdapter struct {
	connections repository.ConnectionRepository
	oauthCfg    *oauth2.Config
	httpClient  *http.Client
	now         func() time.Time
}

func NewGoogleCalendarAdapter(connections repository.ConnectionRepository, apiCfg config.GoogleAPIConfig) *GoogleCalendarAdapter {
	return &GoogleCalendarAdapter{
		connections: connections,
		oauthCfg: &oauth2.Config{
			ClientID:     apiCfg.ClientID,
			ClientSecret: apiCfg.ClientSecret,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

func (a *GoogleCalendarAdapter) SourceType() string {
	return SourceGoogleCalendar
}

func (a *GoogleCalendarAdapter) Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error) {
	conn, err := a.connections.GetActiveConnection(ctx, userID, tenantID, "google")
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, nil
	}

	accessToken, err := a.ensureValidToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	items, err := a.listEvents(ctx, accessToken, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	events := make([]entity.CalendarEvent, 0, len(items))
	for _, item := range items {
		start, end, ok := item.interval()
		if !ok {
			logger.Warn("GoogleCalendarAdapter:Fetch:SkippingUnparseableEvent", "event_id", item.ID)
			continue
		}

		events = append(events, entity.CalendarEvent{
			ID:          item.ID,
			SourceType:  SourceGoogleCalendar,
			Title:       item.Summary,
			Description: item.Description,
			StartAt:     start,
			EndAt:       end,
			Status:      a.mapStatus(item.Status, start, end),
			Metadata: map[string]string{
				"calendar_email": conn.CalendarEmail,
				"html_link":      item.HTMLLink,
			},
			OwnerUserID: userID,
			TenantID:    tenantID,
		})
	}
	return events, nil
}

// ensureValidToken returns a usable access token, refreshing and persisting
// it when within 5 minutes of expiry.
func (a *GoogleCalendarAdapter) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, error) {
	if a.now().Before(conn.TokenExpiresAt.Add(-5 * time.Minute)) {
		return conn.AccessToken, nil
	}

	logger.Info("GoogleCalendarAdapter:RefreshingToken", "user_id", conn.UserID)

	src := a.oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: conn.RefreshToken})
	token, err := src.Token()
	if err != nil {
		logger.Error("GoogleCalendarAdapter:TokenRefresh", "user_id", conn.UserID, "error", err)
		return "", fmt.Errorf("google token refresh: %w", err)
	}

	conn.AccessToken = token.AccessToken
	conn.TokenExpiresAt = token.Expiry
	if err := a.connections.UpdateTokens(ctx, conn); err != nil {
		// Not fatal: the refreshed token still works for this request.
		logger.Error("GoogleCalendarAdapter:UpdateTokens", "user_id", conn.UserID, "error", err)
	}

	return token.AccessToken, nil
}

type googleEvent struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      string `json:"status"` // confirmed | tentative | cancelled
	HTMLLink    string `json:"htmlLink"`
	Start       struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
	} `json:"end"`
}

// interval resolves the event bounds in UTC. All-day events carry only a
// date; they span the whole day.
func (e googleEvent) interval() (time.Time, time.Time, bool) {
	parse := func(dateTime, date string) (time.Time, error) {
		if dateTime != "" {
			return time.Parse(time.RFC3339, dateTime)
		}
		return time.Parse("2006-01-02", date)
	}

	start, err1 := parse(e.Start.DateTime, e.Start.Date)
	end, err2 := parse(e.End.DateTime, e.End.Date)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	return start.UTC(), end.UTC(), true
}

func (a *GoogleCalendarAdapter) listEvents(ctx context.Context, accessToken string, start, end time.Time) ([]googleEvent, error) {
	q := url.Values{}
	q.Set("timeMin", start.UTC().Format(time.RFC3339))
	q.Set("timeMax", end.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("maxResults", "250")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleEventsAPI+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google events API error: status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Items []googleEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

func (a *GoogleCalendarAdapter) mapStatus(status string, start, end time.Time) entity.EventStatus {
	if status == "cancelled" {
		return entity.StatusCancelled
	}
	now := a.now()
	switch {
	case !end.After(now):
		return entity.StatusCompleted
	case !start.After(now):
		return entity.StatusInProgress
	default:
		return entity.StatusScheduled
	}
}
