// Package youtube looks up video metadata through the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// Sentinel errors.
var (
	// ErrVideoNotFound indicates the API returned no items for the video ID.
	ErrVideoNotFound = errors.New("video not found")
	// ErrInvalidLink indicates no video ID could be extracted from a link.
	ErrInvalidLink = errors.New("invalid video link")
)

// LookupError wraps a failed metadata lookup for one video.
type LookupError struct {
	VideoID string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.VideoID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// VideoDetails holds the metadata fields merged into a record.
type VideoDetails struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID string
	// DurationMinutes is the video length in minutes, seconds rounded to
	// the nearest 0.05.
	DurationMinutes float64
	// Published is the publish timestamp, zero when the API omitted it.
	Published time.Time
	// Author is the channel title.
	Author string
}

// Complete reports whether every metadata field came back from the API.
func (d *VideoDetails) Complete() bool {
	return d.DurationMinutes > 0 && !d.Published.IsZero() && d.Author != ""
}

// Client performs rate-limited videos.list lookups.
type Client struct {
	service *youtubeapi.Service
	limiter *rate.Limiter

	// Timeout bounds a single lookup when positive.
	Timeout time.Duration
}

// NewClient creates a Data API v3 client authenticated with apiKey.
// rps caps lookups per second.
func NewClient(ctx context.Context, apiKey string, rps float64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	if rps <= 0 {
		rps = 2.5
	}
	return &Client{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// VideoDetails fetches duration, publish time and channel title for a
// video ID with a single videos.list call.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &LookupError{VideoID: videoID, Err: err}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	call := c.service.Videos.List([]string{"contentDetails", "snippet"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, &LookupError{VideoID: videoID, Err: err}
	}

	if len(resp.Items) == 0 {
		return nil, &LookupError{VideoID: videoID, Err: ErrVideoNotFound}
	}

	item := resp.Items[0]
	details := &VideoDetails{ID: videoID}

	if item.ContentDetails != nil {
		details.DurationMinutes = MinutesFromISO8601(item.ContentDetails.Duration)
	}
	if item.Snippet != nil {
		details.Author = item.Snippet.ChannelTitle
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			details.Published = t
		}
	}

	return details, nil
}

// Link forms accepted by ExtractVideoID.
const (
	shortLinkPrefix = "https://youtu.be/"
	watchLinkMarker = "watch?v="
)

var videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}`)

// IsVideoLink reports whether link looks like a YouTube video link.
func IsVideoLink(link string) bool {
	return strings.Contains(link, shortLinkPrefix) || strings.Contains(link, watchLinkMarker)
}

// ExtractVideoID pulls the video ID out of a youtu.be short link or a
// watch?v= URL.
func ExtractVideoID(link string) (string, error) {
	var rest string
	switch {
	case strings.Contains(link, shortLinkPrefix):
		rest = link[strings.Index(link, shortLinkPrefix)+len(shortLinkPrefix):]
	case strings.Contains(link, watchLinkMarker):
		rest = link[strings.Index(link, watchLinkMarker)+len(watchLinkMarker):]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLink, link)
	}

	id := videoIDRegex.FindString(rest)
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLink, link)
	}
	return id, nil
}

var durationPartRegex = regexp.MustCompile(`(\d+)([HMS])`)

// MinutesFromISO8601 converts an ISO-8601 duration ("PT1H2M30S") to
// minutes. Seconds contribute in steps of 0.05 minutes (3s), matching the
// resolution tracking sheets record durations at. Unparseable input
// yields 0.
func MinutesFromISO8601(duration string) float64 {
	parts := map[string]int{}
	for _, m := range durationPartRegex.FindAllStringSubmatch(duration, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts[m[2]] = n
	}

	minutes := float64(parts["H"]*60 + parts["M"])
	seconds := parts["S"]
	minutes += float64(roundDiv(seconds, 3)) * 5 / 100

	return minutes
}

// roundDiv divides with rounding half away from zero.
func roundDiv(n, d int) int {
	return (2*n + d) / (2 * d)
}
