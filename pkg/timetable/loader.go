package timetable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/config"
	"github.com/travigo/viaplanner/pkg/transforms"
)

// Load reads the configured feed and builds a Router for the chosen service date
func Load(ctx context.Context, cfg *config.AppConfig) (*Router, error) {
	startTime := time.Now()

	body, err := readFeed(ctx, cfg)
	if err != nil {
		return nil, err
	}

	feed, err := ParseFeed(body)
	if err != nil {
		return nil, err
	}

	requestedDate, err := cfg.ServiceDate()
	if err != nil {
		return nil, err
	}
	serviceDate, reason := feed.PickServiceDate(requestedDate, time.Now())

	timetable := BuildTimetable(feed, serviceDate)
	if cfg.Feed.Name != "" {
		timetable.Metadata.FeedName = cfg.Feed.Name
	}
	transformedLines := transforms.Transform(cfg.Transforms, timetable.Lines())

	log.Info().
		Str("feed", timetable.Metadata.FeedName).
		Str("servicedate", timetable.Metadata.ServiceDate).
		Str("reason", reason).
		Int("stops", timetable.Metadata.StopCount).
		Int("trips", timetable.Metadata.TripCount).
		Int("transformedlines", transformedLines).
		Str("latency", time.Since(startTime).String()).
		Msg("Loaded timetable")

	return NewRouter(timetable), nil
}

func readFeed(ctx context.Context, cfg *config.AppConfig) ([]byte, error) {
	if cfg.Feed.Path != "" {
		return os.ReadFile(cfg.Feed.Path)
	}

	return downloadFeed(ctx, cfg.Feed.URL, cfg.DownloadTimeout(), cfg.Feed.DownloadRetries)
}

// downloadFeed retries transient failures with exponential backoff. Client errors are permanent.
func downloadFeed(ctx context.Context, url string, timeout time.Duration, retries int) ([]byte, error) {
	client := &http.Client{Timeout: timeout}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(fmt.Errorf("download %s: status %d", url, resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download %s: status %d", url, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	retryBackoff := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries)),
		ctx,
	)

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", url).Str("wait", wait.String()).Msg("Feed download failed, retrying")
	}

	if err := backoff.RetryNotify(operation, retryBackoff, notify); err != nil {
		return nil, err
	}

	log.Info().Str("url", url).Int("size", len(body)).Msg("Downloaded feed")

	return body, nil
}
