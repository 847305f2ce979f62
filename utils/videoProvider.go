package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

type videoMetaResponse struct {
	DurationSeconds int `json:"duration_seconds"`
}

// FetchVideoLengthMinutes asks the configured video provider for the
// duration of a recording. Returns 0 when the provider is not configured
// or the lookup fails; callers treat that as "unknown", not an error.
func FetchVideoLengthMinutes(videoURL string) int {
	if config.AppConfig.VideoMetaApiURL == "" || videoURL == "" {
		return 0
	}

	client := resty.New()

	var meta videoMetaResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.VideoMetaApiKey).
		SetQueryParam("url", videoURL).
		SetResult(&meta).
		Get(config.AppConfig.VideoMetaApiURL)

	if err != nil {
		log.Printf("Error fetching video metadata: %v", err)
		return 0
	}
	if resp.StatusCode() != 200 {
		log.Printf("Video metadata lookup failed, status: %d", resp.StatusCode())
		return 0
	}

	return meta.DurationSeconds / 60
}

// VideoLengthLabel formats minutes as "1h 30m" for admin listings
func VideoLengthLabel(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
