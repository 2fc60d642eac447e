package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func SendDiscordErrorNotification(errorMessage string) error {
	message := DiscordMessage{
		Embeds: []DiscordEmbed{
			{
				Title:       "🚨 Error Notification",
				Description: fmt.Sprintf("An error occurred: %s", errorMessage),
				Color:       16711680, // Red color
			},
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	resp, err := http.Post(properties.DiscordErrorNotificationUrl(), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}

func SendDiscordSuccessNotification(successMessage string) error {
	message := DiscordMessage{
		Embeds: []DiscordEmbed{
			{
				Title:       "✅ Success Notification",
				Description: successMessage,
				Color:       65280, // Green color
			},
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	resp, err := http.Post(properties.DiscordSuccessNotificationUrl(), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}
