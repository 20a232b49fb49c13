package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hackhub-dev/hackhub/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue  = 3447003  // #3498DB - submission received
	ColorGreen = 65280    // #00FF00 - event started
	ColorGold  = 16766720 // #FFD700 - event completed

	Username = "HackHub"
)

// SendSubmissionReceivedNotification pings the event's configured webhooks
// when a team moves a project from draft to submitted.
func SendSubmissionReceivedNotification(event models.Event, team models.Team, submission models.Submission) error {
	if event.DiscordWebhook != "" {
		if err := sendDiscordSubmissionReceived(event.DiscordWebhook, event, team, submission); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if event.SlackWebhook != "" {
		if err := sendSlackSubmissionReceived(event.SlackWebhook, event, team, submission); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

// SendEventStatusNotification announces lifecycle transitions (started,
// completed) on the event's configured webhooks.
func SendEventStatusNotification(event models.Event, status string) error {
	if event.DiscordWebhook != "" {
		if err := sendDiscordEventStatus(event.DiscordWebhook, event, status); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if event.SlackWebhook != "" {
		if err := sendSlackEventStatus(event.SlackWebhook, event, status); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func sendDiscordSubmissionReceived(webhookURL string, event models.Event, team models.Team, submission models.Submission) error {
	submittedAt := "Unknown"
	if submission.SubmittedAt != nil {
		submittedAt = submission.SubmittedAt.Format("2006-01-02 15:04:05 UTC")
	}

	payload := DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "New project submitted",
				Description: fmt.Sprintf("**%s** submitted **%s**.", team.Name, submission.Title),
				Color:       ColorBlue,
				Fields: []DiscordWebhookField{
					{Name: "Team", Value: team.Name, Inline: true},
					{Name: "Project", Value: submission.Title, Inline: true},
					{Name: "Submitted At", Value: submittedAt, Inline: true},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Event: %s | HackHub", event.Name),
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return sendDiscordWebhook(webhookURL, payload)
}

func sendDiscordEventStatus(webhookURL string, event models.Event, status string) error {
	title := "Event update"
	color := ColorGreen

	switch status {
	case "active":
		title = "Event started"
	case "completed":
		title = "Event completed"
		color = ColorGold
	}

	payload := DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       title,
				Description: fmt.Sprintf("**%s** is now %s.", event.Name, status),
				Color:       color,
				Fields: []DiscordWebhookField{
					{Name: "Event", Value: event.Name, Inline: true},
					{Name: "Status", Value: status, Inline: true},
					{Name: "Participants", Value: fmt.Sprintf("%d", event.ParticipantCount), Inline: true},
				},
				Footer: &DiscordFooter{
					Text: "HackHub",
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return sendDiscordWebhook(webhookURL, payload)
}

func sendSlackSubmissionReceived(webhookURL string, event models.Event, team models.Team, submission models.Submission) error {
	payload := SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":package:",
		Text:      fmt.Sprintf("New submission for *%s*", event.Name),
		Attachments: []SlackAttachment{
			{
				Color: "#3498DB",
				Title: submission.Title,
				Text:  submission.Description,
				Fields: []SlackField{
					{Title: "Team", Value: team.Name, Short: true},
					{Title: "Event", Value: event.Name, Short: true},
				},
				Footer:    "HackHub",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return sendSlackWebhook(webhookURL, payload)
}

func sendSlackEventStatus(webhookURL string, event models.Event, status string) error {
	payload := SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":checkered_flag:",
		Text:      fmt.Sprintf("*%s* is now %s", event.Name, status),
		Attachments: []SlackAttachment{
			{
				Color: "#00FF00",
				Title: event.Name,
				Fields: []SlackField{
					{Title: "Status", Value: status, Short: true},
					{Title: "Participants", Value: fmt.Sprintf("%d", event.ParticipantCount), Short: true},
				},
				Footer:    "HackHub",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return sendSlackWebhook(webhookURL, payload)
}

func sendDiscordWebhook(webhookURL string, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return postWebhook(webhookURL, body)
}

func sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return postWebhook(webhookURL, body)
}

func postWebhook(webhookURL string, body []byte) error {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(webhookURL, "application/json", bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
