package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DiscordWebhookService sends rich embeds to Discord channels via webhooks.
type DiscordWebhookService struct {
	webhookStatus  string
	webhookCrashes string
	webhookEvents  string
	client         *http.Client
}

func NewDiscordWebhookService(status, crashes, events string) *DiscordWebhookService {
	return &DiscordWebhookService{
		webhookStatus:  status,
		webhookCrashes: crashes,
		webhookEvents:  events,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// discordEmbed is a Discord webhook embed.
type discordEmbed struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
	Footer      *discordFooter `json:"footer,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordWebhookPayload struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []discordEmbed `json:"embeds"`
}

func (s *DiscordWebhookService) send(webhookURL string, payload discordWebhookPayload) {
	if webhookURL == "" {
		return
	}
	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Msg("discord webhook marshal failed")
			return
		}
		resp, err := s.client.Post(webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Warn().Err(err).Msg("discord webhook send failed")
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			log.Warn().Int("status", resp.StatusCode).Msg("discord webhook rejected")
		}
	}()
}

// SendServerStatus posts server online/offline status to #server-status.
func (s *DiscordWebhookService) SendServerStatus(online bool, playerCount int) {
	color := 0x2ECC71 // Green
	status := "ONLINE"
	if !online {
		color = 0xE74C3C // Red
		status = "OFFLINE"
	}
	s.send(s.webhookStatus, discordWebhookPayload{
		Username: "Sky Haven Server",
		Embeds: []discordEmbed{{
			Title: fmt.Sprintf("Server %s", status),
			Color: color,
			Fields: []discordField{
				{Name: "Players", Value: fmt.Sprintf("%d", playerCount), Inline: true},
				{Name: "Status", Value: status, Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

// SendCrashFeed posts an aircraft loss to #crash-feed.
func (s *DiscordWebhookService) SendCrashFeed(username, registration, aircraftModel, reason string) {
	s.send(s.webhookCrashes, discordWebhookPayload{
		Username: "Sky Haven Crash Feed",
		Embeds: []discordEmbed{{
			Title: fmt.Sprintf("💥 %s lost %s", username, registration),
			Color: 0xE74C3C, // Red
			Fields: []discordField{
				{Name: "Aircraft", Value: aircraftModel, Inline: true},
				{Name: "Cause", Value: reason, Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	})
}

// SendGameEvent posts a notable milestone to #events.
func (s *DiscordWebhookService) SendGameEvent(eventType, title, description string) {
	s.send(s.webhookEvents, discordWebhookPayload{
		Username: "Sky Haven Events",
		Embeds: []discordEmbed{{
			Title:       title,
			Description: description,
			Color:       0xF1C40F, // Gold
			Fields: []discordField{
				{Name: "Type", Value: eventType, Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	})
}
