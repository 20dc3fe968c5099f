package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wowecon/ahtracker/internal/store"
)

const (
	colorGreen = 0x2ECC71 // new mapping discovered
	colorBlue  = 0x3498DB // refresh summary
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// AnnounceMapping sends a single discovery as a Discord embed.
func (d *DiscordNotifier) AnnounceMapping(ctx context.Context, m store.RealmMapping) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(m)},
	}
	return d.post(ctx, payload)
}

// AnnounceMappings sends a refresh summary. Discord allows at most 10
// embeds per message; overflow is summarized in a final embed.
func (d *DiscordNotifier) AnnounceMappings(ctx context.Context, mappings []store.RealmMapping) error {
	if len(mappings) == 0 {
		return nil
	}

	limit := min(len(mappings), 10)
	embeds := make([]discordEmbed, 0, limit+1)
	for i := range limit {
		embeds = append(embeds, buildEmbed(mappings[i]))
	}

	if len(mappings) > 10 {
		var rest []string
		for _, m := range mappings[10:] {
			rest = append(rest, m.Descriptor.RealmKey)
		}
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more realms resolved", len(mappings)-10),
			Color:       colorBlue,
			Description: strings.Join(rest, ", "),
		})
	}

	return d.post(ctx, discordWebhookPayload{Embeds: embeds})
}

func buildEmbed(m store.RealmMapping) discordEmbed {
	name := m.Descriptor.DisplayName
	if name == "" {
		name = m.Descriptor.RealmKey
	}
	return discordEmbed{
		Title: fmt.Sprintf("Realm resolved: %s", name),
		Color: colorGreen,
		Fields: []discordEmbedField{
			{Name: "Region", Value: strings.ToUpper(string(m.Descriptor.Region)), Inline: true},
			{Name: "Connected Realm", Value: fmt.Sprintf("%d", m.Descriptor.ConnectedRealmID), Inline: true},
			{Name: "Namespace", Value: m.Descriptor.Namespace, Inline: true},
		},
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
