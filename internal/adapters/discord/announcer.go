package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

var ErrBadWebhookURL = errors.New("discord webhook url inválida")

// Announcer publica el streaming match en un canal vía webhook (no necesita bot ni gateway).
type Announcer struct {
	s       *discordgo.Session
	id      string
	token   string
	limiter *matchLimiter
}

// NewAnnouncer: webhookURL tiene la forma https://discord.com/api/webhooks/{id}/{token}.
func NewAnnouncer(webhookURL string) (*Announcer, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	s, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	return &Announcer{
		s:       s,
		id:      id,
		token:   token,
		limiter: newMatchLimiter(30 * time.Second),
	}, nil
}

func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadWebhookURL, raw)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// .../webhooks/{id}/{token}
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrBadWebhookURL, raw)
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "~", `\~`, "`", "\\`", "|", `\|`)

func MatchMessage(home, away domain.Team) string {
	return fmt.Sprintf("🎮 Streaming match: **%s** vs **%s**", teamLabel(home), teamLabel(away))
}

func teamLabel(t domain.Team) string {
	if t.Name != "" {
		return markdownEscaper.Replace(t.Name)
	}
	return "#" + t.ID.String()
}

func (a *Announcer) AnnounceMatch(ctx context.Context, home, away domain.Team) error {
	if !a.limiter.Allow(string(home.ID) + "|" + string(away.ID)) {
		log.Printf("[discord] announce %s vs %s omitido (reciente)", home.ID, away.ID)
		return nil
	}
	defer step("announce")()

	_, err := a.s.WebhookExecute(a.id, a.token, false, &discordgo.WebhookParams{
		Content:         MatchMessage(home, away),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	return nil
}
