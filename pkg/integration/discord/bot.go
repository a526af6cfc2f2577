package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jkrogh/fokus/pkg/ai"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
)

// Bot wraps the Discord session and dependencies
type Bot struct {
	Session *discordgo.Session
	Goals   *goal.Service
	AI      ai.Generator

	// Written on the session's event goroutine, read from the reminder loop.
	mu            sync.Mutex
	lastChannelID string
}

// NewBot creates a new Discord bot
func NewBot(token string, goals *goal.Service, aiClient ai.Generator) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	bot := &Bot{
		Session: dg,
		Goals:   goals,
		AI:      aiClient,
	}

	dg.AddHandler(bot.messageCreate)

	return bot, nil
}

// Start opens the websocket connection
func (b *Bot) Start() error {
	return b.Session.Open()
}

// Stop closes the websocket connection
func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Notify sends a reminder to the last channel that talked to the bot.
func (b *Bot) Notify(ctx context.Context, message string) error {
	b.mu.Lock()
	channelID := b.lastChannelID
	b.mu.Unlock()
	if channelID == "" {
		return nil
	}
	_, err := b.Session.ChannelMessageSend(channelID, message)
	return err
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from self
	if m.Author.ID == s.State.User.ID {
		return
	}
	b.mu.Lock()
	b.lastChannelID = m.ChannelID
	b.mu.Unlock()

	switch {
	case m.Content == "!week":
		b.handleWeek(s, m)
	case m.Content == "!status":
		s.ChannelMessageSend(m.ChannelID, "🤖 Fokus kører. Brug !week eller !ask <spørgsmål>.")
	case strings.HasPrefix(m.Content, "!ask "):
		b.handleAsk(s, m, strings.TrimPrefix(m.Content, "!ask "))
	}
}

func (b *Bot) handleWeek(s *discordgo.Session, m *discordgo.MessageCreate) {
	p := period.Current(period.Weekly, time.Now())
	doc, err := b.Goals.Read(p)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Kunne ikke læse ugens mål: %v", err))
		return
	}
	if doc == nil {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Ingen mål for %s endnu.", p.Label))
		return
	}

	tasks := goal.ParseTasks(doc.Body)
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** — %d%%\n", p.Label, goal.Progress(tasks))
	for i, t := range tasks {
		mark := "☐"
		if t.Completed {
			mark = "☑"
		}
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, mark, t.Text)
	}
	s.ChannelMessageSend(m.ChannelID, sb.String())
}

func (b *Bot) handleAsk(s *discordgo.Session, m *discordgo.MessageCreate, question string) {
	if b.AI == nil {
		s.ChannelMessageSend(m.ChannelID, "Ingen AI konfigureret.")
		return
	}

	goalContext, err := b.Goals.ContextText(time.Now())
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Kunne ikke læse mål: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	answer, err := b.AI.GenerateText(ctx, ai.CoachPrompt(question, goalContext))
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("AI-fejl: %v", err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, answer)
}
