package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jkrogh/fokus/pkg/ai"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/sync"
)

// Bot wraps the Telegram bot API and dependencies
type Bot struct {
	API    *tgbotapi.BotAPI
	Goals  *goal.Service
	AI     ai.Generator
	Git    *sync.GitManager
	stopCh chan struct{}

	// last chat that talked to the bot; reminder broadcasts go there.
	// Written on the update goroutine, read from the reminder loop.
	lastChatID atomic.Int64
}

// NewBot creates a new Telegram bot
func NewBot(token string, goals *goal.Service, aiClient ai.Generator, git *sync.GitManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram bot: %w", err)
	}

	return &Bot{
		API:    api,
		Goals:  goals,
		AI:     aiClient,
		Git:    git,
		stopCh: make(chan struct{}),
	}, nil
}

// Start begins polling for updates in a goroutine
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.API.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-b.stopCh:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil {
					b.handleMessage(update.Message)
				}
			}
		}
	}()

	return nil
}

// Stop stops polling for updates
func (b *Bot) Stop() {
	close(b.stopCh)
	b.API.StopReceivingUpdates()
}

// Notify sends a reminder to the last known chat. Before anyone has talked
// to the bot there is nowhere to deliver, which is not an error.
func (b *Bot) Notify(ctx context.Context, message string) error {
	chatID := b.lastChatID.Load()
	if chatID == 0 {
		return nil
	}
	_, err := b.API.Send(tgbotapi.NewMessage(chatID, message))
	return err
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	b.lastChatID.Store(msg.Chat.ID)
	command, arg := ParseCommand(msg.Text)

	switch command {
	case "/week":
		b.reply(msg, b.weekSummary())
	case "/goals":
		b.reply(msg, b.goalStack())
	case "/done":
		b.reply(msg, b.toggleTask(arg))
	case "/status":
		b.reply(msg, "Fokus kører. Spørg løs, eller brug /week, /goals, /done N.")
	default:
		b.handleQuestion(msg, arg)
	}
}

func (b *Bot) handleQuestion(msg *tgbotapi.Message, question string) {
	if strings.TrimSpace(question) == "" {
		return
	}
	if b.AI == nil {
		b.reply(msg, "Ingen AI konfigureret. Brug /week, /goals eller /done N.")
		return
	}

	goalContext, err := b.Goals.ContextText(time.Now())
	if err != nil {
		b.reply(msg, fmt.Sprintf("Kunne ikke læse mål: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	answer, err := b.AI.GenerateText(ctx, ai.CoachPrompt(question, goalContext))
	if err != nil {
		b.reply(msg, fmt.Sprintf("AI-fejl: %v", err))
		return
	}
	b.reply(msg, answer)
}

func (b *Bot) weekSummary() string {
	p := period.Current(period.Weekly, time.Now())
	doc, err := b.Goals.Read(p)
	if err != nil {
		return fmt.Sprintf("Kunne ikke læse ugens mål: %v", err)
	}
	if doc == nil {
		return fmt.Sprintf("Ingen mål for %s endnu.", p.Label)
	}

	tasks := goal.ParseTasks(doc.Body)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s — %d%%\n", p.Label, goal.Progress(tasks))
	for i, t := range tasks {
		mark := "☐"
		if t.Completed {
			mark = "☑"
		}
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, mark, t.Text)
	}
	return sb.String()
}

func (b *Bot) goalStack() string {
	docs, err := b.Goals.CurrentGoals(time.Now())
	if err != nil {
		return fmt.Sprintf("Kunne ikke læse mål: %v", err)
	}

	var sb strings.Builder
	for _, t := range []period.Type{period.Vision, period.Yearly, period.Quarterly, period.Monthly, period.Weekly} {
		p := period.Current(t, time.Now())
		if docs[t] == nil {
			fmt.Fprintf(&sb, "%s: (intet dokument)\n", p.Label)
			continue
		}
		switch t {
		case period.Monthly, period.Weekly:
			tasks := goal.ParseTasks(docs[t].Body)
			fmt.Fprintf(&sb, "%s: %d%% (%d opgaver)\n", p.Label, goal.Progress(tasks), len(tasks))
		default:
			content := goal.ParseFocusContent(docs[t].Body)
			fmt.Fprintf(&sb, "%s: %d fokusområder\n", p.Label, len(content.Areas))
		}
	}
	return sb.String()
}

// toggleTask completes the N-th task (1-based, as listed by /week) of the
// current weekly goal.
func (b *Bot) toggleTask(arg string) string {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return "Brug: /done N — hvor N er opgavens nummer fra /week."
	}

	p := period.Current(period.Weekly, time.Now())
	found, err := b.Goals.ToggleTask(p, fmt.Sprintf("task-%d", n-1), true)
	if err != nil {
		return fmt.Sprintf("Kunne ikke opdatere opgaven: %v", err)
	}
	if !found {
		return fmt.Sprintf("Ingen mål for %s endnu.", p.Label)
	}

	if b.Git != nil {
		go func() {
			if err := b.Git.Sync("Complete task via Telegram"); err != nil {
				log.Printf("Git sync failed: %v", err)
			}
		}()
	}
	return fmt.Sprintf("Opgave %d markeret som fuldført ✅", n)
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	if _, err := b.API.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		log.Printf("Failed to send Telegram reply: %v", err)
	}
}

// ParseCommand extracts the command and argument from a message text.
// Non-command text comes back with an empty command.
func ParseCommand(text string) (command, arg string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	parts := strings.SplitN(text, " ", 2)
	if len(parts) == 2 {
		return parts[0], strings.TrimSpace(parts[1])
	}
	return parts[0], ""
}
