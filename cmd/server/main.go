package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jkrogh/fokus/pkg/agent"
	"github.com/jkrogh/fokus/pkg/ai"
	"github.com/jkrogh/fokus/pkg/api"
	"github.com/jkrogh/fokus/pkg/automation"
	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/integration/discord"
	"github.com/jkrogh/fokus/pkg/integration/drive"
	"github.com/jkrogh/fokus/pkg/integration/telegram"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/reflection"
	"github.com/jkrogh/fokus/pkg/sync"
	"github.com/jkrogh/fokus/pkg/vault"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	vaultPath := flag.String("vault", "", "Path to the goal vault directory")
	dbPath := flag.String("db", "fokus.db", "Path to SQLite DB")
	port := flag.String("port", "8080", "HTTP Port")
	aiProvider := flag.String("ai-provider", "gemini", "AI provider: gemini or anthropic")
	mcpMode := flag.Bool("mcp", false, "Serve MCP tools over stdio instead of HTTP")
	gitSync := flag.Bool("git-sync", true, "Auto-commit and push the vault after writes")
	driveFolder := flag.String("drive-folder", "", "Google Drive folder ID for backups (optional)")
	flag.Parse()

	if *vaultPath == "" {
		log.Fatal("Please provide -vault path")
	}

	// Initialize DB
	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	repo := db.NewRepository(database)

	// Initialize vault services
	store := vault.NewStore(*vaultPath)
	if err := store.EnsureLayout(); err != nil {
		log.Fatalf("Failed to prepare vault layout: %v", err)
	}
	goals := goal.NewService(store)
	reflections := reflection.NewService(store)

	// MCP mode: expose the vault tools over stdio and exit when the client
	// disconnects. No HTTP, no bots.
	if *mcpMode {
		if err := agent.Serve(agent.NewServer(Version, goals, reflections, repo)); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}
		return
	}

	// Initialize AI Client
	var aiClient ai.Generator
	switch *aiProvider {
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			log.Fatal("ANTHROPIC_API_KEY environment variable is required when using anthropic provider")
		}
		aiClient = ai.NewAnthropicClient(key)
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when using gemini provider")
		}
		geminiClient, err := ai.NewGeminiClient(context.Background(), key)
		if err != nil {
			log.Fatalf("Failed to create AI client: %v", err)
		}
		defer geminiClient.Close()
		aiClient = geminiClient
	default:
		log.Fatalf("Unknown AI provider: %s", *aiProvider)
	}

	// Initialize Git Manager
	var gitManager *sync.GitManager
	if *gitSync {
		gitManager = sync.NewGitManager(*vaultPath)
	}

	// Initialize Router
	router := api.NewRouter(goals, reflections, aiClient, repo, gitManager)

	// Period-start reminders: nudge when a new week/month/quarter begins
	// without a goal document.
	reminders := automation.NewService(repo, goals, 15*time.Minute)
	reminders.SetComposer(func(ctx context.Context, p period.Period) (string, error) {
		parentGoals, err := goals.ContextText(p.Start)
		if err != nil {
			return "", err
		}
		return aiClient.GenerateText(ctx, ai.WeeklyNudgePrompt(p.Label, parentGoals))
	})

	// Initialize Telegram Bot (Optional)
	telegramToken := os.Getenv("TELEGRAM_TOKEN")
	if telegramToken != "" {
		tgBot, err := telegram.NewBot(telegramToken, goals, aiClient, gitManager)
		if err != nil {
			log.Printf("Failed to create Telegram bot: %v", err)
		} else {
			if err := tgBot.Start(); err != nil {
				log.Printf("Failed to start Telegram bot: %v", err)
			} else {
				log.Println("Telegram Bot started")
				reminders.AddNotifier(tgBot.Notify)
				defer tgBot.Stop()
			}
		}
	}

	// Initialize Discord Bot (Optional)
	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken != "" {
		bot, err := discord.NewBot(discordToken, goals, aiClient)
		if err != nil {
			log.Printf("Failed to create Discord bot: %v", err)
		} else {
			if err := bot.Start(); err != nil {
				log.Printf("Failed to start Discord bot: %v", err)
			} else {
				log.Println("Discord Bot started")
				reminders.AddNotifier(bot.Notify)
				defer bot.Stop()
			}
		}
	}

	reminders.Start()
	defer reminders.Stop()

	// Initialize Drive Backup (Optional)
	credentials := os.Getenv("GOOGLE_CREDENTIALS")
	if *driveFolder != "" && credentials != "" {
		driveService, err := drive.NewService(context.Background(), credentials, *driveFolder)
		if err != nil {
			log.Printf("Failed to create Drive service: %v", err)
		} else {
			backup := drive.NewBackup(driveService, repo, *vaultPath, 30*time.Minute)
			if err := backup.Start(); err != nil {
				log.Printf("Failed to start Drive backup: %v", err)
			} else {
				log.Println("Drive backup started")
				defer backup.Stop()
			}
		}
	}

	log.Printf("Starting server on :%s", *port)
	if err := http.ListenAndServe(":"+*port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
