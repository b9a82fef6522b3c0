package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/npezzotti/go-molehunt/internal/config"
	"github.com/npezzotti/go-molehunt/internal/database"
	"github.com/npezzotti/go-molehunt/internal/feed"
	"github.com/npezzotti/go-molehunt/internal/game"
	"github.com/npezzotti/go-molehunt/internal/stats"
)

type MolehuntApp struct {
	log            *log.Logger
	db             database.GameRepository
	ledger         *game.ScoreLedger
	board          *game.Leaderboard
	chat           *game.ChatFeed
	streamer       *feed.Streamer
	stats          stats.StatsProvider
	mux            *http.Server
	signingKey     []byte
	allowedOrigins []string
}

func NewMolehuntApp(mux *http.ServeMux, logger *log.Logger, db database.GameRepository, statsProvider stats.StatsProvider, cfg *config.Config) *MolehuntApp {
	chat := game.NewChatFeed(db)

	s := &MolehuntApp{
		log:            logger,
		db:             db,
		ledger:         game.NewScoreLedger(db),
		board:          game.NewLeaderboard(db),
		chat:           chat,
		streamer:       feed.NewStreamer(logger, chat, cfg.PollInterval),
		stats:          statsProvider,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("POST /api/auth/register", s.createAccount)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.session))
	mux.Handle("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.Handle("/api/account", s.authMiddleware(s.account))
	mux.Handle("POST /api/scores", s.authMiddleware(s.submitScore))
	mux.Handle("GET /api/scores/summary", s.authMiddleware(s.scoreSummary))
	mux.HandleFunc("GET /api/leaderboard", s.getLeaderboard)
	mux.Handle("POST /api/messages", s.authMiddleware(s.postMessage))
	mux.HandleFunc("GET /api/messages", s.getMessages)
	mux.Handle("GET /ws", s.authMiddleware(s.serveWs))
	mux.HandleFunc("GET /api/game/ai-move", s.aiMove)
	mux.HandleFunc("GET /healthz", s.healthCheck)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *MolehuntApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *MolehuntApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
