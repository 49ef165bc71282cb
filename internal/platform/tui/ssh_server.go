package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-beams/internal/config"
	"github.com/vovakirdan/tui-beams/internal/core"
	"github.com/vovakirdan/tui-beams/internal/games/beams"
	"github.com/vovakirdan/tui-beams/internal/registry"
	"github.com/vovakirdan/tui-beams/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.beams/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// RedisAddr enables a shared leaderboard when set.
	RedisAddr      string
	LeaderboardKey string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	TickRate int
	Game     config.BeamsConfig
	Theme    Theme
	Logger   *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	cfg := config.DefaultBeamsConfig()
	return SSHServerConfig{
		Address:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		DBPath:         cfg.Storage.DBPath,
		LeaderboardKey: cfg.Storage.LeaderboardKey,
		IdleTimeout:    30 * time.Minute,
		TickRate:       60,
		Game:           cfg,
		Theme:          DefaultTheme(),
	}
}

// SSHServer wraps a Wish SSH server for Beams.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	redis  *redis.Client
	board  storage.Leaderboard
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "beams-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, redisErr := storage.DialRedis(ctx, cfg.RedisAddr)
		cancel()
		if redisErr != nil {
			logger.Warn("leaderboard disabled", "error", redisErr)
		} else {
			srv.redis = client
			srv.board = storage.NewRedisLeaderboard(client, cfg.LeaderboardKey)
			logger.Info("shared leaderboard enabled", "redis", cfg.RedisAddr)
		}
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".beams", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeBackends()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	sessionID := uuid.NewString()
	logger := s.logger.With("session", sessionID, "user", sshSession.User())

	rec := &Recorder{
		Store:  s.store,
		Board:  s.board,
		Player: sshSession.User(),
		Logger: logger,
	}

	model := NewSessionModel(SessionDeps{
		Store:    s.store,
		Recorder: rec,
		Game:     s.config.Game,
		Theme:    s.config.Theme,
		Logger:   logger,
	}, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeBackends()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeBackends() {
	if s.store != nil {
		s.store.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps are the shared services a session model uses.
type SessionDeps struct {
	Store    *storage.Store
	Recorder *Recorder
	Game     config.BeamsConfig
	Theme    Theme
	Logger   *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevels
	screenScores
	screenGame
)

// SessionModel manages the full session flow: menu -> levels -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	levels   LevelMenuModel
	scores   ScoreboardModel
	pack     registry.Pack
	game     *Model
	quitting bool
	err      string
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Store, cfg, deps.Theme),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// Sub-models quit their own program when done. The session checks their
// flags first and drops the quit command to switch screens instead.

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.deps.Recorder, m.deps.Theme, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.openPack(m.menu.Selected().PackID)
	}

	return m, cmd
}

func (m SessionModel) openPack(packID string) (tea.Model, tea.Cmd) {
	pack, err := registry.Create(packID, registry.Options{
		Config: m.deps.Game,
		Seed:   m.config.Seed,
		Logger: m.deps.Logger,
	})
	if err != nil {
		m.deps.Logger.Error("cannot open pack", "pack", packID, "error", err)
		m.err = err.Error()
		return m.backToMenu()
	}
	m.pack = pack

	if pack.Count() == 0 {
		return m.startGame(0)
	}

	m.levels = NewLevelMenuModel(pack.Title(), PackLevelNames(pack), m.config.ScreenW, m.config.ScreenH, m.deps.Theme)
	m.screen = screenLevels
	return m, m.levels.Init()
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLevels, cmd := m.levels.Update(msg)
	if lm, ok := newLevels.(LevelMenuModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.backToMenu()
	case m.levels.Selected() != nil:
		return m.startGame(m.levels.Selected().Index)
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if sm, ok := newScores.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) startGame(index int) (tea.Model, tea.Cmd) {
	game := beams.New(m.pack, m.deps.Game)
	gm := NewModel(game, m.config, Options{
		Recorder:   m.deps.Recorder,
		Theme:      m.deps.Theme,
		StartLevel: index,
	})
	m.game = &gm
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		m.pack = nil
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.deps.Store, m.config, m.deps.Theme)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenScores:
		return m.scores.View()
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(m.deps.Theme.MenuDescription.Render(m.err), m.config.ScreenW)
	}
	return view
}
