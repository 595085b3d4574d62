// Command pegsolitaire starts the peg solitaire game server.
//
// It supports three commands:
//  1. "server" (default) runs the HTTP server exposing the REST API, WebSocket updates and an /mcp HTTP endpoint
//  2. "stdio-mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "board" prints the starting board for a given size
//
// Flags control host/port, preset directory, debug logging and optional
// ngrok tunneling for easy external access during development. Every flag
// can also be set through the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/pegsolitaire/api"
	"github.com/wricardo/pegsolitaire/game/config"
	"github.com/wricardo/pegsolitaire/game/engine"
	"github.com/wricardo/pegsolitaire/game/service"
	"github.com/wricardo/pegsolitaire/game/session"
	"github.com/wricardo/pegsolitaire/transport/mcp"
	"github.com/wricardo/pegsolitaire/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Peg Solitaire Server"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
)

// serverOptions collects the flags shared by the server and stdio-mcp commands
type serverOptions struct {
	Host        string
	Port        int
	ConfigDir   string
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

func (o serverOptions) addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func optionsFrom(cmd *cli.Command) serverOptions {
	return serverOptions{
		Host:        cmd.String("host"),
		Port:        cmd.Int("port"),
		ConfigDir:   cmd.String("config-dir"),
		Ngrok:       cmd.Bool("ngrok"),
		NgrokAuth:   cmd.String("ngrok-auth"),
		NgrokDomain: cmd.String("ngrok-domain"),
	}
}

// main loads .env, builds the command tree and runs it
func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", envErr)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pegsolitaire",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing board presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: serverAction,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  serverAction,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  stdioMCPAction,
			},
			{
				Name:  "board",
				Usage: "Print the starting board for a size",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "size",
						Value: engine.MinBoardSize,
						Usage: "Board size (odd, at least 7)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printBoard(cmd.Root().Writer, cmd.Int("size"))
				},
			},
		},
	}
}

// newLogger returns a development logger in debug mode and a production
// logger otherwise. Both write to stderr, which keeps stdout free for the
// MCP stdio transport.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serverAction(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := optionsFrom(cmd)
	logger.Info("starting", zap.String("app", AppName), zap.String("version", Version), zap.String("mode", "server"))

	gameService, err := initializeServices(ctx, opts.ConfigDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return runHTTPServer(ctx, opts, gameService, logger)
}

func stdioMCPAction(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	opts := optionsFrom(cmd)
	logger.Info("starting", zap.String("app", AppName), zap.String("version", Version), zap.String("mode", "stdio-mcp"))

	gameService, err := initializeServices(ctx, opts.ConfigDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return runStdioMCPWithInternalServer(ctx, opts, gameService, logger)
}

// printBoard writes the starting board of the given size
func printBoard(w io.Writer, size int) error {
	board, err := engine.NewBoard(size)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%dx%d board, %d pegs\n%s\n", size, size, board.PiecesLeft(), board.String())
	return nil
}

// newHandler mounts the REST API at the root and the MCP proxy at /mcp
func newHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.Handle("/mcp", mcpClient)
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel. It returns once ctx is done
// and the servers have shut down.
func runHTTPServer(ctx context.Context, opts serverOptions, gameService service.GameService, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	apiServer := api.NewServer(gameService, hub, logger)

	addr := opts.addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr), logger)
	handler := newHandler(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)),
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			cancel()
		}
	}()

	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, handler, logger)
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	logger.Info("server stopped")

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	default:
		return nil
	}
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done
func runNgrokTunnel(ctx context.Context, opts serverOptions, handler http.Handler, logger *zap.Logger) {
	if opts.NgrokAuth == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	logger.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		logger.Info("using custom ngrok domain", zap.String("domain", opts.NgrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.NgrokAuth))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Error("failed to close ngrok tunnel", zap.Error(err))
		}
	}()

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", ngrokURL),
		zap.String("api", ngrokURL+"/api"),
		zap.String("mcp", ngrokURL+"/mcp"),
	)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Error("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine, bound to ctx, that prunes
// stale sessions.
func initializeServices(ctx context.Context, configDir string, logger *zap.Logger) (service.GameService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	logger.Info("presets loaded", zap.String("dir", configDir), zap.Int("count", configManager.Count()))

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, sessionCleanupInterval, sessionMaxAge, logger)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within maxAge. It stops when ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				logger.Info("cleaned up expired sessions", zap.Int("removed", removed), zap.Int("remaining", manager.Count()))
			}
		}
	}
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at the configured host and port; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, opts serverOptions, gameService service.GameService, logger *zap.Logger) error {
	externalURL := fmt.Sprintf("http://%s", opts.addr())
	baseURL := externalURL

	logger.Info("checking for external API server", zap.String("url", externalURL))

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		logger.Info("external API server found, using it for MCP", zap.String("url", externalURL))
	} else {
		if resp != nil {
			resp.Body.Close()
		}
		logger.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		logger.Info("starting internal HTTP server for MCP stdio", zap.String("addr", internalAddr))

		// the stdio process has no websocket clients, so no hub
		httpServer := &http.Server{
			Handler: api.NewServer(gameService, nil, logger),
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL, logger)
	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
