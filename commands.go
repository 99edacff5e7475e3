package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/drewfead/calavail/internal/auth"
	"github.com/drewfead/calavail/internal/availability"
	"github.com/drewfead/calavail/internal/calendar"
	"github.com/drewfead/calavail/internal/config"
	"github.com/drewfead/calavail/internal/grpchealth"
	"github.com/drewfead/calavail/internal/web"
)

const envPrefix = "CALAVAIL_"

func env(name string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + name)
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "calavail",
		Usage: "calendar availability and health services",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file", Sources: env("CONFIG")},
			&cli.StringFlag{Name: "health-listen", Usage: "health service listen address", Sources: env("HEALTH_LISTEN")},
			&cli.StringFlag{Name: "availability-listen", Usage: "availability service listen address", Sources: env("AVAILABILITY_LISTEN")},
			&cli.StringFlag{Name: "grpc-listen", Usage: "gRPC health listen address (disabled when empty)", Sources: env("GRPC_LISTEN")},
			&cli.StringFlag{Name: "calendar-id", Usage: "Google calendar to query", Sources: env("CALENDAR_ID")},
			&cli.StringFlag{Name: "utc-offset", Usage: "UTC offset of the day window, e.g. +05:30", Sources: env("UTC_OFFSET")},
			&cli.StringFlag{Name: "credentials-file", Usage: "service account key or OAuth client file", Sources: env("CREDENTIALS_FILE")},
			&cli.StringFlag{Name: "token-file", Usage: "stored OAuth token, for OAuth client credentials", Sources: env("TOKEN_FILE")},
			&cli.StringFlag{Name: "api-endpoint", Usage: "Calendar API endpoint override", Sources: env("API_ENDPOINT")},
			&cli.FloatFlag{Name: "upstream-rate-limit", Usage: "max Calendar API requests per second (0 = unlimited)", Sources: env("UPSTREAM_RATE_LIMIT")},
			&cli.IntFlag{Name: "upstream-burst", Usage: "Calendar API request burst", Sources: env("UPSTREAM_BURST")},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Sources: env("LOG_LEVEL")},
			&cli.StringFlag{Name: "log-format", Usage: "text or json", Sources: env("LOG_FORMAT")},
		},
		Commands: []*cli.Command{
			healthCommand(),
			availabilityCommand(),
			checkCommand(),
		},
	}
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "serve GET / and GET /health",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return web.ListenAndServe(gctx, "health", cfg.HealthListen, web.NewHealthHandler(cfg))
			})
			if cfg.GRPCListen != "" {
				g.Go(func() error {
					return grpchealth.ListenAndServe(gctx, cfg.GRPCListen)
				})
			}
			return g.Wait()
		},
	}
}

func availabilityCommand() *cli.Command {
	return &cli.Command{
		Name:  "availability",
		Usage: "serve GET /check?date=YYYY-MM-DD",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			svc, err := newAvailabilityService(ctx, cfg)
			if err != nil {
				return err
			}

			return web.ListenAndServe(ctx, "availability", cfg.AvailabilityListen, web.NewAvailabilityHandler(cfg, svc))
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "list the events on one date and print them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "date to check, YYYY-MM-DD", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "json or yaml", Value: "json"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			svc, err := newAvailabilityService(ctx, cfg)
			if err != nil {
				return err
			}

			res, err := svc.Check(ctx, cmd.String("date"))
			if err != nil {
				return err
			}

			return writeResult(cmd, res)
		},
	}
}

func writeResult(cmd *cli.Command, res *availability.Result) error {
	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	switch format := cmd.String("output"); format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}

// newAvailabilityService authenticates once and returns a service that reuses
// the client for every request.
func newAvailabilityService(ctx context.Context, cfg *config.Config) (*availability.Service, error) {
	if err := cfg.ValidateAvailability(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{}
	if path := cfg.CredentialsPath(); path != "" {
		authed, credType, err := auth.NewHTTPClient(ctx, path, cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to get authenticated client: %w", err)
		}
		slog.Info("using Google credentials", "type", credType.String(), "path", path)
		httpClient = authed
	} else {
		slog.Warn("no credentials configured, calling the API endpoint unauthenticated", "endpoint", cfg.APIEndpoint)
	}

	opts := []calendar.Option{calendar.WithRateLimit(cfg.UpstreamRateLimit, cfg.UpstreamBurst)}
	if cfg.APIEndpoint != "" {
		opts = append(opts, calendar.WithEndpoint(cfg.APIEndpoint))
	}

	client, err := calendar.NewClient(ctx, httpClient, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return availability.NewService(client, cfg.CalendarID, cfg.UTCOffset), nil
}

// loadConfig layers defaults, the YAML file and explicitly set flags or env vars.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cmd, cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	setupLogging(cfg)
	slog.Debug("effective config",
		"config_file", path,
		"health_listen", cfg.HealthListen,
		"availability_listen", cfg.AvailabilityListen,
		"grpc_listen", cfg.GRPCListen,
		"calendar_id", cfg.CalendarID,
		"utc_offset", cfg.UTCOffset,
		"api_endpoint", cfg.APIEndpoint,
		"upstream_rate_limit", cfg.UpstreamRateLimit,
	)

	return cfg, nil
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	stringFlags := map[string]*string{
		"health-listen":       &cfg.HealthListen,
		"availability-listen": &cfg.AvailabilityListen,
		"grpc-listen":         &cfg.GRPCListen,
		"calendar-id":         &cfg.CalendarID,
		"utc-offset":          &cfg.UTCOffset,
		"credentials-file":    &cfg.CredentialsFile,
		"token-file":          &cfg.TokenFile,
		"api-endpoint":        &cfg.APIEndpoint,
		"log-level":           &cfg.LogLevel,
		"log-format":          &cfg.LogFormat,
	}
	for name, dst := range stringFlags {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}

	if cmd.IsSet("upstream-rate-limit") {
		cfg.UpstreamRateLimit = cmd.Float("upstream-rate-limit")
	}
	if cmd.IsSet("upstream-burst") {
		cfg.UpstreamBurst = int(cmd.Int("upstream-burst"))
	}
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
}
