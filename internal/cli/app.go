package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/koywe"
	"github.com/dmitrijs2005/koywe/config"
	"github.com/dmitrijs2005/koywe/logging"
)

type App struct {
	config *config.Config
	client *koywe.Client
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp prepares an App reading commands from in and writing to out. The
// client is built by Run once credentials are complete.
func NewApp(c *config.Config, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		config: c,
		log:    logging.OrNop(log).With("component", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run prompts for missing credentials, connects and serves the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Koywe CLI (type 'help' for commands)")

	if err := a.completeCredentials(); err != nil {
		return err
	}
	if err := a.connect(ctx); err != nil {
		return err
	}

	if a.config.AutoAuthenticate {
		if err := a.Login(ctx); err != nil {
			fmt.Fprintln(a.out, "error:", describe(err))
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) completeCredentials() error {
	if strings.TrimSpace(a.config.Username) == "" {
		name, err := GetSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		a.config.Username = name
	}
	if a.config.Password == "" {
		pw, err := GetPassword(a.out)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		a.config.Password = pw
	}
	return nil
}

func (a *App) connect(ctx context.Context) error {
	cfg := a.config.Client(a.log)
	cfg.AutoAuthenticate = false

	c, err := koywe.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.client = c
	a.log.Debug(ctx, "client ready", "base_url", c.BaseURL())
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.client != nil && a.client.IsAuthenticated()
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("(%s)", a.config.Username)
	}
	return "(offline)"
}
