package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/guidipper/internal/client/client"
	"github.com/dmitrijs2005/guidipper/internal/client/config"
	"github.com/dmitrijs2005/guidipper/internal/client/forms"
	"github.com/dmitrijs2005/guidipper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/guidipper/internal/client/services"
	"github.com/dmitrijs2005/guidipper/internal/logging"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	routes  services.RouteService
	profile services.ProfileService
	chat    services.ChatService
	store   metadata.Repository
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	page    Page
	loading string
	prefs   *forms.PreferencesForm
}

// NewApp wires the services over the given API client and local database.
func NewApp(c *config.Config, api client.Client, db *sql.DB, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	auth := services.NewAuthService(api, db,
		services.WithTokenTTL(c.TokenTTL),
		services.WithAuthLogger(log.With("component", "auth")))

	return &App{
		config:  c,
		auth:    auth,
		routes:  services.NewRouteService(api, auth),
		profile: services.NewProfileService(api, auth, db, c.APIURL),
		chat:    services.NewChatService(api, auth),
		store:   metadata.NewSQLiteRepository(db),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		page:    PageHome,
		prefs:   forms.NewPreferencesForm(),
	}
}

// Run restores a stored session and serves commands from stdin until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	ok, err := a.auth.CheckAuth(ctx)
	if err != nil {
		return fmt.Errorf("session check: %w", err)
	}
	if ok {
		u, _ := a.auth.User()
		a.log.Info(ctx, "session restored", "user_id", u.ID)
		a.println("Welcome back,", u.DisplayName())
	}

	a.println("GuiDipper (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// status is shown in the prompt: the current page and who is logged in.
func (a *App) status() string {
	s := string(a.page)
	if u, ok := a.auth.User(); ok {
		s += " " + u.DisplayName()
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
