package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"myvet/internal/apiclient"
	"myvet/internal/auth"
	"myvet/internal/feedback"
	"myvet/internal/owner"
	"myvet/internal/platform/config"
	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/kvstore"
	"myvet/internal/platform/logger"
	"myvet/internal/prediagnosis"
	"myvet/internal/session"
	"myvet/internal/shell"
	"myvet/internal/token"
	"myvet/internal/vet"
)

// Options permite inyectar dependencias (tests) en vez de leerlas del entorno.
type Options struct {
	ConfigPath string
	Config     *config.Client
	KV         kvstore.Store
	Log        logger.Logger
	Clock      func() time.Time

	Out io.Writer
	Err io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o Options) errw() io.Writer {
	if o.Err == nil {
		return os.Stderr
	}
	return o.Err
}

// App es el grafo de dependencias de una invocación del CLI.
type App struct {
	Config config.Client
	Log    logger.Logger

	Session   *session.Store
	Auth      *auth.Controller
	Navigator *shell.Navigator

	Owner        *owner.Repository
	Pets         *owner.PetService
	Vet          *vet.Repository
	Feedback     *feedback.Repository
	Prediagnosis *prediagnosis.Repository

	closers []func() error
	stopNav func()
	navDone chan struct{}
}

func openStore(ctx context.Context, cfg config.Client) (kvstore.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return kvstore.NewMemory(), nil, nil
	case config.StoreRedis:
		r, err := kvstore.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		f, err := kvstore.NewFile(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return f, nil, nil
	}
}

// Bootstrap arma todo y valida la sesión guardada antes de correr el comando.
func Bootstrap(ctx context.Context, cfg config.Client, opts Options) (_ *App, err error) {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.LogLevel),
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    "myvet",
			Output: opts.errw(),
		})
	}

	a := &App{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	kv := opts.KV
	if kv == nil {
		store, closer, err := openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		kv = store
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}

	policy, err := token.ParseMissingExpPolicy(cfg.MissingExp)
	if err != nil {
		return nil, err
	}
	vopts := []token.Option{token.WithMissingExp(policy)}
	if opts.Clock != nil {
		vopts = append(vopts, token.WithClock(opts.Clock))
	}
	a.Session = session.NewStore(kv, token.NewValidator(vopts...), log)

	factory := apiclient.NewFactory(cfg.BaseURL, httpclient.Uniform(cfg.Timeout), log)
	anon, err := factory.Anonymous()
	if err != nil {
		return nil, err
	}
	a.Auth = auth.NewController(anon, a.Session, log)

	// la pantalla inicial no se imprime; solo las transiciones posteriores
	a.Navigator = shell.NewNavigator()
	a.Navigator.Apply(a.Auth.ValidateSession(ctx))

	states, cancel := a.Auth.Subscribe(4)
	a.stopNav = cancel
	a.navDone = make(chan struct{})
	errw := opts.errw()
	go func() {
		defer close(a.navDone)
		a.Navigator.Run(context.WithoutCancel(ctx), states, func(act shell.Action) {
			fmt.Fprintf(errw, "→ %s\n", act.To)
		})
	}()

	authed, err := factory.Authenticated(a.Session, func(ctx context.Context) {
		a.Auth.ForceLogout(ctx, "unauthorized")
	})
	if err != nil {
		return nil, err
	}

	mode, err := owner.ParseMode(cfg.PetMode)
	if err != nil {
		return nil, err
	}
	a.Owner = owner.NewRepository(authed, log)
	a.Pets = owner.NewPetService(a.Owner, kv, mode, log)
	a.Vet = vet.NewRepository(authed)
	a.Feedback = feedback.NewRepository(authed)
	a.Prediagnosis = prediagnosis.NewRepository(authed)

	return a, nil
}

// Close espera las escrituras en segundo plano, vacía la navegación
// pendiente y libera el almacén.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Pets != nil {
		a.Pets.Wait()
	}
	if a.stopNav != nil {
		a.stopNav()
		<-a.navDone
	}
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrWrongRole   = errors.New("wrong role")
)

// require exige sesión y, si role no es vacío, ese rol.
func (a *App) require(role string) error {
	st := a.Auth.Current()
	if !st.LoggedIn {
		return ErrNotLoggedIn
	}
	if role != "" && st.Role != role {
		return fmt.Errorf("%w: se requiere %s (sesión actual: %s)", ErrWrongRole, role, st.Role)
	}
	return nil
}
