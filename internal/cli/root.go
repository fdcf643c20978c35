// Package cli es el shell de la app: comandos cobra sobre el núcleo cliente.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"myvet/internal/platform/config"
)

// runner mantiene el App de la invocación actual; los comandos lo leen
// en RunE, después de PersistentPreRunE.
type runner struct {
	opts Options
	app  *App

	configPath string
	baseURL    string
	store      string
	storePath  string
	petMode    string
	logLevel   string
	timeout    time.Duration
	output     string
}

func newRootCmd(opts Options) (*cobra.Command, *runner) {
	r := &runner{opts: opts}

	root := &cobra.Command{
		Use:   "myvet",
		Short: "Cliente de la clínica veterinaria MyVet",
		Long: `myvet es el cliente de línea de comandos de MyVet.

Dueños gestionan sus mascotas, citas y perfil; veterinarios ven su cartera
de pacientes y actualizan el estado de las citas.

La sesión se guarda localmente (archivo, memoria o Redis) y se valida en
cada invocación: un token vencido o ilegible cierra la sesión.

Examples:
  myvet login --email ana@correo.cl --password secreto
  myvet pets list
  myvet citas add --fecha 2026-05-10T10:00 --motivo vacuna --mascota <id>
  myvet vet estado <cita-id> --estado en_curso`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.bootstrap(cmd)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&r.configPath, "config", "", "archivo de configuración (default $MYVET_CONFIG o ~/.myvet/config.yaml)")
	pf.StringVar(&r.baseURL, "base-url", "", "URL base del backend")
	pf.StringVar(&r.store, "store", "", "almacén local: file|memory|redis")
	pf.StringVar(&r.storePath, "store-path", "", "ruta del archivo de sesión (store=file)")
	pf.StringVar(&r.petMode, "pet-mode", "", "mascotas: remote|dual-write")
	pf.StringVar(&r.logLevel, "log-level", "", "debug|info|warn|error|off")
	pf.DurationVar(&r.timeout, "timeout", 0, "timeout por fase HTTP (connect/read/write)")
	pf.StringVarP(&r.output, "output", "o", outputTable, "formato de salida: table|json|yaml")

	root.AddCommand(
		r.loginCmd(),
		r.registerCmd(),
		r.logoutCmd(),
		r.statusCmd(),
		r.profileCmd(),
		r.petsCmd(),
		r.citasCmd(),
		r.vetCmd(),
		r.feedbackCmd(),
		r.prediagCmd(),
	)
	return root, r
}

func (r *runner) loadConfig(cmd *cobra.Command) (config.Client, error) {
	var cfg config.Client
	if r.opts.Config != nil {
		cfg = *r.opts.Config
	} else {
		path := r.configPath
		if path == "" {
			path = r.opts.ConfigPath
		}
		loaded, err := config.LoadClient(path)
		if err != nil {
			return config.Client{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = r.baseURL
	}
	if flags.Changed("store") {
		cfg.Store = r.store
	}
	if flags.Changed("store-path") {
		cfg.StorePath = r.storePath
	}
	if flags.Changed("pet-mode") {
		cfg.PetMode = r.petMode
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = r.logLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = r.timeout
	}
	if err := cfg.Validate(); err != nil {
		return config.Client{}, usageError{err}
	}
	if err := validOutput(r.output); err != nil {
		return config.Client{}, err
	}
	return cfg, nil
}

func (r *runner) bootstrap(cmd *cobra.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := Bootstrap(ctx, cfg, r.opts)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

func (r *runner) print(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}

func requiredFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return usageError{fmt.Errorf("--%s es obligatorio", name)}
	}
	return nil
}

// Execute corre el CLI y devuelve el código de salida. Los errores se
// imprimen por stderr con el mensaje para el usuario.
func Execute(ctx context.Context, args []string, opts Options) int {
	root, r := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(opts.out())
	root.SetErr(opts.errw())

	err := root.ExecuteContext(ctx)
	if cerr := r.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(opts.errw(), "Error: %s\n", Message(err))
		return ExitCode(err)
	}
	return Success
}
