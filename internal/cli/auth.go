package cli

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"myvet/internal/auth"
	"myvet/internal/owner"
	"myvet/internal/session"
	"myvet/internal/vet"
)

func (r *runner) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión con email y contraseña",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requiredFlag("email", email); err != nil {
				return err
			}
			if err := requiredFlag("password", password); err != nil {
				return err
			}
			sess, err := r.app.Auth.Login(cmd.Context(), email, password).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Sesión iniciada: %s (%s)\n", sess.Email, sess.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email (obligatorio)")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (obligatoria)")
	return cmd
}

func (r *runner) registerCmd() *cobra.Command {
	var in auth.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Crea una cuenta de dueño o veterinario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requiredFlag("email", in.Email); err != nil {
				return err
			}
			if err := requiredFlag("password", in.Password); err != nil {
				return err
			}
			sess, err := r.app.Auth.Register(cmd.Context(), in).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Cuenta creada: %s (%s)\n", sess.Email, sess.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email (obligatorio)")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña (obligatoria)")
	cmd.Flags().StringVar(&in.Role, "role", session.RoleOwner, "owner|veterinario")
	cmd.Flags().StringVar(&in.DisplayName, "name", "", "nombre para mostrar")
	return cmd
}

func (r *runner) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r.app.Auth.Logout(cmd.Context())
			r.print(cmd, "Sesión cerrada.\n")
			return nil
		},
	}
}

type statusView struct {
	LoggedIn bool   `json:"loggedIn" yaml:"logged_in"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Name     string `json:"nombre,omitempty" yaml:"nombre,omitempty"`
	Screen   string `json:"screen" yaml:"screen"`
	BaseURL  string `json:"baseUrl" yaml:"base_url"`
}

func (r *runner) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Muestra la sesión actual y la pantalla de inicio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st := r.app.Auth.Current()
			v := statusView{
				LoggedIn: st.LoggedIn,
				Role:     st.Role,
				Screen:   string(r.app.Navigator.Current()),
				BaseURL:  r.app.Config.BaseURL,
			}
			if st.LoggedIn {
				v.Email, _ = r.app.Session.Email(ctx)
				v.Name, _ = r.app.Session.DisplayName(ctx)
			}
			return render(cmd.OutOrStdout(), r.output, v, func(tw *tabwriter.Writer) {
				fprintRow(tw, "sesión", yesNo(v.LoggedIn))
				fprintRow(tw, "rol", dash(v.Role))
				fprintRow(tw, "email", dash(v.Email))
				fprintRow(tw, "nombre", dash(v.Name))
				fprintRow(tw, "pantalla", v.Screen)
				fprintRow(tw, "backend", v.BaseURL)
			})
		},
	}
}

// profileCmd edita el perfil del rol actual. Los flags de clínica solo
// aplican a veterinarios.
func (r *runner) profileCmd() *cobra.Command {
	var p vet.Profile
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Guarda tu perfil (dueño o veterinario)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(""); err != nil {
				return err
			}
			ctx := cmd.Context()
			var err error
			if r.app.Auth.Current().Role == session.RoleVet {
				_, err = r.app.Vet.SaveProfile(ctx, p).Unwrap()
			} else {
				_, err = r.app.Owner.SaveProfile(ctx, owner.ProfileInput{Name: p.Name, Phone: p.Phone, Address: p.Address}).Unwrap()
			}
			if err != nil {
				return err
			}
			r.print(cmd, "Perfil guardado.\n")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "nombre (obligatorio)")
	f.StringVar(&p.Phone, "phone", "", "teléfono")
	f.StringVar(&p.Address, "address", "", "dirección")
	f.StringVar(&p.ClinicName, "clinic-name", "", "nombre de la clínica (veterinario)")
	f.StringVar(&p.ClinicPhone, "clinic-phone", "", "teléfono de la clínica (veterinario)")
	f.StringVar(&p.ClinicAddress, "clinic-address", "", "dirección de la clínica (veterinario)")
	f.StringVar(&p.Speciality, "speciality", "", "especialidad (veterinario)")
	f.StringVar(&p.RegistrationNumber, "registration", "", "nº de registro (veterinario)")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
