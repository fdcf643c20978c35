package cli

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"myvet/internal/session"
)

func (r *runner) vetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Herramientas del veterinario",
	}

	me := &cobra.Command{
		Use:   "me",
		Short: "Muestra tu perfil de veterinario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleVet); err != nil {
				return err
			}
			p, err := r.app.Vet.Me(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, p, func(tw *tabwriter.Writer) {
				fprintRow(tw, "nombre", dash(p.Name))
				fprintRow(tw, "email", dash(p.Email))
				fprintRow(tw, "teléfono", dash(p.Phone))
				fprintRow(tw, "dirección", dash(p.Address))
				fprintRow(tw, "clínica", dash(p.ClinicName))
				fprintRow(tw, "teléfono clínica", dash(p.ClinicPhone))
				fprintRow(tw, "dirección clínica", dash(p.ClinicAddress))
				fprintRow(tw, "especialidad", dash(p.Speciality))
				fprintRow(tw, "nº registro", dash(p.RegistrationNumber))
			})
		},
	}

	owners := &cobra.Command{
		Use:   "owners",
		Short: "Lista los dueños",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleVet); err != nil {
				return err
			}
			list, err := r.app.Vet.Owners(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, list, func(tw *tabwriter.Writer) {
				fprintRow(tw, "ID", "NOMBRE", "EMAIL")
				for _, o := range list {
					fprintRow(tw, o.ID, dash(o.Name), o.Email)
				}
			})
		},
	}

	pets := &cobra.Command{
		Use:   "pets",
		Short: "Lista las mascotas de todos los dueños",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleVet); err != nil {
				return err
			}
			list, err := r.app.Vet.Pets(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, list, func(tw *tabwriter.Writer) {
				fprintRow(tw, "ID", "NOMBRE", "ESPECIE", "DUEÑO")
				for _, p := range list {
					fprintRow(tw, p.ID, p.Name, p.Species, dash(p.OwnerName))
				}
			})
		},
	}

	citas := &cobra.Command{
		Use:   "citas",
		Short: "Lista las citas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleVet); err != nil {
				return err
			}
			list, err := r.app.Vet.Appointments(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, list, func(tw *tabwriter.Writer) {
				fprintRow(tw, "ID", "FECHA", "MASCOTA", "DUEÑO", "ESTADO", "NOTAS")
				for _, c := range list {
					fprintRow(tw, c.ID, c.DateTimeISO, dash(c.PetName), dash(c.OwnerName), c.Status, dash(c.Notes))
				}
			})
		},
	}

	var estado, notas string
	status := &cobra.Command{
		Use:   "estado <cita-id>",
		Short: "Cambia el estado y/o las notas de una cita",
		Long: `Cambia el estado y/o las notas de una cita.

Estados: pendiente, en_curso, hecha.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleVet); err != nil {
				return err
			}
			c, err := r.app.Vet.UpdateAppointment(cmd.Context(), args[0], estado, notas).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Cita %s: %s\n", c.ID, c.Status)
			return nil
		},
	}
	status.Flags().StringVar(&estado, "estado", "", "pendiente|en_curso|hecha")
	status.Flags().StringVar(&notas, "notas", "", "notas clínicas")

	cmd.AddCommand(me, owners, pets, citas, status)
	return cmd
}
