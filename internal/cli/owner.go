package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"myvet/internal/owner"
	"myvet/internal/session"
)

func (r *runner) petsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pets",
		Aliases: []string{"mascotas"},
		Short:   "Mascotas del dueño",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista tus mascotas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			pl, err := r.app.Pets.ListPets(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			if pl.Stale {
				fmt.Fprintln(cmd.ErrOrStderr(), "Sin conexión: mostrando mascotas guardadas localmente.")
			}
			return render(cmd.OutOrStdout(), r.output, pl.Pets, func(tw *tabwriter.Writer) {
				fprintRow(tw, "ID", "NOMBRE", "ESPECIE", "RAZA", "NACIMIENTO", "SEXO")
				for _, p := range pl.Pets {
					fprintRow(tw, p.ID, p.Name, p.Species, dash(p.Breed), dash(p.BirthDate), dash(p.Sex))
				}
			})
		},
	}

	var in owner.PetInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Registra una mascota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			p, err := r.app.Pets.CreatePet(cmd.Context(), in).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Mascota registrada: %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	petFlags(add, &in.Name, &in.Species, &in.Breed, &in.BirthDate, &in.Sex)

	var upd owner.PetInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualiza datos de una mascota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			patch := owner.PetPatch{
				Name:      changed(cmd, "name", upd.Name),
				Species:   changed(cmd, "species", upd.Species),
				Breed:     changed(cmd, "breed", upd.Breed),
				BirthDate: changed(cmd, "birth-date", upd.BirthDate),
				Sex:       changed(cmd, "sex", upd.Sex),
			}
			p, err := r.app.Pets.UpdatePet(cmd.Context(), args[0], patch).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Mascota actualizada: %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	petFlags(update, &upd.Name, &upd.Species, &upd.Breed, &upd.BirthDate, &upd.Sex)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una mascota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			if _, err := r.app.Pets.DeletePet(cmd.Context(), args[0]).Unwrap(); err != nil {
				return err
			}
			r.print(cmd, "Mascota eliminada.\n")
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func petFlags(cmd *cobra.Command, name, species, breed, birth, sex *string) {
	f := cmd.Flags()
	f.StringVar(name, "name", "", "nombre")
	f.StringVar(species, "species", "", "especie (perro, gato, ...)")
	f.StringVar(breed, "breed", "", "raza")
	f.StringVar(birth, "birth-date", "", "fecha de nacimiento (YYYY-MM-DD)")
	f.StringVar(sex, "sex", "", "sexo")
}

// changed devuelve &v solo si el flag vino en la línea de comandos.
func changed(cmd *cobra.Command, flag, v string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

func (r *runner) citasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "citas",
		Aliases: []string{"appointments"},
		Short:   "Citas del dueño",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista tus citas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			citas, err := r.app.Owner.ListAppointments(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, citas, func(tw *tabwriter.Writer) {
				fprintRow(tw, "ID", "FECHA", "MOTIVO", "MASCOTA", "ESTADO")
				for _, c := range citas {
					fprintRow(tw, c.ID, c.DateTimeISO, c.Reason, c.PetID, dash(c.Status))
				}
			})
		},
	}

	var fecha, motivo, mascota string
	add := &cobra.Command{
		Use:   "add",
		Short: "Agenda una cita",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			c, err := r.app.Owner.CreateAppointment(cmd.Context(), fecha, motivo, mascota).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Cita agendada: %s %s (%s)\n", c.DateTimeISO, c.Reason, c.ID)
			return nil
		},
	}
	citaFlags(add, &fecha, &motivo, &mascota)

	var uFecha, uMotivo, uMascota string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Cambia fecha, motivo o mascota de una cita",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			patch := owner.AppointmentPatch{
				DateTimeISO: changed(cmd, "fecha", uFecha),
				Reason:      changed(cmd, "motivo", uMotivo),
				PetID:       changed(cmd, "mascota", uMascota),
			}
			c, err := r.app.Owner.UpdateAppointment(cmd.Context(), args[0], patch).Unwrap()
			if err != nil {
				return err
			}
			r.print(cmd, "Cita actualizada: %s %s (%s)\n", c.DateTimeISO, c.Reason, c.ID)
			return nil
		},
	}
	citaFlags(update, &uFecha, &uMotivo, &uMascota)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancela una cita",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(session.RoleOwner); err != nil {
				return err
			}
			if _, err := r.app.Owner.DeleteAppointment(cmd.Context(), args[0]).Unwrap(); err != nil {
				return err
			}
			r.print(cmd, "Cita cancelada.\n")
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func citaFlags(cmd *cobra.Command, fecha, motivo, mascota *string) {
	f := cmd.Flags()
	f.StringVar(fecha, "fecha", "", "fecha y hora (YYYY-MM-DDTHH:MM o RFC3339)")
	f.StringVar(motivo, "motivo", "", "motivo de la consulta")
	f.StringVar(mascota, "mascota", "", "id de la mascota")
}
