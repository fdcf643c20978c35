package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"myvet/internal/prediagnosis"
)

func (r *runner) feedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Califica la app y revisa el promedio",
	}

	var rating int
	var suggestion string
	send := &cobra.Command{
		Use:   "send",
		Short: "Envía una calificación (1 a 5)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(""); err != nil {
				return err
			}
			if _, err := r.app.Feedback.Submit(cmd.Context(), rating, suggestion).Unwrap(); err != nil {
				return err
			}
			r.print(cmd, "¡Gracias por tu opinión!\n")
			return nil
		},
	}
	send.Flags().IntVar(&rating, "rating", 0, "calificación de 1 a 5")
	send.Flags().StringVar(&suggestion, "suggestion", "", "sugerencia (opcional)")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Promedio de calificaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(""); err != nil {
				return err
			}
			s, err := r.app.Feedback.Summary(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, s, func(tw *tabwriter.Writer) {
				fprintRow(tw, "promedio", fmt.Sprintf("%.1f", s.Avg))
				fprintRow(tw, "votos", strconv.Itoa(s.Count))
			})
		},
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "Tus calificaciones enviadas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(""); err != nil {
				return err
			}
			list, err := r.app.Feedback.Mine(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, list, func(tw *tabwriter.Writer) {
				fprintRow(tw, "FECHA", "NOTA", "SUGERENCIA")
				for _, f := range list {
					fprintRow(tw, dash(f.CreatedAt), strconv.Itoa(f.Rating), dash(f.Suggestion))
				}
			})
		},
	}

	cmd.AddCommand(send, summary, mine)
	return cmd
}

func (r *runner) prediagCmd() *cobra.Command {
	var in prediagnosis.Request
	cmd := &cobra.Command{
		Use:   "prediag",
		Short: "Orientación preliminar según síntomas",
		Long: `Orientación preliminar según síntomas.

No reemplaza la consulta veterinaria.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.require(""); err != nil {
				return err
			}
			res, err := r.app.Prediagnosis.Request(cmd.Context(), in).Unwrap()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), r.output, res, func(tw *tabwriter.Writer) {
				fprintRow(tw, "recomendaciones", res.Recommendations)
				fprintRow(tw, "señales de alerta", dash(res.RedFlags))
				fprintRow(tw, "aviso", res.Disclaimer)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Symptoms, "sintomas", "", "síntomas observados (obligatorio)")
	f.StringVar(&in.Species, "especie", "", "especie")
	f.StringVar(&in.Age, "edad", "", "edad")
	f.StringVar(&in.Sex, "sexo", "", "sexo")
	return cmd
}
