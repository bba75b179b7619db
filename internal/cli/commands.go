package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/godilite/jii-dashboard/internal/export"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
)

func parseQuestionID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("question id must be a positive integer, got %q", arg)
	}
	return id, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newExportCommand(rt *Runtime) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <view>",
		Short: "Write one view as CSV",
		Long: "Write one view as CSV. Views: participantes, asistencias, equipos_concurso, " +
			"actividades, respuestas_texto, calificaciones, promedios.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.close()

			table, err := svc.export.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.WriteCSV(w, table); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", table.Len(), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (stdout when empty, "auto" for the view's default name)`)
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if output == "auto" && len(args) == 1 {
			output = export.FileName(args[0])
		}
		return nil
	}
	return cmd
}

func newWordsCommand(rt *Runtime) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "words <question_id>",
		Short: "Most frequent meaningful words of an open question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}
			svc, err := rt.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.close()

			freq, err := svc.text.GetWordFrequencies(cmd.Context(), id, top)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "WORD\tCOUNT")
			for _, w := range freq.Words {
				fmt.Fprintf(tw, "%s\t%d\n", w.Word, w.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", textanalysis.DefaultTopN,
		fmt.Sprintf("number of words (%d-%d)", textanalysis.MinTopN, textanalysis.MaxTopN))
	return cmd
}

func newSentimentCommand(rt *Runtime) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "sentiment <question_id>",
		Short: "Classify the answers of an open question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}
			svc, err := rt.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.close()

			report, err := svc.text.GetSentiment(cmd.Context(), id, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d. %s\nmode: %s, responses: %d\n\n", report.QuestionID, report.QuestionText, report.Mode, report.Total)

			tw := newTable(out)
			fmt.Fprintln(tw, "LABEL\tCOUNT\tPERCENT")
			for _, s := range report.Shares {
				fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", s.Label, s.Count, s.Percent)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, label := range textanalysis.Labels {
				examples := report.Examples[label]
				if len(examples) == 0 {
					continue
				}
				fmt.Fprintf(out, "\n%s:\n", label)
				for _, ex := range examples {
					fmt.Fprintf(out, "  - %s: %q\n", ex.Participant, ex.Answer)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "basic or lexicon (configured default when empty)")
	return cmd
}

func newRatingsCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ratings",
		Short: "Per-question rating statistics, lowest mean first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.close()

			summaries, err := svc.survey.GetQuestionSummaries(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tMEAN\tMEDIAN\tMODE\tSTD\tN\tQUESTION")
			for _, q := range summaries {
				fmt.Fprintf(tw, "%d\t%.2f\t%.1f\t%.0f\t%.2f\t%d\t%s\n",
					q.QuestionID, q.Mean, q.Median, q.Mode, q.Std, q.Count, q.QuestionText)
			}
			return tw.Flush()
		},
	}
}

func newCategoriesCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Pooled mean rating per category, lowest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.close()

			scores, err := svc.survey.GetCategoryScores(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CATEGORY\tMEAN\tN\tQUESTIONS")
			for _, c := range scores {
				fmt.Fprintf(tw, "%s\t%.2f\t%d\t%v\n", c.Name, c.Mean, c.Count, c.QuestionIDs)
			}
			return tw.Flush()
		},
	}
}
