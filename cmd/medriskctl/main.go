// Command medriskctl runs the analysis pipeline against a local
// reference directory and prints the JSON report.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/pipeline"
	"github.com/giygas/medrisk-api/referenceloader"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/validation"
)

type globalFlags struct {
	referenceDir  string
	scheme        string
	conditionMode string
}

type patientFlags struct {
	age        int
	weight     float64
	gender     string
	conditions []string
	current    []string
}

func (p *patientFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.age, "age", entities.DefaultAge, "Patient age in years")
	cmd.Flags().Float64Var(&p.weight, "weight", entities.DefaultWeight, "Patient weight in kg")
	cmd.Flags().StringVar(&p.gender, "gender", "", "Patient gender (male, female, other)")
	cmd.Flags().StringSliceVar(&p.conditions, "condition", nil, "Chronic condition (repeatable)")
	cmd.Flags().StringSliceVar(&p.current, "current", nil, "Current medication (repeatable)")
}

func (p *patientFlags) profile() entities.PatientProfile {
	return entities.PatientProfile{
		Age:                p.age,
		Weight:             p.weight,
		Gender:             entities.ParseGender(p.gender),
		ChronicConditions:  p.conditions,
		CurrentMedications: p.current,
	}
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "medriskctl",
		Short:        "Resolve medicines and symptoms and score their risk",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&g.referenceDir, "reference-dir", envOr("REFERENCE_DIR", "reference"), "Directory holding the reference tables")
	rootCmd.PersistentFlags().StringVar(&g.scheme, "scheme", envOr("SCORING_SCHEME", "standard"), "Scoring scheme (standard, weighted)")
	rootCmd.PersistentFlags().StringVar(&g.conditionMode, "condition-mode", envOr("CONDITION_MODE", "proportional"), "Condition matching mode (proportional, weighted)")

	rootCmd.AddCommand(resolveCmd(g))
	rootCmd.AddCommand(searchCmd(g))
	rootCmd.AddCommand(interactionsCmd(g))
	rootCmd.AddCommand(sideEffectsCmd(g))
	rootCmd.AddCommand(symptomsCmd(g))
	return rootCmd
}

func resolveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <medicine>",
		Short: "Resolve one medicine name against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := g.orchestrator()
			if err != nil {
				return err
			}
			res, err := o.ValidateMedicine(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func searchCmd(g *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the medicine catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := g.orchestrator()
			if err != nil {
				return err
			}
			res, err := o.SearchMedicines(args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of results")
	return cmd
}

func interactionsCmd(g *globalFlags) *cobra.Command {
	p := &patientFlags{}
	cmd := &cobra.Command{
		Use:   "interactions <medicine> <medicine> [medicine...]",
		Short: "Check pairwise interactions and score the drug risk",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := g.orchestrator()
			if err != nil {
				return err
			}
			res, err := o.CheckInteractions(pipeline.InteractionRequest{Medicines: args, Patient: p.profile()})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	p.bind(cmd)
	return cmd
}

func sideEffectsCmd(g *globalFlags) *cobra.Command {
	p := &patientFlags{}
	cmd := &cobra.Command{
		Use:   "side-effects <medicine>",
		Short: "Predict side effects for one medicine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := g.orchestrator()
			if err != nil {
				return err
			}
			res, err := o.PredictSideEffects(pipeline.SideEffectRequest{Medicine: args[0], Patient: p.profile()})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	p.bind(cmd)
	return cmd
}

func symptomsCmd(g *globalFlags) *cobra.Command {
	p := &patientFlags{}
	var duration string
	cmd := &cobra.Command{
		Use:   "symptoms <symptom> [symptom...]",
		Short: "Resolve symptoms, match conditions and score the risk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := g.orchestrator()
			if err != nil {
				return err
			}
			res, err := o.AnalyzeSymptoms(pipeline.SymptomRequest{Symptoms: args, Patient: p.profile(), Duration: duration})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	p.bind(cmd)
	cmd.Flags().StringVar(&duration, "duration", "", "How long the symptoms have lasted")
	return cmd
}

// orchestrator loads and checks the reference tables once per command.
func (g *globalFlags) orchestrator() (*pipeline.Orchestrator, error) {
	opts, err := pipeline.ParseOptions(g.scheme, g.conditionMode)
	if err != nil {
		return nil, err
	}

	tables, err := referenceloader.NewLoader(g.referenceDir).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	if err := validation.NewDataValidator().ValidateDataIntegrity(tables); err != nil {
		return nil, fmt.Errorf("reference data rejected: %w", err)
	}

	dc := data.NewDataContainer()
	dc.UpdateSnapshot(data.NewSnapshot(tables))
	return pipeline.New(dc, opts), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
