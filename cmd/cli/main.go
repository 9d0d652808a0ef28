package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"titanic/adapters/predictapi"
	"titanic/app"
	"titanic/domain/passenger"
	"titanic/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// presentedError marks an error the terminal presenter already showed
type presentedError struct{ err error }

func (e presentedError) Error() string { return e.err.Error() }
func (e presentedError) Unwrap() error { return e.err }

func main() {
	_ = godotenv.Load()

	var backend, profilePath string
	var timeout time.Duration

	rootCmd := &cobra.Command{
		Use:           "titanic-cli",
		Short:         "Ask the Titanic survival model from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Prediction backend origin (default $BACKEND_URL or "+config.DefaultBackendOrigin+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout, 0 for none")
	rootCmd.PersistentFlags().StringVar(&profilePath, "config", "", "Profile file (default ./"+DefaultProfileFile+" or ~/"+DefaultProfileFile+")")

	profiles := func() (*ProfileFile, error) { return loadProfiles(profilePath) }

	// The flag wins, then the profile file, then $BACKEND_URL
	target := func(pf *ProfileFile) (string, time.Duration) {
		fallback := os.Getenv("BACKEND_URL")
		if pf != nil && pf.Backend != "" {
			fallback = pf.Backend
		}
		return config.ResolveBackendOrigin(backend, fallback), timeout
	}

	rootCmd.AddCommand(
		newSingleCmd(profiles, target),
		newCompareCmd(profiles, target),
		newHealthCmd(profiles, target),
	)

	if err := rootCmd.Execute(); err != nil {
		var presented presentedError
		if !stderrors.As(err, &presented) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type (
	profilesFunc func() (*ProfileFile, error)
	targetFunc   func(pf *ProfileFile) (origin string, timeout time.Duration)
)

func newSingleCmd(profiles profilesFunc, target targetFunc) *cobra.Command {
	var f passenger.Fields
	var name string

	cmd := &cobra.Command{
		Use:   "single",
		Short: "Predict survival for one passenger",
		Long: `Predict the survival probability of one passenger, given by flags or by the
name of a passenger stored in the profile file.

Example: titanic-cli single --pclass 1 --sex female --age 29 --fare 211.34 --embarked S
         titanic-cli single --passenger rose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := profiles()
			if err != nil {
				return err
			}
			if name != "" {
				if f, err = pf.Passenger(name); err != nil {
					return err
				}
			}
			f.Sex = normalizeSex(f.Sex)
			origin, timeout := target(pf)
			controller := app.NewPredictorController(predictapi.Factory(timeout).Predictors())
			page := app.NewPageSession(origin, "dark")

			out := newTerminalPresenter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := controller.PredictSurvival(cmd.Context(), page, f, out); err != nil {
				return presentedError{err}
			}
			return nil
		},
	}

	bindPassengerFlags(cmd, &f, "")
	cmd.Flags().StringVar(&name, "passenger", "", "Name of a passenger in the profile file")
	return cmd
}

func newCompareCmd(profiles profilesFunc, target targetFunc) *cobra.Command {
	var p1, p2 string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the survival chances of two passengers",
		Long: `Compare two passengers side by side. Each person is either a comma separated list
of key=value pairs using pclass, sex, age, sibsp, parch, fare and embarked, or the name
of a passenger stored in the profile file.

Example: titanic-cli compare --p1 "pclass=1,sex=0,age=29,fare=211" --p2 "pclass=3,sex=1,age=29,fare=7.9"
         titanic-cli compare --p1 rose --p2 jack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := profiles()
			if err != nil {
				return err
			}
			f1, err := pf.Passenger(p1)
			if err != nil {
				return fmt.Errorf("--p1: %w", err)
			}
			f2, err := pf.Passenger(p2)
			if err != nil {
				return fmt.Errorf("--p2: %w", err)
			}
			f1.Sex, f2.Sex = normalizeSex(f1.Sex), normalizeSex(f2.Sex)

			origin, timeout := target(pf)
			controller := app.NewPredictorController(predictapi.Factory(timeout).Predictors())
			page := app.NewPageSession(origin, "dark")

			out := newTerminalPresenter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := controller.ComparePredictions(cmd.Context(), page, f1, f2, out); err != nil {
				return presentedError{err}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&p1, "p1", "", "Person 1 as key=value pairs or a profile name")
	cmd.Flags().StringVar(&p2, "p2", "", "Person 2 as key=value pairs or a profile name")
	_ = cmd.MarkFlagRequired("p1")
	_ = cmd.MarkFlagRequired("p2")
	return cmd
}

func newHealthCmd(profiles profilesFunc, target targetFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the prediction backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := profiles()
			if err != nil {
				return err
			}
			origin, timeout := target(pf)
			if err := predictapi.NewClient(origin, timeout).Health(cmd.Context()); err != nil {
				return fmt.Errorf("backend at %s is unavailable: %w", origin, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backend at %s is healthy\n", origin)
			return nil
		},
	}
}

func bindPassengerFlags(cmd *cobra.Command, f *passenger.Fields, prefix string) {
	cmd.Flags().StringVar(&f.Pclass, prefix+"pclass", "3", "Ticket class (1, 2 or 3)")
	cmd.Flags().StringVar(&f.Sex, prefix+"sex", "male", "Sex (female/male or 0/1)")
	cmd.Flags().StringVar(&f.Age, prefix+"age", "", "Age in years")
	cmd.Flags().StringVar(&f.Sibsp, prefix+"sibsp", "0", "Siblings and spouses aboard")
	cmd.Flags().StringVar(&f.Parch, prefix+"parch", "0", "Parents and children aboard")
	cmd.Flags().StringVar(&f.Fare, prefix+"fare", "", "Ticket fare in pounds")
	cmd.Flags().StringVar(&f.Embarked, prefix+"embarked", passenger.DefaultEmbarked, "Port of embarkation (S, C or Q)")
}

// normalizeSex accepts the words the form shows as well as the encoded values
func normalizeSex(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		return "0"
	case "male", "m":
		return "1"
	}
	return s
}
