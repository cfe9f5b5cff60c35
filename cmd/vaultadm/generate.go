package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/generator"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	generateLength    int
	generateCount     int
	generateNoUpper   bool
	generateNoDigits  bool
	generateNoSymbols bool
)

const maxGenerateCount = 100

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateLength, "length", "l", models.DefaultGeneratedLength,
		fmt.Sprintf("password length (%d-%d)", models.MinGeneratedLength, models.MaxGeneratedLength))
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of passwords to generate")
	generateCmd.Flags().BoolVar(&generateNoUpper, "no-upper", false, "exclude uppercase letters")
	generateCmd.Flags().BoolVar(&generateNoDigits, "no-digits", false, "exclude digits")
	generateCmd.Flags().BoolVar(&generateNoSymbols, "no-symbols", false, "exclude symbols")
}

var generateCmd = &cobra.Command{
	Use:         "generate",
	Short:       "Generate random passwords",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationOffline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateCount < 1 || generateCount > maxGenerateCount {
			return fmt.Errorf("count must be between 1 and %d", maxGenerateCount)
		}

		opts := models.GeneratorOptions{
			Length:     generateLength,
			UseUpper:   !generateNoUpper,
			UseDigits:  !generateNoDigits,
			UseSymbols: !generateNoSymbols,
		}

		g := generator.NewPasswordGenerator()
		for i := 0; i < generateCount; i++ {
			password, err := g.Generate(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), password)
		}

		return nil
	},
}
