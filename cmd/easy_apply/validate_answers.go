package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/easy-apply/internal/answers"
	"github.com/jonathan/easy-apply/internal/resolve"
	"github.com/jonathan/easy-apply/internal/schemas"
)

var validateAnswersCmd = &cobra.Command{
	Use:   "validate-answers FILE",
	Short: "Check an answer store against the schema and the known keys",
	Long: `Validates an answer store file against its schema, then reports keys no resolver
reads, resolver keys the store leaves unset, and values a dropdown vocabulary does
not recognise. Unrecognised values are an error; everything else is informational.

--schema additionally checks the file against a stricter JSON Schema of your own,
for example one that makes the keys you rely on required.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateAnswers,
}

var (
	validateAnswersShowMissing bool
	validateAnswersSchema      string
)

func init() {
	validateAnswersCmd.Flags().BoolVar(&validateAnswersShowMissing, "show-missing", false, "List resolver keys the store does not set")
	validateAnswersCmd.Flags().StringVar(&validateAnswersSchema, "schema", "", "Extra JSON Schema file the store must also satisfy")

	rootCmd.AddCommand(validateAnswersCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runValidateAnswers(cmd *cobra.Command, args []string) error {
	store, err := answers.Load(args[0])
	if err != nil {
		return fmt.Errorf("invalid answer store: %w", err)
	}

	if validateAnswersSchema != "" {
		if err := validateAgainstSchema(validateAnswersSchema, args[0]); err != nil {
			return fmt.Errorf("answer store does not match %s: %w", validateAnswersSchema, err)
		}
	}

	out := cmd.OutOrStdout()
	audit := resolve.AuditStore(store)

	fmt.Fprintf(out, "Answer bank: %d keys, user assertions: %d keys\n", store.Bank.Len(), len(store.Assertions.Keys()))
	for _, key := range audit.UnknownBankKeys {
		fmt.Fprintf(out, "  ! answer_bank.%s is not read by any resolver\n", key)
	}
	for _, key := range audit.UnknownAssertionKeys {
		fmt.Fprintf(out, "  ! user_assertions.%s is not read by any resolver\n", key)
	}
	for _, key := range audit.InvalidKeys() {
		allowed, _ := resolve.AllowedValues(key)
		fmt.Fprintf(out, "  ✗ answer_bank.%s = %q (expected one of: %s)\n",
			key, audit.InvalidValues[key], strings.Join(allowed, ", "))
	}
	if validateAnswersShowMissing {
		for _, key := range audit.MissingBankKeys {
			fmt.Fprintf(out, "  - answer_bank.%s not set\n", key)
		}
	}

	if !audit.OK() {
		return fmt.Errorf("%d answer_bank values are not recognised", len(audit.InvalidValues))
	}
	fmt.Fprintf(out, "✓ Answer store is valid: %s\n", args[0])
	return nil
}

// validateAgainstSchema checks a store file against an external schema. JSON
// stores are validated in place; YAML stores are converted first.
func validateAgainstSchema(schemaPath, storePath string) error {
	if answers.FormatFromPath(storePath) == answers.FormatJSON {
		return schemas.ValidateJSON(schemaPath, storePath)
	}
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	doc, err := answers.ReadJSON(storePath)
	if err != nil {
		return err
	}
	return schemas.ValidateJSONString(string(schema), string(doc))
}
