package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agentcrm_site/internal/config"
	"agentcrm_site/internal/leadform"
	"agentcrm_site/internal/services"
)

var (
	formKind string
	fields   []string
	to       string
	mode     string
	timeout  time.Duration
)

// rootCmd submits one lead form through the configured delivery path
var rootCmd = &cobra.Command{
	Use:   "send_inquiry",
	Short: "Submit a partnership inquiry from the command line",
	Long: `Fill in one of the partnership forms and deliver it exactly as the
website would, using DELIVERY_MODE and the SMTP/WAHA settings from the
environment. Useful to check delivery credentials after a deploy.

Example:
  send_inquiry --form agency --field agencyName="Acme Insurance" \
    --field contactPerson="R. Sharma" --field email=r@acme.com`,
	SilenceUsage: true,
	RunE:         runSendInquiry,
}

func init() {
	rootCmd.Flags().StringVar(&formKind, "form", string(leadform.KindAgency), "Form to submit: agency, insurer or sales")
	rootCmd.Flags().StringArrayVar(&fields, "field", nil, "Field value as name=value (repeatable)")
	rootCmd.Flags().StringVar(&to, "to", "", "Override the recipient for this form")
	rootCmd.Flags().StringVar(&mode, "mode", "", "Override DELIVERY_MODE")
	rootCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "How long to wait for delivery")
}

// parseFields turns name=value pairs into values checked against schema
func parseFields(schema leadform.Schema, pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("field %q is not name=value", pair)
		}
		if _, known := schema.Field(name); !known {
			return nil, fmt.Errorf("form %s has no field %q", schema.Kind, name)
		}
		values[name] = value
	}
	return values, nil
}

func runSendInquiry(cmd *cobra.Command, args []string) error {
	schema, ok := leadform.SchemaFor(leadform.Kind(formKind))
	if !ok {
		return fmt.Errorf("unknown form %q", formKind)
	}

	values, err := parseFields(schema, fields)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if mode != "" {
		cfg.DeliveryMode = mode
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	deliverer, err := services.NewDeliverer(cfg)
	if err != nil {
		return err
	}

	recipient := to
	if recipient == "" {
		recipient = cfg.Recipients()[string(schema.Kind)]
	}

	form := leadform.New(schema, recipient, &services.LoggingDeliverer{Next: deliverer, Logger: logger})
	for name, value := range values {
		form.UpdateField(name, value)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	form.Submit(ctx)
	status, err := form.Wait(ctx)
	if err != nil {
		return fmt.Errorf("gave up waiting for delivery: %w", err)
	}

	if status == leadform.StatusError {
		logger.Error("Inquiry not delivered", zap.Error(form.Err()))
		return fmt.Errorf("%s", form.State().ErrorMessage)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s inquiry delivered to %s (%s)\n", schema.Kind, recipient, cfg.DeliveryMode)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
