package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/upsell/internal/export"
	"github.com/theirongolddev/upsell/internal/notify"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	flagEmailTo      string
	flagEmailName    string
	flagEmailCompany string
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Email the analysis with the PDF report attached (simulated delivery)",
	RunE:  runEmail,
}

func init() {
	emailCmd.Flags().StringVar(&flagEmailTo, "to", "", "Recipient email address")
	emailCmd.Flags().StringVar(&flagEmailName, "name", "", "Recipient name")
	emailCmd.Flags().StringVar(&flagEmailCompany, "company", "", "Recipient company, also shown on the report")
	_ = emailCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(emailCmd)
}

func runEmail(cmd *cobra.Command, _ []string) error {
	req := notify.Request{Email: flagEmailTo, Name: flagEmailName, Company: flagEmailCompany}
	if err := req.Validate(); err != nil {
		return err
	}

	rep, err := buildReport(cmd)
	if err != nil {
		return err
	}

	opts := exportOptions()
	if flagEmailCompany != "" {
		opts.CompanyName = flagEmailCompany
	}
	pdf, err := export.PDF(rep, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	msg, err := notify.Compose(req, appCfg.Email.From, rep, pdf, filepath.Base(appCfg.Report.FileName))
	if err != nil {
		return err
	}

	delay := time.Duration(appCfg.Email.SimulateDelayMS) * time.Millisecond
	receipt, err := sendWithSpinner(notify.NewSimulated(delay), msg)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	fmt.Printf("  %s\n", notify.SuccessMessage)
	fmt.Printf("  To: %s\n", receipt.To)
	fmt.Printf("  Subject: %s\n", receipt.Subject)
	for _, a := range msg.Attachments {
		fmt.Printf("  Attachment: %s (%d KB)\n", a.FileName, (len(a.Content)+1023)/1024)
	}
	fmt.Printf("  Message ID: %s\n", receipt.ID)
	return nil
}

// sendWithSpinner delivers msg while a spinner runs on stderr.
func sendWithSpinner(m notify.Mailer, msg notify.Message) (notify.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("  Sending..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!flagQuiet),
	)

	type result struct {
		receipt notify.Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		r, err := m.Send(ctx, msg)
		done <- result{r, err}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case r := <-done:
			_ = bar.Finish()
			return r.receipt, r.err
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
