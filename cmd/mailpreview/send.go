package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/mailer"
	"github.com/dmitrymomot/mailpreview/pkg/preview"
	"github.com/dmitrymomot/mailpreview/pkg/relay"
)

var sendFlags struct {
	templateFlags
	to      string
	from    string
	subject string
}

var sendCmd = &cobra.Command{
	Use:   "send BODY --to ADDRESS",
	Short: "Render a template and send it",
	Long: `Send renders BODY like the render command and delivers it through the
transport selected by MAILER_TRANSPORT (smtp, resend, postmark or file).

The subject comes from --subject, then the body's frontmatter, then the
default "Email from EJS Template".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sendFlags.body = args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		in, err := sendFlags.read()
		if err != nil {
			return err
		}
		res, err := renderInput(cmd, preview.New(preview.WithLogger(log)), in)
		if err != nil {
			return err
		}

		sender, err := newSender(cfg, log)
		if err != nil {
			return err
		}
		svc := relay.New(mailer.New(sender, cfg.Mailer),
			relay.WithLogger(log),
			relay.WithTags(mailer.SimpleTags("cli")),
		)

		subject := sendFlags.subject
		if subject == "" {
			subject = res.Subject
		}
		out, err := svc.Send(cmd.Context(), relay.Request{
			HTML:      res.HTML,
			Recipient: sendFlags.to,
			Subject:   subject,
			Sender:    sendFlags.from,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Email sent successfully! Message ID: %s\n", out.MessageID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendFlags.register(sendCmd)
	sendCmd.Flags().StringVar(&sendFlags.to, "to", "", "recipient address")
	sendCmd.Flags().StringVar(&sendFlags.from, "from", "", "sender address (default from the transport config)")
	sendCmd.Flags().StringVar(&sendFlags.subject, "subject", "", "subject override")
	_ = sendCmd.MarkFlagRequired("to")
}
