package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// InitSES prepares the shared SES client. Emails fail until this is called.
func InitSES() error {
	region := os.Getenv("SES_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "ap-southeast-1"
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	sesClient = ses.NewFromConfig(cfg)
	return nil
}

func sendEmail(to, subject, body string) error {
	if sesClient == nil {
		return fmt.Errorf("ses client not initialised")
	}

	sender := os.Getenv("SES_SENDER")
	if sender == "" {
		return fmt.Errorf("SES_SENDER not configured")
	}

	_, err := sesClient.SendEmail(context.TODO(), &ses.SendEmailInput{
		Source: aws.String(sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

func SendMFAEmail(to, code string) error {
	body := fmt.Sprintf("Kode verifikasi Anda adalah %s. Kode berlaku selama 10 menit.", code)
	return sendEmail(to, "Kode Verifikasi Login", body)
}

func SendResetEmail(to, code string) error {
	body := fmt.Sprintf("Gunakan kode berikut untuk mengatur ulang kata sandi Anda: %s. Kode berlaku selama 15 menit.", code)
	return sendEmail(to, "Atur Ulang Kata Sandi", body)
}
