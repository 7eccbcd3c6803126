package utils

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
)

// SendSMS pushes an order confirmation text through the configured SMS
// gateway. A missing gateway URL disables the notification.
func SendSMS(phone, message string) error {
	gatewayURL := os.Getenv("SMS_GATEWAY_URL")
	apiKey := os.Getenv("SMS_API_KEY")
	if gatewayURL == "" {
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("apiKey", apiKey).
		SetFormData(map[string]string{
			"username": os.Getenv("SMS_USERNAME"),
			"to":       phone,
			"message":  message,
			"from":     os.Getenv("SMS_SENDER_ID"),
		}).
		Post(gatewayURL)

	if err != nil {
		return err
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}
