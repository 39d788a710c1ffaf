package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(from string) (*ResendMailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &ResendMailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendOTPEmail delivers a one-time code. otpType is "registration" or
// "login" and only changes the wording.
func (m *ResendMailer) SendOTPEmail(
	ctx context.Context,
	to string,
	name string,
	otp string,
	otpType string,
) error {
	subject := "Your login code"
	intro := "Use this code to sign in to the scheme portal:"
	if otpType == "registration" {
		subject = "Verify your registration"
		intro = "Use this code to complete your registration:"
	}
	if name == "" {
		name = "there"
	}

	body := sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>%s</p>
			<p style="font-size:24px;letter-spacing:4px"><b>%s</b></p>
			<p>The code expires in 10 minutes. If you did not request it, ignore this mail.</p>
		`, name, intro, otp),
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send otp email: " + buf.String(),
		)
	}

	return nil
}
