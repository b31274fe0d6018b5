// Package service contains background jobs and outbound integrations
package service

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers one-time verification codes over SMTP. All connection
// details are injected at construction, nothing is read from the environment
// at send time
type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func NewSMTPMailer(host string, port int, sender, password string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Sender:   sender,
		Password: password,
	}
}

func (s *SMTPMailer) SendOTP(sendTo string, otp int) error {
	if sendTo == s.Sender {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()

	m.SetHeader("From", s.Sender)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Verify your email to start using dormhub")
	m.SetBody("text/html", fmt.Sprintf(
		"Your verification code is <b>%d</b>.<br><br>It expires in 5 minutes.", otp))

	d := gomail.NewDialer(s.Host, s.Port, s.Sender, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}
