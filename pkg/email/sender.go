package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"sync"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(input SendEmailInput) error
}

// TemplatesDir is where GenerateBodyFromHTML looks up template files.
var TemplatesDir = "./templates/"

// parsed templates keyed by full path; workers render the same few templates repeatedly
var templates sync.Map

func (e *SendEmailInput) GenerateBodyFromHTML(templateFileName string, data interface{}) error {
	t, err := loadTemplate(TemplatesDir + templateFileName)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}

func loadTemplate(path string) (*template.Template, error) {
	if t, ok := templates.Load(path); ok {
		return t.(*template.Template), nil
	}

	t, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse file failed: %w", err)
	}

	actual, _ := templates.LoadOrStore(path, t)
	return actual.(*template.Template), nil
}
