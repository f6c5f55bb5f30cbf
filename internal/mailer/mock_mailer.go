package mailer

type MockMailer struct {
	SendFunc func(recipient, templateFile string, data any) error

	Sent []string
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.Sent = append(m.Sent, templateFile)

	if m.SendFunc != nil {
		return m.SendFunc(recipient, templateFile, data)
	}

	return nil
}
