package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultServerURL = "http://localhost:8000"
	defaultKeyDir    = "keys"
	rsaBits          = 2048
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type step int

const (
	stepGeneratingKeys step = iota
	stepEnteringServerURL
	stepEnteringUsername
	stepEnteringEmail
	stepEnteringPassword
	stepRegistering
	stepComplete
)

type model struct {
	step         step
	serverURL    string
	username     string
	email        string
	password     string
	currentInput string
	message      string
	quitting     bool
}

type keysReadyMsg struct{ generated bool }
type registeredMsg struct{ userID string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{step: stepGeneratingKeys}
}

func (m model) Init() tea.Cmd {
	return ensureKeys
}

// ensureKeys writes the RS256 keypair the server signs tokens with,
// unless both files already exist.
func ensureKeys() tea.Msg {
	privPath := filepath.Join(defaultKeyDir, "jwt_rsa")
	pubPath := filepath.Join(defaultKeyDir, "jwt_rsa.pub")

	if fileExists(privPath) && fileExists(pubPath) {
		return keysReadyMsg{generated: false}
	}

	if err := os.MkdirAll(defaultKeyDir, 0o700); err != nil {
		return errMsg{err}
	}

	key, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return errMsg{err}
	}

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		return errMsg{err}
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return errMsg{err}
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
		return errMsg{err}
	}

	return keysReadyMsg{generated: true}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// registerAdmin creates the initial admin account against a running
// server.
func registerAdmin(serverURL, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]any{
			"username": username,
			"email":    email,
			"password": password,
			"role":     "admin",
		}
		body, _ := json.Marshal(payload)

		resp, err := http.Post(serverURL+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		var reply struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
			return errMsg{err}
		}
		if resp.StatusCode != http.StatusCreated {
			return errMsg{fmt.Errorf("register failed (%d): %s", resp.StatusCode, reply.Error.Message)}
		}
		return registeredMsg{userID: reply.Data.ID}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case keysReadyMsg:
		if msg.generated {
			m.message = "Generated RS256 keypair in ./" + defaultKeyDir
		} else {
			m.message = "Keypair already present, keeping it"
		}
		m.step = stepEnteringServerURL
		return m, nil

	case registeredMsg:
		m.message = "Admin account created (id " + msg.userID + ")"
		m.step = stepComplete
		return m, nil

	case errMsg:
		m.message = "Error: " + msg.Error()
		m.step = stepComplete
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.advance()

		case tea.KeyBackspace:
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
			return m, nil

		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				m.currentInput += msg.String()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m model) advance() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.currentInput)
	m.currentInput = ""

	switch m.step {
	case stepEnteringServerURL:
		if value == "" {
			value = defaultServerURL
		}
		m.serverURL = strings.TrimSuffix(value, "/")
		m.step = stepEnteringUsername

	case stepEnteringUsername:
		if value == "" {
			return m, nil
		}
		m.username = value
		m.step = stepEnteringEmail

	case stepEnteringEmail:
		m.email = value
		m.step = stepEnteringPassword

	case stepEnteringPassword:
		if value == "" {
			return m, nil
		}
		m.password = value
		m.step = stepRegistering
		return m, registerAdmin(m.serverURL, m.username, m.email, m.password)

	case stepComplete:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("vital-monitor server setup") + "\n")
	if m.message != "" {
		if strings.HasPrefix(m.message, "Error") {
			b.WriteString(errorStyle.Render(m.message) + "\n\n")
		} else {
			b.WriteString(successStyle.Render(m.message) + "\n\n")
		}
	}

	switch m.step {
	case stepGeneratingKeys:
		b.WriteString("Checking token keypair...\n")

	case stepEnteringServerURL:
		b.WriteString(promptStyle.Render("Server URL ") +
			dimStyle.Render("(default "+defaultServerURL+")") + "\n")
		b.WriteString(inputStyle.Render("> "+m.currentInput) + "\n")

	case stepEnteringUsername:
		b.WriteString(promptStyle.Render("Admin username") + "\n")
		b.WriteString(inputStyle.Render("> "+m.currentInput) + "\n")

	case stepEnteringEmail:
		b.WriteString(promptStyle.Render("Admin email ") + dimStyle.Render("(optional)") + "\n")
		b.WriteString(inputStyle.Render("> "+m.currentInput) + "\n")

	case stepEnteringPassword:
		b.WriteString(promptStyle.Render("Admin password") + "\n")
		b.WriteString(inputStyle.Render("> "+strings.Repeat("*", len(m.currentInput))) + "\n")

	case stepRegistering:
		b.WriteString("Registering admin account...\n")

	case stepComplete:
		b.WriteString(dimStyle.Render("Press enter to exit") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("esc to quit"))
	return b.String()
}

func main() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
}
