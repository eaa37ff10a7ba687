package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// TokenEnvVars lists the environment variables consulted for an API
// token, in precedence order. The scoped keys come first so CI jobs
// holding both a read-all and a dns-only token get the broader one; the
// generic name is kept for compatibility with other Cloudflare tooling.
var TokenEnvVars = []string{
	"CLOUDFLARE_API_KEY_READ_ALL",
	"CLOUDFLARE_API_KEY_DNS_ONLY",
	"CLOUDFLARE_API_TOKEN",
}

// Credential is a resolved API token plus where it came from. Source is
// "flag", the environment variable name, "keyring", or "prompt".
type Credential struct {
	Token  string
	Source string
}

// CredentialError signals a missing or unusable credential. It carries
// exit code 2 so scripts can tell configuration problems apart from
// reconciliation failures.
type CredentialError struct {
	Provider string
	Hint     string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("no credential for provider %q: %s", e.Provider, e.Hint)
}

func (e *CredentialError) ExitCode() int { return 2 }

// PromptFunc reads a secret interactively.
type PromptFunc func(label string) (string, error)

// TerminalPrompt reads a secret from the terminal without echo. It
// refuses to prompt when stdin is not a TTY, so piped invocations fail
// fast instead of hanging.
func TerminalPrompt(label string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// ResolveToken walks the credential chain: the explicit flag value, the
// TokenEnvVars in order, the keyring, then an interactive prompt. prompt
// may be nil to disable prompting in non-interactive contexts. The
// caller receives either a nonempty token or a CredentialError.
func ResolveToken(provider, flagToken string, store Store, prompt PromptFunc) (Credential, error) {
	if token := strings.TrimSpace(flagToken); token != "" {
		return Credential{Token: token, Source: "flag"}, nil
	}

	for _, name := range TokenEnvVars {
		if token := strings.TrimSpace(os.Getenv(name)); token != "" {
			return Credential{Token: token, Source: name}, nil
		}
	}

	if store != nil {
		token, err := store.GetToken(provider)
		if err != nil && !errors.Is(err, ErrTokenNotFound) {
			return Credential{}, fmt.Errorf("keyring lookup failed: %w", err)
		}
		if token = strings.TrimSpace(token); token != "" {
			return Credential{Token: token, Source: "keyring"}, nil
		}
	}

	if prompt != nil {
		token, err := prompt("Enter API token: ")
		if err == nil && token != "" {
			return Credential{Token: token, Source: "prompt"}, nil
		}
	}

	return Credential{}, &CredentialError{
		Provider: provider,
		Hint: fmt.Sprintf("pass --token, set %s, or run `zonectl auth login %s`",
			strings.Join(TokenEnvVars, " / "), provider),
	}
}
