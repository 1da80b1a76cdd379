package cmd

import (
	"errors"
	"os"

	"github.com/howeyc/gopass"
)

// promptPassword reads a password from the terminal, without echo
var promptPassword = func(prompt string) (string, error) {
	b, err := gopass.GetPasswdPrompt(prompt, true, os.Stdin, os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// passwordOrPrompt yields the password given as flag or config, or prompts for it
func passwordOrPrompt(prompt string) (string, error) {
	if dydraFlags.root.password != "" {
		return dydraFlags.root.password, nil
	}
	password, err := promptPassword(prompt)
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errors.New("a password is required")
	}
	return password, nil
}
