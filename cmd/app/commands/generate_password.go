package commands

import (
	"fmt"
	"strconv"

	vaultService "github.com/allisson/credvault/internal/vault/service"
)

// RunGeneratePassword prints a random password. When length is zero it is prompted for,
// and a blank or unparseable answer falls back to defaultLength.
func RunGeneratePassword(
	generator vaultService.PasswordGenerator,
	io IOTuple,
	length int,
	defaultLength int,
) error {
	w := io.Writer

	_, _ = fmt.Fprintln(w, "Generate Secure Password")
	_, _ = fmt.Fprintln(w, "========================")

	if length == 0 {
		answer, err := newPrompter(io).line(fmt.Sprintf("Enter password length (default %d): ", defaultLength))
		if err != nil {
			answer = ""
		}
		length = defaultLength
		if n, convErr := strconv.Atoi(answer); convErr == nil && n > 0 {
			length = n
		}
	}

	password, err := generator.Generate(length)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Generated password: %s\n", password)
	_, _ = fmt.Fprintln(w, "Use it as your master password or app password.")

	return nil
}
