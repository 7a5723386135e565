// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xlsdg/flowerpass/internal/i18n"
	"github.com/xlsdg/flowerpass/internal/security"
)

// promptMasterPassword reads the master password from stdin. On a terminal
// the input is hidden unless --show-password was given; when stdin is a pipe
// the first line is read as-is so the command stays scriptable.
func promptMasterPassword(cmd *cobra.Command) (security.Secret, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) && !showPassword {
		fmt.Fprint(cmd.OutOrStdout(), i18n.T("code.prompt_master"))
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return nil, err
		}
		s := security.FromBytes(raw)
		for i := range raw {
			raw[i] = 0
		}
		return s, nil
	}

	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), i18n.T("code.prompt_master"))
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return security.FromString(strings.TrimRight(line, "\r\n")), nil
}

// confirm asks a yes/no question on the command's input stream. It treats
// both English and German affirmatives as yes.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}
