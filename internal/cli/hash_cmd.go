// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// hash_cmd.go - Hashed credential generation for the allow-list file.
//
// Command: hash-secret
// Short:   Generate a PBKDF2 credential entry for credentials.toml
//
// The secret is read from the terminal without echo. Output is a TOML
// fragment ready to paste into the allow-list, so the file never has to
// carry a plaintext secret.
package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/asetha/stegvault-tui/internal/credstore"
)

// HandleHashSecret generates a salted PBKDF2 entry for the allow-list.
func HandleHashSecret(args Args) error {
	login := args.Subcommand
	if login == "" {
		fmt.Print("Login name: ")
		if _, err := fmt.Scanln(&login); err != nil {
			return fmt.Errorf("read login name: %w", err)
		}
	}
	login = strings.TrimSpace(login)
	if login == "" {
		return fmt.Errorf("login name is required")
	}

	secret, err := readSecret("Secret: ")
	if err != nil {
		return err
	}
	confirm, err := readSecret("Confirm: ")
	if err != nil {
		return err
	}
	if secret != confirm {
		return fmt.Errorf("secrets do not match")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	fmt.Println("\n[[identities]]")
	fmt.Printf("login = %q\n", login)
	fmt.Printf("secret_hash = %q\n", credstore.HashSecret(secret, salt))
	fmt.Printf("salt = %q\n", hex.EncodeToString(salt))
	return nil
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	if !IsTTY() {
		var s string
		if _, err := fmt.Scanln(&s); err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return s, nil
	}
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(raw), nil
}
