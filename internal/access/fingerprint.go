// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
)

// DeviceFingerprint assembles a coarse identifier for the machine the
// attempt came from: platform, hostname, and OS account. It is descriptive
// context for ledger entries, not an authentication factor.
func DeviceFingerprint() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	username := "unknown-user"
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	}

	return fmt.Sprintf("%s/%s | %s | %s", runtime.GOOS, runtime.GOARCH, hostname, username)
}
