// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3324)
  - DatabaseURL: connection string or sqlite path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - BaseURL: public base URL used in share and manage links (required)
  - Email: SMTP notification settings (env only)

# CLI Flags

	-p    Server port
	-d    Database URL
	-t    Database type
	-b    Base URL

# Environment Variables

Flags fall back to PORT, DATABASE_URL, DATABASE_TYPE, and BASE_URL.

Email notifications are configured purely from EMAIL_HOST, EMAIL_PORT,
EMAIL_HOST_USER, EMAIL_HOST_PASSWORD, EMAIL_USE_TLS, and
EMAIL_MESSAGE_FROM. Setting any of them requires setting all of them;
setting none disables outbound email.
*/
package cliparse
