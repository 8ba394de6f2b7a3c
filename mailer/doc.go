// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer sends organizer notifications over SMTP.

Notifications are fire-and-forget: handlers invoke them after the core
operation has committed, the mailer re-fetches the poll itself, and any
failure (poll gone, no author email, SMTP error) is logged and swallowed.
A notification can never reverse or fail a committed operation.
*/
package mailer
