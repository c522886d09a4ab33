// Package notify delivers one-time codes to members. The SMTP notifier is
// the production path; the log notifier backs local development, where the
// code shows up in the server log instead of a mailbox.
package notify
