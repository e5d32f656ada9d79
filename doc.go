// Package main provides the entry point for OrgDesk, a merchant dashboard in
// which organizations manage members and other plan-limited resources.
// Pages, menu entries and controls are shown, hidden or disabled depending on
// the permissions of the user's role, and creation controls are disabled once
// the subscription limit of a resource kind is reached.
package main
