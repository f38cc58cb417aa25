// Package workspace models cloud workspaces as shown on dashboard cards and
// runs the stop/delete/restore actions behind a confirmation step.
package workspace

import (
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"studiodash/internal/i18n"
)

// WorkingStatus is the lifecycle state reported by the workspace API.
// Values other than the named constants are kept verbatim.
type WorkingStatus string

const (
	StatusOnline  WorkingStatus = "Online"
	StatusOffline WorkingStatus = "Offline"
	StatusInvalid WorkingStatus = "Invalid"
)

// Workspace is one remote development environment.
type Workspace struct {
	SpaceKey         string
	OwnerName        string
	ProjectName      string
	OwnerGlobalKey   string
	WorkingStatus    WorkingStatus
	Collaborative    bool
	CreateDate       time.Time
	LastModifiedDate time.Time
	DeleteTime       time.Time
}

// Card is the derived, read-only state a dashboard card renders.
// It is rebuilt from the caller's list on every fetch and never mutated.
type Card struct {
	Workspace
	// ViewerGlobalKey identifies who is looking at the dashboard.
	ViewerGlobalKey string
	// HasWSOpened is set when some workspace is already open for the viewer.
	HasWSOpened bool
	// OpenedSpaceKey is the key of that open workspace, if known.
	OpenedSpaceKey string
}

// Invalid reports whether the workspace is deleted (restorable only).
func (c Card) Invalid() bool {
	return c.WorkingStatus == StatusInvalid
}

// Online reports whether the workspace is running.
func (c Card) Online() bool {
	return c.WorkingStatus == StatusOnline
}

// OwnedByViewer reports whether the viewer owns the workspace.
func (c Card) OwnedByViewer() bool {
	return c.ViewerGlobalKey != "" && c.ViewerGlobalKey == c.OwnerGlobalKey
}

// ShowStop reports whether the stop control is visible.
func (c Card) ShowStop() bool {
	return c.Online() && c.OwnedByViewer()
}

// ShowDelete reports whether the delete control is visible.
func (c Card) ShowDelete() bool {
	return !c.Invalid()
}

// ShowRestore reports whether the restore control is visible.
func (c Card) ShowRestore() bool {
	return c.Invalid()
}

// CannotOpen reports whether opening this card must first stop the workspace
// that is already open.
func (c Card) CannotOpen() bool {
	return c.HasWSOpened && (!c.Online() || !c.OwnedByViewer())
}

// Allows reports whether action a is offered for this card.
func (c Card) Allows(a Action) bool {
	switch a {
	case ActionStop:
		return c.ShowStop()
	case ActionDelete:
		return c.ShowDelete()
	case ActionRestore:
		return c.ShowRestore()
	case ActionStopAndOpen:
		return !c.Invalid() && c.CannotOpen()
	default:
		return false
	}
}

// StopKey is the workspace key a stop request targets: the already open
// workspace when known, else this one.
func (c Card) StopKey() string {
	if c.OpenedSpaceKey != "" {
		return c.OpenedSpaceKey
	}
	return c.SpaceKey
}

// Title is "owner/project".
func (c Card) Title() string {
	return c.OwnerName + "/" + c.ProjectName
}

// Tooltip is the title plus the creation time, when known.
func (c Card) Tooltip(tr i18n.Translator) string {
	if c.CreateDate.IsZero() {
		return c.Title()
	}
	return c.Title() + "\n" + tr.Tf("ws.createdAt", c.CreateDate.Local().Format("2006-01-02 15:04"))
}

// Description is the relative modified time, or the deleted time for
// invalid workspaces. Empty when the relevant time is unknown.
func (c Card) Description(tr i18n.Translator, now time.Time) string {
	if c.Invalid() {
		if c.DeleteTime.IsZero() {
			return ""
		}
		return tr.Tf("ws.deletedAt", humanize.RelTime(c.DeleteTime, now, "ago", "from now"))
	}
	if c.LastModifiedDate.IsZero() {
		return ""
	}
	return tr.Tf("ws.modifiedAt", humanize.RelTime(c.LastModifiedDate, now, "ago", "from now"))
}

// NavKind says what activating a card body does.
type NavKind int

const (
	// NavNone: dead card, nothing happens.
	NavNone NavKind = iota
	// NavOpen: open URL in a new browsing context.
	NavOpen
	// NavConfirmStop: show the "already open, stop it?" confirmation.
	NavConfirmStop
)

// Navigation is the outcome of activating a card body.
type Navigation struct {
	Kind NavKind
	URL  string
}

// Navigator builds workspace URLs.
type Navigator struct {
	// StudioOrigin hosts workspaces when the dashboard is embedded.
	StudioOrigin string
	// CurrentOrigin stands in for the page's own origin when the dashboard
	// runs top-level; relative workspace paths resolve against it.
	CurrentOrigin string
	// Embedded selects StudioOrigin unconditionally.
	Embedded bool
}

// URL returns the absolute workspace URL for spaceKey.
func (n Navigator) URL(spaceKey string) string {
	path := "/ws/" + url.PathEscape(spaceKey)
	origin := n.CurrentOrigin
	if n.Embedded || origin == "" {
		origin = n.StudioOrigin
	}
	return strings.TrimRight(origin, "/") + path
}

// Navigation resolves what activating the card body does. Invalid cards are
// dead even when another workspace is open.
func (c Card) Navigation(n Navigator) Navigation {
	switch {
	case c.Invalid():
		return Navigation{Kind: NavNone}
	case c.CannotOpen():
		return Navigation{Kind: NavConfirmStop}
	default:
		return Navigation{Kind: NavOpen, URL: n.URL(c.SpaceKey)}
	}
}

// OriginOf returns scheme://host of rawURL, or "" if it has none.
func OriginOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
