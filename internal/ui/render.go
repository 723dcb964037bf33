package ui

import (
	"fmt"
	"strings"
)

// VerifyView is the render model for a verify report. All fields are
// pre-resolved observations; rendering never touches the filesystem.
type VerifyView struct {
	Target string

	Exists      bool
	IsDirectory bool

	// OwnerKnown is false when the filesystem does not report ownership;
	// UID and GID are meaningless then.
	OwnerKnown bool

	UID     int
	WantUID int
	GID     int
	WantGID int

	Mode     string
	WantMode string
}

// OK reports whether every check passed.
func (v VerifyView) OK() bool {
	return v.Exists && v.IsDirectory && v.OwnerKnown &&
		v.UID == v.WantUID && v.GID == v.WantGID &&
		v.Mode == v.WantMode
}

type check struct {
	name   string
	ok     bool
	detail string
}

func (v VerifyView) checks() []check {
	if !v.Exists {
		return []check{{name: "exists", ok: false, detail: "directory does not exist"}}
	}
	if !v.IsDirectory {
		return []check{
			{name: "exists", ok: true},
			{name: "directory", ok: false, detail: "entry is not a directory"},
		}
	}
	if !v.OwnerKnown {
		return []check{
			{name: "exists", ok: true},
			{name: "directory", ok: true},
			{name: "owner", ok: false, detail: "filesystem does not report ownership"},
			{name: "mode", ok: v.Mode == v.WantMode, detail: fmt.Sprintf("%s (want %s)", v.Mode, v.WantMode)},
		}
	}
	return []check{
		{name: "exists", ok: true},
		{name: "directory", ok: true},
		{name: "owner uid", ok: v.UID == v.WantUID, detail: fmt.Sprintf("%d (want %d)", v.UID, v.WantUID)},
		{name: "owner gid", ok: v.GID == v.WantGID, detail: fmt.Sprintf("%d (want %d)", v.GID, v.WantGID)},
		{name: "mode", ok: v.Mode == v.WantMode, detail: fmt.Sprintf("%s (want %s)", v.Mode, v.WantMode)},
	}
}

// RenderStyled renders the report with lipgloss styling for interactive
// terminals.
func RenderStyled(v VerifyView) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("inithome verify"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(v.Target))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("Checks"))
	sb.WriteString("\n")
	for _, c := range v.checks() {
		mark := readyStyle.Render(checkMark)
		if !c.ok {
			mark = failedStyle.Render(crossMark)
		}
		line := fmt.Sprintf("  %s %-10s", mark, c.name)
		if c.detail != "" {
			line += " " + dimStyle.Render(c.detail)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if v.OK() {
		sb.WriteString(readyStyle.Render("home directory is correctly provisioned"))
	} else {
		sb.WriteString(failedStyle.Render("home directory needs provisioning"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderPlain renders the report without styling, for logs and pipes.
func RenderPlain(v VerifyView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("inithome verify: %s\n", v.Target))
	for _, c := range v.checks() {
		mark := checkMark
		if !c.ok {
			mark = crossMark
		}
		if c.detail != "" {
			sb.WriteString(fmt.Sprintf("  %s %-10s %s\n", mark, c.name, c.detail))
		} else {
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, c.name))
		}
	}

	if v.OK() {
		sb.WriteString("result: correctly provisioned\n")
	} else {
		sb.WriteString("result: needs provisioning\n")
	}

	return sb.String()
}
