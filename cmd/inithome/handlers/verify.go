package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/inithome/internal/provisioning"
	"github.com/imamik/inithome/internal/ui"
)

// VerifyStatus is the machine-readable verify report.
type VerifyStatus struct {
	Target      string `json:"target"`
	Exists      bool   `json:"exists"`
	IsDirectory bool   `json:"isDirectory"`
	OwnerKnown  bool   `json:"ownerKnown"`
	UID         int    `json:"uid"`
	GID         int    `json:"gid"`
	Mode        string `json:"mode"`
	WantUID     int    `json:"wantUid"`
	WantGID     int    `json:"wantGid"`
	WantMode    string `json:"wantMode"`
	OK          bool   `json:"ok"`
}

// Verify checks the home directory against the configuration without
// modifying anything and renders a report.
//
// The returned error is the verification mismatch itself, so the process
// exits with the verification exit code when the directory is not in the
// requested state.
func Verify(_ context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	req, err := cfg.ToRequest()
	if err != nil {
		return err
	}

	resolved, err := provisioning.Resolve(req)
	if err != nil {
		return err
	}

	state, err := provisioning.Stat(resolved.Target)
	if err != nil {
		return err
	}

	_, verifyErr := provisioning.Verify(resolved.Target, req)

	status := buildStatus(resolved.Target, state, req)
	if err := renderStatus(status, jsonOutput); err != nil {
		return err
	}

	return verifyErr
}

// buildStatus converts a filesystem snapshot into the report model.
func buildStatus(target string, state provisioning.FileState, req provisioning.ProvisionRequest) *VerifyStatus {
	status := &VerifyStatus{
		Target:      target,
		Exists:      state.Exists,
		IsDirectory: state.IsDirectory,
		OwnerKnown:  state.OwnerKnown,
		UID:         state.UID,
		GID:         state.GID,
		Mode:        fmt.Sprintf("%04o", uint32(state.Mode)),
		WantUID:     req.OwnerUID,
		WantGID:     req.OwnerGID,
		WantMode:    fmt.Sprintf("%04o", uint32(req.DirMode)),
	}
	// An unreported owner is a failed owner check, not a zero uid.
	status.OK = state.Exists && state.IsDirectory && state.OwnerKnown &&
		state.UID == req.OwnerUID && state.GID == req.OwnerGID &&
		state.Mode == req.DirMode
	return status
}

// renderStatus writes the report as JSON, styled text, or plain text.
func renderStatus(status *VerifyStatus, jsonOutput bool) error {
	if jsonOutput {
		return printStatusJSON(status)
	}

	view := ui.VerifyView{
		Target:      status.Target,
		Exists:      status.Exists,
		IsDirectory: status.IsDirectory,
		OwnerKnown:  status.OwnerKnown,
		UID:         status.UID,
		WantUID:     status.WantUID,
		GID:         status.GID,
		WantGID:     status.WantGID,
		Mode:        status.Mode,
		WantMode:    status.WantMode,
	}

	if isInteractiveTTY() {
		fmt.Print(ui.RenderStyled(view))
		return nil
	}

	fmt.Print(ui.RenderPlain(view))
	return nil
}

func printStatusJSON(status *VerifyStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
