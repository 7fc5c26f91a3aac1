package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/pontusbot/app/catalog"
	"github.com/m3rciful/pontusbot/app/menu"
)

// State is a screen of the conversation.
type State string

// Screens reachable through commands and actions.
const (
	StateWelcome        State = "welcome"
	StateHelpRoot       State = "help_root"
	StateHelpGeneral    State = "help_general"
	StateHelpFiles      State = "help_files"
	StateHelpManagement State = "help_management"
	StateAbout          State = "about"
	StateFileList       State = "file_list"
	StateEntrySummary   State = "entry_summary"
	StateVariantDetail  State = "variant_detail"
)

var staticActions = map[string]State{
	menu.ActionStart:      StateWelcome,
	menu.ActionHelp:       StateHelpRoot,
	menu.ActionAbout:      StateAbout,
	menu.ActionGeneral:    StateHelpGeneral,
	menu.ActionHelpFiles:  StateHelpFiles,
	menu.ActionManagement: StateHelpManagement,
	menu.ActionFiles:      StateFileList,
}

// StaticActions lists the callback actions without parameters.
func StaticActions() []string {
	return []string{
		menu.ActionHelp,
		menu.ActionStart,
		menu.ActionGeneral,
		menu.ActionAbout,
		menu.ActionHelpFiles,
		menu.ActionManagement,
		menu.ActionFiles,
	}
}

// Target is a parsed navigation request.
type Target struct {
	State   State
	EntryID string
	Arch    string
}

// ParseAction decodes callback data. Variant actions are split at the last
// separator because entry ids may contain it while architectures may not.
func ParseAction(data string) (Target, error) {
	if st, ok := staticActions[data]; ok {
		return Target{State: st}, nil
	}
	switch {
	case strings.HasPrefix(data, catalog.DownloadPrefix):
		id := strings.TrimPrefix(data, catalog.DownloadPrefix)
		if id == "" {
			break
		}
		return Target{State: StateEntrySummary, EntryID: id}, nil
	case strings.HasPrefix(data, catalog.ArchPrefix):
		rest := strings.TrimPrefix(data, catalog.ArchPrefix)
		i := strings.LastIndex(rest, catalog.ActionSeparator)
		if i <= 0 || i == len(rest)-len(catalog.ActionSeparator) {
			break
		}
		return Target{
			State:   StateVariantDetail,
			EntryID: rest[:i],
			Arch:    rest[i+len(catalog.ActionSeparator):],
		}, nil
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnknownAction, data)
}

// ParseFilesArgs decodes the arguments of /files.
func ParseFilesArgs(args []string) (Target, error) {
	switch {
	case len(args) == 1 && strings.EqualFold(args[0], "list"):
		return Target{State: StateFileList}, nil
	case len(args) == 2 && strings.EqualFold(args[0], "get") && args[1] != "":
		return Target{State: StateEntrySummary, EntryID: args[1]}, nil
	}
	return Target{}, fmt.Errorf("%w: /files %s", ErrInvalidCommand, strings.Join(args, " "))
}

var (
	// ErrUnknownAction is returned for callback data no screen answers to.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidCommand is returned for /files with unsupported arguments.
	ErrInvalidCommand = errors.New("invalid command syntax")
	// ErrEntryNotFound means no catalog entry has the requested id.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrVariantNotFound means the entry has no variant with the requested architecture.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrDelivery wraps failures to read or upload a local file.
	ErrDelivery = errors.New("delivery failed")
)
