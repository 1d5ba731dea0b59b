package report

import (
	"github.com/leeguoo/extcheck/internal/editor"
	"github.com/leeguoo/extcheck/internal/extensions"
)

// Document is the machine-readable form of a check.
type Document struct {
	Editors []editor.Name  `json:"editors" yaml:"editors"`
	Results []EditorResult `json:"results" yaml:"results"`
	OK      bool           `json:"ok" yaml:"ok"`
	// Installs is set by the install command.
	Installs []InstallEntry `json:"installs,omitempty" yaml:"installs,omitempty"`
}

// InstallEntry is one install attempt in a Document.
type InstallEntry struct {
	Editor    editor.Name `json:"editor" yaml:"editor"`
	Extension string      `json:"extension" yaml:"extension"`
	OK        bool        `json:"ok" yaml:"ok"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewInstallEntries converts install results. It returns nil for none.
func NewInstallEntries(results []extensions.InstallResult) []InstallEntry {
	if len(results) == 0 {
		return nil
	}
	out := make([]InstallEntry, 0, len(results))
	for _, r := range results {
		e := InstallEntry{Editor: r.Editor, Extension: r.Extension, OK: r.OK()}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		out = append(out, e)
	}
	return out
}

// EditorResult is one editor's entry in a Document.
type EditorResult struct {
	Editor          editor.Name        `json:"editor" yaml:"editor"`
	Command         string             `json:"command" yaml:"command"`
	Source          editor.Source      `json:"source" yaml:"source"`
	Active          bool               `json:"active" yaml:"active"`
	Outcome         extensions.Outcome `json:"outcome" yaml:"outcome"`
	Missing         []string           `json:"missing,omitempty" yaml:"missing,omitempty"`
	Reason          string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	InstallCommands []string           `json:"install_commands,omitempty" yaml:"install_commands,omitempty"`
}

// NewDocument converts results into a Document.
func NewDocument(results []extensions.Result) Document {
	doc := Document{
		Editors: make([]editor.Name, 0, len(results)),
		Results: make([]EditorResult, 0, len(results)),
		OK:      extensions.AllOK(results),
	}
	for _, r := range results {
		doc.Editors = append(doc.Editors, r.Editor.Name)
		er := EditorResult{
			Editor:  r.Editor.Name,
			Command: r.Editor.Command,
			Source:  r.Editor.Source,
			Active:  r.Editor.Active,
			Outcome: r.Outcome,
			Missing: r.Missing,
			Reason:  r.Reason,
		}
		if len(r.Missing) > 0 {
			er.InstallCommands = InstallCommands(r.Editor.Command, r.Missing)
		}
		doc.Results = append(doc.Results, er)
	}
	return doc
}
