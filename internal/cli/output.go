// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// ErrCommandFailed signals a non-zero exit after the error document has
// already been printed. main must not print it again.
var ErrCommandFailed = errors.New("command failed")

// Output writes indented JSON documents, one per command invocation.
type Output struct {
	w io.Writer
}

// NewOutput creates an Output writing to w.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// Print renders doc as an indented JSON document followed by a newline.
func (o *Output) Print(doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(o.w, "{\n  \"error\": %q\n}\n", "Failed to encode output: "+err.Error())
		return ErrCommandFailed
	}
	fmt.Fprintf(o.w, "%s\n", data)
	return nil
}
