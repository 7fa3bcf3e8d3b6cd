// Radarr Skill - Credential-Shielding Gateway and CLI for Radarr
// Copyright 2026 abra5umente
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/abra5umente/radarr-skill

package cli

import (
	"fmt"

	"github.com/abra5umente/radarr-skill/internal/cache"
)

// App bundles the dependencies shared by every command: the gateway client,
// the local result cache, and the output writer.
type App struct {
	Client *Client
	Store  *cache.Store
	Out    *Output
}

// fail prints an error document and marks the command as failed.
func (a *App) fail(msg string) error {
	_ = a.Out.Print(errorDoc(msg))
	return ErrCommandFailed
}

// relayError prints a gateway error payload verbatim and marks the command
// as failed.
func (a *App) relayError(doc map[string]any) error {
	_ = a.Out.Print(doc)
	return ErrCommandFailed
}

// printFull persists the document to the result cache and prints it in full
// with the saved path attached.
func (a *App) printFull(operation, key string, doc map[string]any) error {
	path, err := a.Store.Save(operation, key, doc)
	if err != nil {
		return a.fail("Failed to save result: " + err.Error())
	}
	doc["_saved_to"] = path
	return a.Out.Print(doc)
}

// printSummary persists the document to the result cache but prints only the
// given summary fields plus the saved path and a grep hint. Used by commands
// whose full payload is too large to return inline.
func (a *App) printSummary(operation, key string, doc, summary map[string]any) error {
	path, err := a.Store.Save(operation, key, doc)
	if err != nil {
		return a.fail("Failed to save result: " + err.Error())
	}
	summary["saved_to"] = path
	summary["hint"] = fmt.Sprintf("Full data saved. Use: grep -i 'pattern' %s", path)
	return a.Out.Print(summary)
}

// countField returns the document's count, falling back to the length of the
// named list when the gateway omitted it.
func countField(doc map[string]any, listKey string) any {
	if c, ok := doc["count"]; ok {
		return c
	}
	if list, ok := doc[listKey].([]any); ok {
		return len(list)
	}
	return 0
}

// totalField returns the document's total record count, defaulting to zero.
func totalField(doc map[string]any) any {
	if t, ok := doc["total"]; ok {
		return t
	}
	return 0
}
