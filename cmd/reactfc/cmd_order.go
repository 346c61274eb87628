// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/fe-jhw/reactfc/cmd/reactfc/config"
	"github.com/fe-jhw/reactfc/services/order"
)

func (a *app) orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the canonical statement order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := order.Categories()
			if a.jsonOutput() {
				entries := make([]OrderEntry, 0, len(categories))
				for _, c := range categories {
					entries = append(entries, OrderEntry{Rank: c.Rank(), Key: c.String(), Label: c.Label()})
				}
				return writeJSON(a.stdout, newResult("order", time.Now(), entries, nil))
			}
			a.reporter().Order(categories)
			return nil
		},
	}
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				if errors.Is(err, os.ErrExist) {
					return fmt.Errorf("%s already exists", path)
				}
				return err
			}
			a.reporter().Info("wrote " + path)
			return nil
		},
	}
}

// VersionInfo is the payload of `version --format json`.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if a.jsonOutput() {
				return writeJSON(a.stdout, newResult("version", time.Now(), info, nil))
			}
			_, err := fmt.Fprintf(a.stdout, "reactfc %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
			return err
		},
	}
}
