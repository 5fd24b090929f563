// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// sarifLog is a minimal SARIF 2.1.0 document: one run, one
// reportingDescriptor per distinct Issue Kind encountered, one result per
// Issue. Only the fields consumers (GitHub Code Scanning, sarif viewers)
// actually read are populated.
type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

func writeSARIF(w io.Writer, results []issue.ValidationResult) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "hallucination-firewall"}},
	}

	seenKinds := make(map[string]bool)
	for _, r := range results {
		for _, iss := range r.Issues {
			kindName := iss.Kind.String()
			if !seenKinds[kindName] {
				seenKinds[kindName] = true
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{ID: kindName, Name: kindName})
			}

			column := iss.Location.Column
			if column == 0 {
				column = 1
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:  kindName,
				Level:   sarifLevel(iss.Severity),
				Message: sarifMessage{Text: iss.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: r.File},
						Region:           sarifRegion{StartLine: iss.Location.Line, StartColumn: column},
					},
				}},
			})
		}
	}

	sort.Slice(run.Tool.Driver.Rules, func(i, j int) bool {
		return run.Tool.Driver.Rules[i].ID < run.Tool.Driver.Rules[j].ID
	})

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func sarifLevel(sev issue.Severity) string {
	switch sev {
	case issue.SeverityError:
		return "error"
	case issue.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
