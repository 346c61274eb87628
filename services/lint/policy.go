// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// RULE POLICY
// =============================================================================

// RulePolicy defines how to handle specific rules.
//
// Description:
//
//	Rules are matched exactly or by hierarchy. For example, "reactfc"
//	matches "reactfc" and "reactfc/order". Ignore takes precedence, then
//	BlockOn, then WarnOn, then InfoOn.
//
// Thread Safety: Treat as immutable after creation.
type RulePolicy struct {
	// BlockOn are rules reported as errors.
	BlockOn []string

	// WarnOn are rules reported as warnings.
	WarnOn []string

	// InfoOn are rules reported as infos.
	InfoOn []string

	// Ignore are rules to completely ignore.
	Ignore []string
}

// DefaultPolicy reports ordering violations as errors.
var DefaultPolicy = RulePolicy{
	BlockOn: []string{RuleOrder},
}

// PolicyFromRules builds a policy from a rule → severity map.
//
// Description:
//
//	Severities are "error", "warn"/"warning", "info" or "off". Rules the map
//	does not mention keep their default (RuleOrder is an error).
//
// Inputs:
//
//	rules - Map of rule id (or hierarchy prefix) to severity name.
//
// Outputs:
//
//	*RulePolicy - The policy.
//	error - ErrInvalidPolicy for an unknown severity name.
func PolicyFromRules(rules map[string]string) (*RulePolicy, error) {
	p := &RulePolicy{}

	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		switch strings.ToLower(strings.TrimSpace(rules[id])) {
		case "error", "err", "2":
			p.BlockOn = append(p.BlockOn, id)
		case "warn", "warning", "1":
			p.WarnOn = append(p.WarnOn, id)
		case "info":
			p.InfoOn = append(p.InfoOn, id)
		case "off", "0":
			p.Ignore = append(p.Ignore, id)
		default:
			return nil, fmt.Errorf("%w: rule %q has severity %q", ErrInvalidPolicy, id, rules[id])
		}
	}

	if !p.mentions(RuleOrder) {
		p.BlockOn = append(p.BlockOn, DefaultPolicy.BlockOn...)
	}
	return p, nil
}

// ShouldBlock returns true if the rule is reported as an error.
func (p *RulePolicy) ShouldBlock(rule string) bool {
	return matchesAny(rule, p.BlockOn)
}

// ShouldWarn returns true if the rule is reported as a warning.
func (p *RulePolicy) ShouldWarn(rule string) bool {
	return matchesAny(rule, p.WarnOn)
}

// ShouldIgnore returns true if the rule is disabled.
func (p *RulePolicy) ShouldIgnore(rule string) bool {
	return matchesAny(rule, p.Ignore)
}

// GetSeverity returns the severity for a rule based on policy.
//
// Description:
//
//	Ignore takes precedence, then BlockOn, WarnOn and InfoOn.
//	Rules matching none of them are warnings.
//
// Inputs:
//
//	rule - The rule identifier
//
// Outputs:
//
//	Severity - The severity level for the rule
func (p *RulePolicy) GetSeverity(rule string) Severity {
	if p.ShouldIgnore(rule) {
		return SeverityInfo
	}
	if p.ShouldBlock(rule) {
		return SeverityError
	}
	if p.ShouldWarn(rule) {
		return SeverityWarning
	}
	if matchesAny(rule, p.InfoOn) {
		return SeverityInfo
	}
	return SeverityWarning
}

func (p *RulePolicy) mentions(rule string) bool {
	return matchesAny(rule, p.BlockOn) || matchesAny(rule, p.WarnOn) ||
		matchesAny(rule, p.InfoOn) || matchesAny(rule, p.Ignore)
}

func matchesAny(rule string, patterns []string) bool {
	rule = strings.ToLower(rule)
	for _, pattern := range patterns {
		if matchesRule(rule, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// matchesRule checks if a rule matches a pattern exactly or by hierarchy.
// Examples:
//   - "reactfc/order" matches "reactfc/order"
//   - "reactfc/order" matches "reactfc"
//   - "reactfc/orderly" does not match "reactfc/order"
func matchesRule(rule, pattern string) bool {
	if rule == pattern {
		return true
	}
	return strings.HasPrefix(rule, pattern+"/")
}

// ApplyPolicy applies a policy to lint issues, setting appropriate severities.
//
// Description:
//
//	Drops ignored issues and splits the rest into errors, warnings and
//	infos. A nil policy uses DefaultPolicy.
//
// Inputs:
//
//	issues - Raw issues from the checker
//	policy - The policy to apply
//
// Outputs:
//
//	errors - Issues that fail the run
//	warnings - Issues that warn
//	infos - Issues that are informational
func ApplyPolicy(issues []LintIssue, policy *RulePolicy) (errors, warnings, infos []LintIssue) {
	if policy == nil {
		policy = &DefaultPolicy
	}

	errors = make([]LintIssue, 0)
	warnings = make([]LintIssue, 0)
	infos = make([]LintIssue, 0)

	for _, issue := range issues {
		if policy.ShouldIgnore(issue.Rule) {
			continue
		}

		issue.Severity = policy.GetSeverity(issue.Rule)
		switch issue.Severity {
		case SeverityError:
			errors = append(errors, issue)
		case SeverityWarning:
			warnings = append(warnings, issue)
		case SeverityInfo:
			infos = append(infos, issue)
		}
	}

	return errors, warnings, infos
}
